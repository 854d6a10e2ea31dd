// Package astio decodes the syntax tree produced by the external parser.
//
// The parser emits a tree of generic wire nodes, either as JSON or as
// msgpack. Each node has a kind, optional scalar attributes (name, op, type,
// lit, loc) and positional children. Decode checks the shape of every node
// and converts the tree into an ast.DeclarationList.
//
// Node kinds and their children:
//
//	unit        declarations...
//	var_decl    type; init_decl...
//	init_decl   declarator [init]
//	func_decl   type; declarator [block]
//	name        name
//	func        name; param...
//	param       type; [declarator]
//	pointer     declarator
//	reference   declarator
//	array       declarator [size]
//	const       lit
//	var         name
//	binary      op; left right
//	unary       op; operand
//	call        callee args...
//	index       base index
//	expr        [expression]
//	if          cond then [else]
//	while       cond body
//	for         init cond step body   (empty for an absent clause)
//	return      [expression]
//	block       statements...
//	empty
package astio
