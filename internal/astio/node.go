package astio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Node is one wire node of the interchange tree.
type Node struct {
	Kind     string   `json:"kind" msgpack:"kind"`
	Name     string   `json:"name,omitempty" msgpack:"name,omitempty"`
	Op       string   `json:"op,omitempty" msgpack:"op,omitempty"`
	Type     string   `json:"type,omitempty" msgpack:"type,omitempty"`
	Lit      *Lit     `json:"lit,omitempty" msgpack:"lit,omitempty"`
	Loc      []uint32 `json:"loc,omitempty" msgpack:"loc,omitempty"`
	Children []*Node  `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Lit is a literal value. Kind is one of bool, char, int, long, float,
// double; integral kinds use Int, floating kinds use Float.
type Lit struct {
	Kind  string  `json:"kind" msgpack:"kind"`
	Int   int64   `json:"int,omitempty" msgpack:"int,omitempty"`
	Float float64 `json:"float,omitempty" msgpack:"float,omitempty"`
}

// Format selects the encoding of the interchange tree.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return fmt.Sprintf("Format(%d)", f)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".mpk", ".msgpack":
		return FormatMsgpack, nil
	}
	return FormatJSON, fmt.Errorf("astio: %s: unknown AST file extension (expected .json, .mpk or .msgpack)", path)
}
