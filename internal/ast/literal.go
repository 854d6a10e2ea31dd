package ast

import (
	"fmt"
	"strconv"
)

// LitKind is the type of a constant literal.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitBool
	LitChar
	LitLong
	LitFloat
	LitDouble
)

var litKindNames = [...]string{
	LitInt:    "int",
	LitBool:   "bool",
	LitChar:   "char",
	LitLong:   "long",
	LitFloat:  "float",
	LitDouble: "double",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// ParseLitKind maps a literal kind name back to its LitKind.
func ParseLitKind(name string) (LitKind, bool) {
	for i, n := range litKindNames {
		if n == name {
			return LitKind(i), true
		}
	}
	return 0, false
}

// Literal is the payload of a Constant. Int holds bool, char, int and long
// values; Float holds float and double values.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
}

func (l Literal) IsFloat() bool {
	return l.Kind == LitFloat || l.Kind == LitDouble
}

func (l Literal) String() string {
	switch l.Kind {
	case LitBool:
		return strconv.FormatBool(l.Int != 0)
	case LitChar:
		return strconv.QuoteRune(rune(l.Int))
	case LitFloat, LitDouble:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	default:
		return strconv.FormatInt(l.Int, 10)
	}
}
