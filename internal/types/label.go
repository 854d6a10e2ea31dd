package types

import (
	"fmt"
	"strings"
)

// Label returns a C-like spelling for a TypeID, used in messages and dumps.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 8 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		switch tt.Width {
		case Width8:
			return "char"
		case Width16:
			return "short"
		case Width32:
			return "int"
		case Width64:
			return "long"
		}
		return fmt.Sprintf("int%d", tt.Width)
	case KindFloat:
		if tt.Width == Width32 {
			return "float"
		}
		return "double"
	case KindPointer:
		return labelDepth(typesIn, tt.Elem, depth+1) + "*"
	case KindArray:
		// int[3][2] is three arrays of two ints
		var dims strings.Builder
		for tt.Kind == KindArray {
			fmt.Fprintf(&dims, "[%d]", tt.Count)
			id = tt.Elem
			if tt, ok = typesIn.Lookup(id); !ok {
				return "?"
			}
		}
		return labelDepth(typesIn, id, depth+1) + dims.String()
	case KindCustom:
		if name, ok := typesIn.CustomName(id); ok {
			return name
		}
		return "?"
	case KindFn:
		info, ok := typesIn.FnInfo(id)
		if !ok {
			return "fn(?)"
		}
		parts := make([]string, len(info.Params))
		for i, p := range info.Params {
			parts[i] = labelDepth(typesIn, p, depth+1)
			if info.Refs[i] {
				parts[i] += "&"
			}
		}
		res := labelDepth(typesIn, info.Result, depth+1)
		if info.ResultRef {
			res += "&"
		}
		return res + "(" + strings.Join(parts, ", ") + ")"
	}
	return "?"
}
