package tags

import "github.com/standardbeagle/ztags/internal/syntax"

// Kind is the single-character tag kind written in the fourth field of a
// tag line.
type Kind byte

const (
	KindFunction   Kind = 'f' // fn declaration
	KindStruct     Kind = 's' // const bound to a struct body
	KindUnion      Kind = 'u' // const bound to a union body
	KindEnum       Kind = 'g' // const bound to an enum body
	KindErrorSet   Kind = 'r' // const bound to an error set
	KindVariable   Kind = 'v' // any other var/const declaration
	KindEnumMember Kind = 'e' // bare enumerant member
	KindMember     Kind = 'm' // typed struct/union member
)

// Classify maps a declaration to its tag kind. The second result is false
// for declarations that produce no tag; container-valued declarations with
// an unrecognized keyword (opaque and friends) fall in that bucket, and the
// traversal does not descend into them either.
func Classify(node *syntax.Node) (Kind, bool) {
	switch node.Kind {
	case syntax.KindFunction:
		return KindFunction, true

	case syntax.KindVarDecl:
		init := node.Init
		if init == nil {
			return KindVariable, true
		}
		switch init.Kind {
		case syntax.KindContainer:
			switch init.Keyword {
			case "struct":
				return KindStruct, true
			case "union":
				return KindUnion, true
			case "enum":
				return KindEnum, true
			default:
				return 0, false
			}
		case syntax.KindErrorSet:
			return KindErrorSet, true
		default:
			return KindVariable, true
		}

	case syntax.KindField:
		if node.HasType {
			return KindMember, true
		}
		return KindEnumMember, true

	default:
		return 0, false
	}
}
