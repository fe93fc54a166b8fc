package analyze

import (
	"go/ast"
	"go/types"
)

// predeclared maps every predeclared non-interface type name to whether
// cmp.Compare accepts it.
var predeclared = map[string]bool{
	"bool":       false,
	"string":     true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"byte":       true,
	"rune":       true,
	"float32":    true,
	"float64":    true,
	"complex64":  false,
	"complex128": false,
}

// kindOf classifies a checked type.
func kindOf(t types.Type) TypeKind {
	switch types.Unalias(t).(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Named:
		return TypeKindNamed
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Struct:
		return TypeKindStruct
	case *types.Interface:
		return TypeKindInterface
	case *types.Signature:
		return TypeKindFunc
	case *types.Chan:
		return TypeKindChan
	default:
		return TypeKindUnknown
	}
}

// traitsOf derives traits from a checked type.
func traitsOf(t types.Type) InnerTraits {
	t = types.Unalias(t)
	under := t.Underlying()

	tr := InnerTraits{
		Resolved:   true,
		Comparable: types.Comparable(t),
	}

	if _, isIface := under.(*types.Interface); !isIface {
		tr.Approximable = types.Identical(t, under)
	}

	if b, ok := under.(*types.Basic); ok && b.Info()&types.IsOrdered != 0 {
		tr.Ordered = true
	}

	tr.HasEqual = hasMethod(t, "Equal", func(sig *types.Signature) bool {
		return takesSelf(sig, t) && returnsBasic(sig, types.Bool)
	})
	tr.HasCompare = hasMethod(t, "Compare", func(sig *types.Signature) bool {
		return takesSelf(sig, t) && returnsBasic(sig, types.Int)
	})
	tr.HasHash = hasMethod(t, "Hash", func(sig *types.Signature) bool {
		return sig.Params().Len() == 1 &&
			types.TypeString(sig.Params().At(0).Type(), nil) == "hash/maphash.Seed" &&
			returnsBasic(sig, types.Uint64)
	})
	tr.HasClone = hasMethod(t, "Clone", func(sig *types.Signature) bool {
		return sig.Params().Len() == 0 && sig.Results().Len() == 1 &&
			types.Identical(sig.Results().At(0).Type(), t)
	})

	tr.TextUnmarshaler = hasMethod(t, "UnmarshalText", func(sig *types.Signature) bool {
		return sig.Params().Len() == 1 &&
			types.Identical(sig.Params().At(0).Type(), types.NewSlice(types.Typ[types.Byte])) &&
			sig.Results().Len() == 1 &&
			types.Identical(sig.Results().At(0).Type(), types.Universe.Lookup("error").Type())
	})

	return tr
}

// hasMethod reports whether T or *T has a method name whose signature
// satisfies match.
func hasMethod(t types.Type, name string, match func(*types.Signature) bool) bool {
	recv := t
	if !types.IsInterface(t) {
		recv = types.NewPointer(t)
	}

	sel := types.NewMethodSet(recv).Lookup(nil, name)
	if sel == nil {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)

	return ok && match(sig)
}

func takesSelf(sig *types.Signature, t types.Type) bool {
	return sig.Params().Len() == 1 && types.Identical(sig.Params().At(0).Type(), t)
}

func returnsBasic(sig *types.Signature, kind types.BasicKind) bool {
	if sig.Results().Len() != 1 {
		return false
	}

	b, ok := sig.Results().At(0).Type().(*types.Basic)

	return ok && b.Kind() == kind
}

// syntaxKind classifies a type expression without type information.
func syntaxKind(expr ast.Expr) TypeKind {
	switch e := expr.(type) {
	case *ast.Ident:
		if _, ok := predeclared[e.Name]; ok {
			return TypeKindBasic
		}
		if e.Name == "any" || e.Name == "error" {
			return TypeKindInterface
		}

		return TypeKindNamed
	case *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		return TypeKindNamed
	case *ast.ParenExpr:
		return syntaxKind(e.X)
	case *ast.StarExpr:
		return TypeKindPointer
	case *ast.ArrayType:
		if e.Len == nil {
			return TypeKindSlice
		}

		return TypeKindArray
	case *ast.MapType:
		return TypeKindMap
	case *ast.StructType:
		return TypeKindStruct
	case *ast.InterfaceType:
		return TypeKindInterface
	case *ast.FuncType:
		return TypeKindFunc
	case *ast.ChanType:
		return TypeKindChan
	default:
		return TypeKindUnknown
	}
}

// syntaxTraits guesses traits from the shape of a type expression. Named
// types whose definition could not be checked are assumed comparable and to
// carry their own Compare method, which keeps the generated code delegating
// to the inner type.
func syntaxTraits(expr ast.Expr, kind TypeKind) InnerTraits {
	switch kind {
	case TypeKindBasic:
		ident, _ := expr.(*ast.Ident)
		ordered := ident != nil && predeclared[ident.Name]

		return InnerTraits{Approximable: true, Comparable: true, Ordered: ordered}
	case TypeKindInterface:
		return InnerTraits{Comparable: true}
	case TypeKindNamed:
		return InnerTraits{Comparable: true, HasCompare: true}
	case TypeKindSlice, TypeKindMap, TypeKindFunc:
		return InnerTraits{Approximable: true}
	case TypeKindPointer, TypeKindArray, TypeKindStruct, TypeKindChan:
		return InnerTraits{Approximable: true, Comparable: true}
	default:
		return InnerTraits{Comparable: true}
	}
}
