package gen

import (
	"go/types"

	"github.com/dave/jennifer/jen"

	"holda/internal/analyze"
)

// emitClone copies the wrapped value. Slices and maps are copied one level
// deep; other values are copied by assignment.
func emitClone(u *unit) []jen.Code {
	var body jen.Code

	switch {
	case u.traits().HasClone:
		body = u.wrap(u.self().Dot("Clone").Call())
	case u.underlying() == analyze.TypeKindSlice:
		body = u.wrap(jen.Qual("slices", "Clone").Call(u.self()))
	case u.underlying() == analyze.TypeKindMap:
		body = u.wrap(jen.Qual("maps", "Clone").Call(u.self()))
	default:
		body = jen.Id(u.recv)
	}

	return []jen.Code{u.decl(
		"Clone returns a copy of the wrapper.",
		jen.Func().Add(u.valueRecv()).Id("Clone").Params().
			Id(u.wrapper).
			Block(jen.Return(body)),
	)}
}

// underlying is the kind of the inner type's underlying type when it is
// known, or the syntactic kind otherwise.
func (u *unit) underlying() analyze.TypeKind {
	if t := u.desc.Inner.GoType; t != nil {
		switch t.Underlying().(type) {
		case *types.Slice:
			return analyze.TypeKindSlice
		case *types.Map:
			return analyze.TypeKindMap
		}
	}

	return u.desc.Inner.Kind
}
