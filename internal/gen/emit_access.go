package gen

import (
	"github.com/dave/jennifer/jen"
)

// emitConstruction generates NewX taking T itself, so untyped constants
// convert to T. Inner types that are their own underlying type also get XOf,
// which accepts any value whose underlying type is T.
func emitConstruction(u *unit) []jen.Code {
	name := u.constructor()

	out := []jen.Code{u.decl(
		name+" wraps value.",
		jen.Func().Id(name).
			Params(jen.Id("value").Add(u.inner())).
			Id(u.wrapper).
			Block(jen.Return(u.wrap(jen.Id("value")))),
	)}

	if !u.traits().Approximable {
		return out
	}

	of := u.of()
	v := u.typeParam()

	return append(out, u.decl(
		of+" wraps value, which may be of any type with the same underlying type.",
		jen.Func().Id(of).
			Types(jen.Id(v).Op("~").Add(u.inner())).
			Params(jen.Id("value").Id(v)).
			Id(u.wrapper).
			Block(jen.Return(u.wrap(u.convert(jen.Id("value"))))),
	))
}

func emitTextConstruction(u *unit) []jen.Code {
	name := u.fromString()

	var value jen.Code = jen.Id("s")
	if !u.isString() {
		value = u.convert(jen.Id("s"))
	}

	return []jen.Code{u.decl(
		name+" builds a "+u.wrapper+" from a string.",
		jen.Func().Id(name).
			Params(jen.Id("s").String()).
			Id(u.wrapper).
			Block(jen.Return(u.wrap(value))),
	)}
}

func emitAsRef(u *unit) []jen.Code {
	return []jen.Code{u.decl(
		"AsRef returns a pointer to the wrapped value.",
		jen.Func().Add(u.ptrRecv()).Id("AsRef").Params().
			Op("*").Add(u.inner()).
			Block(jen.Return(jen.Op("&").Add(u.self()))),
	)}
}

func emitOwnership(u *unit) []jen.Code {
	from := u.from()

	return []jen.Code{
		u.decl(
			from+" wraps value.",
			jen.Func().Id(from).
				Params(jen.Id("value").Add(u.inner())).
				Id(u.wrapper).
				Block(jen.Return(u.wrap(jen.Id("value")))),
		),
		u.decl(
			"Into unwraps the value.",
			jen.Func().Add(u.valueRecv()).Id("Into").Params().
				Add(u.inner()).
				Block(jen.Return(u.self())),
		),
	}
}

func emitGet(u *unit) []jen.Code {
	return []jen.Code{u.decl(
		"Get returns the wrapped value.",
		jen.Func().Add(u.valueRecv()).Id("Get").Params().
			Add(u.inner()).
			Block(jen.Return(u.self())),
	)}
}

func emitSet(u *unit) []jen.Code {
	return []jen.Code{u.decl(
		"Set replaces the wrapped value.",
		jen.Func().Add(u.ptrRecv()).Id("Set").
			Params(jen.Id("value").Add(u.inner())).
			Block(u.self().Op("=").Id("value")),
	)}
}
