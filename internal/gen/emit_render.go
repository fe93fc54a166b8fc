package gen

import (
	"github.com/dave/jennifer/jen"
)

func emitString(u *unit) []jen.Code {
	return []jen.Code{u.decl(
		"String formats the wrapped value.",
		jen.Func().Add(u.valueRecv()).Id("String").Params().String().
			Block(jen.Return(jen.Qual("fmt", "Sprint").Call(u.self()))),
	)}
}

func emitGoString(u *unit) []jen.Code {
	return []jen.Code{u.decl(
		"GoString formats the wrapped value for %#v.",
		jen.Func().Add(u.valueRecv()).Id("GoString").Params().String().
			Block(jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit("%#v"), u.self()))),
	)}
}
