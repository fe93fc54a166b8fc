package gen

import (
	"github.com/dave/jennifer/jen"
)

// emitParse generates ParseX and UnmarshalText. Both share one body: inner
// types that implement encoding.TextUnmarshaler parse the text themselves,
// any other inner type stores the text verbatim through a conversion.
func emitParse(u *unit) []jen.Code {
	parse := u.parse()

	return []jen.Code{
		u.decl(
			parse+" parses text into a "+u.wrapper+".",
			jen.Func().Id(parse).
				Params(jen.Id("text").String()).
				Params(jen.Id(u.wrapper), jen.Error()).
				Block(
					jen.Var().Id("out").Id(u.wrapper),
					jen.If(
						jen.Err().Op(":=").Id("out").Dot("UnmarshalText").Call(jen.Index().Byte().Parens(jen.Id("text"))),
						jen.Err().Op("!=").Nil(),
					).Block(
						jen.Return(jen.Id(u.wrapper).Values(), jen.Err()),
					),
					jen.Return(jen.Id("out"), jen.Nil()),
				),
		),
		u.decl(
			"UnmarshalText implements encoding.TextUnmarshaler.",
			jen.Func().Add(u.ptrRecv()).Id("UnmarshalText").
				Params(jen.Id("text").Index().Byte()).
				Error().
				Block(u.unmarshalTextBody()...),
		),
	}
}

func (u *unit) unmarshalTextBody() []jen.Code {
	if u.traits().TextUnmarshaler {
		return []jen.Code{
			jen.If(
				jen.Err().Op(":=").Add(u.self()).Dot("UnmarshalText").Call(jen.Id("text")),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("parse "+u.wrapper+": %w"), jen.Err())),
			),
			jen.Return(jen.Nil()),
		}
	}

	var value jen.Code = jen.String().Parens(jen.Id("text"))
	if !u.isString() {
		value = u.convert(jen.Id("text"))
	}

	return []jen.Code{
		u.self().Op("=").Add(value),
		jen.Return(jen.Nil()),
	}
}
