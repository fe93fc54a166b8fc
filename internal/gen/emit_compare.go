package gen

import (
	"github.com/dave/jennifer/jen"
)

// emitEqual delegates to the inner Equal method when the inner type is not
// comparable, or when it also brings its own Hash so that Equal and Hash stay
// consistent. Otherwise it compares with ==, matching maphash.Comparable in
// emitHash. An inner type like time.Time, which has Equal but no Hash, is
// therefore compared with ==.
func emitEqual(u *unit) []jen.Code {
	var body jen.Code
	if tr := u.traits(); tr.HasEqual && (!tr.Comparable || tr.HasHash) {
		body = u.self().Dot("Equal").Call(u.other())
	} else {
		body = u.self().Op("==").Add(u.other())
	}

	return []jen.Code{u.decl(
		"Equal reports whether both wrapped values are equal.",
		jen.Func().Add(u.valueRecv()).Id("Equal").
			Params(jen.Id("other").Id(u.wrapper)).
			Bool().
			Block(jen.Return(body)),
	)}
}

// emitCompare uses cmp.Compare for ordered inner types and the inner
// Compare method otherwise.
func emitCompare(u *unit) []jen.Code {
	var body jen.Code
	if tr := u.traits(); !tr.Ordered && tr.HasCompare {
		body = u.self().Dot("Compare").Call(u.other())
	} else {
		body = jen.Qual("cmp", "Compare").Call(u.self(), u.other())
	}

	return []jen.Code{
		u.decl(
			"Compare returns -1, 0 or +1 depending on whether the wrapped value is less than, equal to or greater than other's.",
			jen.Func().Add(u.valueRecv()).Id("Compare").
				Params(jen.Id("other").Id(u.wrapper)).
				Int().
				Block(jen.Return(body)),
		),
		u.decl(
			"Less reports whether the wrapped value sorts before other's.",
			jen.Func().Add(u.valueRecv()).Id("Less").
				Params(jen.Id("other").Id(u.wrapper)).
				Bool().
				Block(jen.Return(jen.Id(u.recv).Dot("Compare").Call(jen.Id("other")).Op("<").Lit(0))),
		),
	}
}

// emitHash delegates to the inner Hash method or hashes the value itself, so
// values equal under == always hash equally.
func emitHash(u *unit) []jen.Code {
	var body jen.Code
	if u.traits().HasHash {
		body = u.self().Dot("Hash").Call(jen.Id("seed"))
	} else {
		body = jen.Qual("hash/maphash", "Comparable").Call(jen.Id("seed"), u.self())
	}

	return []jen.Code{u.decl(
		"Hash hashes the wrapped value with seed.",
		jen.Func().Add(u.valueRecv()).Id("Hash").
			Params(jen.Id("seed").Qual("hash/maphash", "Seed")).
			Uint64().
			Block(jen.Return(body)),
	)}
}
