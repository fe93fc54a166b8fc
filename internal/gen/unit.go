package gen

import (
	"fmt"
	"go/ast"
	"slices"

	"github.com/dave/jennifer/jen"

	"holda/internal/analyze"
	"holda/internal/capability"
	"holda/internal/config"
)

// unit is the per-wrapper state shared by the emitters.
type unit struct {
	names

	desc    *analyze.WrapperDescriptor
	caps    capability.Set
	tc      typeCoder
	docs    bool
	formats []config.Format
}

func newUnit(desc *analyze.WrapperDescriptor, caps capability.Set, cfg GeneratorConfig) *unit {
	return &unit{
		names:   newNames(desc.Name(), desc.Field),
		desc:    desc,
		caps:    caps,
		tc:      newTypeCoder(desc.Inner.Imports),
		docs:    cfg.GenerateComments,
		formats: cfg.SerdeFormats,
	}
}

func (u *unit) traits() analyze.InnerTraits {
	return u.desc.Inner.Traits
}

func (u *unit) hasFormat(f config.Format) bool {
	return slices.Contains(u.formats, f)
}

// inner returns a fresh statement for the inner type.
func (u *unit) inner() *jen.Statement {
	return u.tc.code(u.desc.Inner.Expr)
}

// isString reports whether the inner type is exactly the predeclared string.
func (u *unit) isString() bool {
	id, ok := u.desc.Inner.Expr.(*ast.Ident)
	return ok && id.Name == "string" && u.desc.Inner.Kind == analyze.TypeKindBasic
}

// convert renders T(value), parenthesising T where the grammar needs it.
func (u *unit) convert(value jen.Code) *jen.Statement {
	if needsParens(u.desc.Inner.Expr) {
		return jen.Parens(u.inner()).Call(value)
	}

	return u.inner().Call(value)
}

// self is the wrapped field on the receiver.
func (u *unit) self() *jen.Statement {
	return jen.Id(u.recv).Dot(u.field)
}

// other is the wrapped field of the other operand.
func (u *unit) other() *jen.Statement {
	return jen.Id("other").Dot(u.field)
}

// wrap renders the composite literal X{f: value}.
func (u *unit) wrap(value jen.Code) *jen.Statement {
	return jen.Id(u.wrapper).Values(jen.Dict{jen.Id(u.field): value})
}

func (u *unit) valueRecv() *jen.Statement {
	return jen.Params(jen.Id(u.recv).Id(u.wrapper))
}

func (u *unit) ptrRecv() *jen.Statement {
	return jen.Params(jen.Id(u.recv).Op("*").Id(u.wrapper))
}

// decl prefixes a declaration with a doc comment when comments are enabled.
func (u *unit) decl(doc string, code *jen.Statement) jen.Code {
	if !u.docs || doc == "" {
		return code
	}

	return jen.Comment(doc).Line().Add(code)
}

// typeParam picks a constraint parameter name the inner type does not use.
func (u *unit) typeParam() string {
	used := map[string]bool{}
	ast.Inspect(u.desc.Inner.Expr, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			used[id.Name] = true
		}

		return true
	})

	name := "V"
	for i := 1; used[name]; i++ {
		name = fmt.Sprintf("V%d", i)
	}

	return name
}
