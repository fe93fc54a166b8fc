package gen

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/dave/jennifer/jen"

	"holda/internal/analyze"
)

// typeCoder renders inner type expressions as jennifer code, qualifying
// selectors with the import paths recorded by the analyzer.
type typeCoder struct {
	paths map[string]string // file-level alias -> import path
}

func newTypeCoder(imports []analyze.Import) typeCoder {
	tc := typeCoder{paths: make(map[string]string, len(imports))}
	for _, imp := range imports {
		tc.paths[imp.Alias] = imp.Path
	}

	return tc
}

// code returns a fresh statement for expr. Statements are mutable, so callers
// must not share the result between two places in the output.
func (tc typeCoder) code(expr ast.Expr) *jen.Statement {
	switch e := expr.(type) {
	case *ast.Ident:
		return jen.Id(e.Name)
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if path, ok := tc.paths[x.Name]; ok {
				return jen.Qual(path, e.Sel.Name)
			}
		}
	case *ast.ParenExpr:
		return jen.Parens(tc.code(e.X))
	case *ast.StarExpr:
		return jen.Op("*").Add(tc.code(e.X))
	case *ast.ArrayType:
		if e.Len == nil {
			return jen.Index().Add(tc.code(e.Elt))
		}

		return jen.Index(jen.Op(types.ExprString(e.Len))).Add(tc.code(e.Elt))
	case *ast.MapType:
		return jen.Map(tc.code(e.Key)).Add(tc.code(e.Value))
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(tc.code(e.Value))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(tc.code(e.Value))
		default:
			return jen.Chan().Add(tc.code(e.Value))
		}
	case *ast.IndexExpr:
		return tc.code(e.X).Types(tc.code(e.Index))
	case *ast.IndexListExpr:
		args := make([]jen.Code, len(e.Indices))
		for i, idx := range e.Indices {
			args[i] = tc.code(idx)
		}

		return tc.code(e.X).Types(args...)
	case *ast.StructType:
		return jen.Struct(tc.fields(e.Fields, true)...)
	case *ast.FuncType:
		return tc.funcType(e)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return jen.Interface()
		}
	case *ast.Ellipsis:
		return jen.Op("...").Add(tc.code(e.Elt))
	}

	// Interfaces with methods and anything unusual are rendered verbatim.
	return jen.Op(types.ExprString(expr))
}

// fields renders a field list. Struct fields keep their tags.
func (tc typeCoder) fields(list *ast.FieldList, tags bool) []jen.Code {
	if list == nil {
		return nil
	}

	var out []jen.Code
	for _, field := range list.List {
		var tag jen.Code = jen.Null()
		if tags && field.Tag != nil && field.Tag.Kind == token.STRING {
			tag = jen.Op(field.Tag.Value)
		}

		if len(field.Names) == 0 {
			out = append(out, tc.code(field.Type).Add(tag))
			continue
		}

		for _, name := range field.Names {
			out = append(out, jen.Id(name.Name).Add(tc.code(field.Type)).Add(tag))
		}
	}

	return out
}

func (tc typeCoder) funcType(ft *ast.FuncType) *jen.Statement {
	s := jen.Func().Params(tc.fields(ft.Params, false)...)
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return s
	}

	results := tc.fields(ft.Results, false)
	if len(results) == 1 && len(ft.Results.List[0].Names) == 0 {
		return s.Add(results[0])
	}

	return s.Params(results...)
}

// needsParens reports whether a conversion to the type must parenthesise
// it, as in (*T)(x) or (func())(x).
func needsParens(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.StarExpr, *ast.FuncType:
		return true
	case *ast.ChanType:
		return e.Dir == ast.RECV
	default:
		return false
	}
}
