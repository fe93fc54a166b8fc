package analyze

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"holda/internal/diagnostic"
)

// ParseSource parses and type-checks a single file held in memory and
// extracts its wrappers. Imports are not resolved, so inner types from other
// packages get syntax-derived traits. src follows the go/parser.ParseFile
// conventions.
func ParseSource(filename string, src any, diags *diagnostic.Diagnostics) (*PackageInfo, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	info := newTypesInfo()
	conf := types.Config{
		// Unresolved imports are expected; keep checking the rest of the file.
		Error: func(error) {},
	}
	_, _ = conf.Check(file.Name.Name, fset, []*ast.File{file}, info)

	x := NewExtractor(fset, file, info, file.Name.Name)

	return &PackageInfo{
		Path:     file.Name.Name,
		Name:     file.Name.Name,
		Dir:      dirOf(filename),
		Files:    []string{filename},
		Wrappers: x.ExtractAll(diags),
	}, nil
}

func newTypesInfo() *types.Info {
	return &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
}
