package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"holda/internal/capability"
	"holda/internal/common"
	"holda/internal/diagnostic"
	"holda/internal/match"
)

// Extractor turns the marked declarations of one file into descriptors.
type Extractor struct {
	fset    *token.FileSet
	file    *ast.File
	info    *types.Info // nil when the package could not be type-checked
	pkgPath string
	imports map[string]Import // by qualifier used in the file
}

// NewExtractor creates an Extractor for file. info may be nil, in which case
// inner-type traits are derived from syntax alone.
func NewExtractor(fset *token.FileSet, file *ast.File, info *types.Info, pkgPath string) *Extractor {
	x := &Extractor{
		fset:    fset,
		file:    file,
		info:    info,
		pkgPath: pkgPath,
		imports: make(map[string]Import),
	}

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := Import{Path: path, Name: common.PkgAlias(path)}
		imp.Alias = imp.Name

		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}

			imp.Alias = spec.Name.Name
		}

		x.imports[imp.Alias] = imp
	}

	return x
}

// ExtractAll extracts every marked type declaration of the file. Structural
// errors and directive problems are reported to diags; the offending
// declaration is skipped.
func (x *Extractor) ExtractAll(diags *diagnostic.Diagnostics) []*WrapperDescriptor {
	var out []*WrapperDescriptor

	for _, decl := range x.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			groups := []*ast.CommentGroup{ts.Doc}
			if len(gen.Specs) == 1 {
				groups = append(groups, gen.Doc)
			}

			dir, found := x.selectDirective(ts, findDirectives(groups...), diags)
			if !found {
				continue
			}

			desc, err := x.Extract(ts, dir)
			if err != nil {
				pos := x.fset.Position(ts.Name.Pos())

				var se *StructuralError
				if errors.As(err, &se) {
					diags.AddError(diagnostic.CodeStructural, se.Reason, se.Type, se.Pos)
				} else {
					diags.AddError(diagnostic.CodeStructural, err.Error(), ts.Name.Name, pos)
				}

				continue
			}

			for _, name := range desc.IgnoredOptions {
				diags.AddInfo(diagnostic.CodeIgnoredOption,
					fmt.Sprintf("unrecognized option %q ignored%s", name, match.Hint(name, capability.OptionNames)),
					desc.Name(), desc.Pos)
			}

			out = append(out, desc)
		}
	}

	return out
}

// selectDirective folds every directive on a declaration into one.
// A string directive wins over wrapper directives; options of several wrapper
// directives accumulate.
func (x *Extractor) selectDirective(ts *ast.TypeSpec, dirs []Directive, diags *diagnostic.Diagnostics) (Directive, bool) {
	var (
		out   Directive
		found bool
		kinds = map[string]bool{}
	)

	for _, d := range dirs {
		if !d.Known() {
			msg := fmt.Sprintf("unknown directive %q", DirectivePrefix+d.Kind)
			if kind, ok := match.Closest(d.Kind, knownKinds, match.DefaultThreshold); ok {
				msg += fmt.Sprintf("; did you mean %q?", DirectivePrefix+kind)
			}

			diags.AddWarning(diagnostic.CodeUnknownDirective, msg, ts.Name.Name, x.fset.Position(d.Pos))

			continue
		}

		kinds[d.Kind] = true
		if !found {
			out = Directive{Kind: d.Kind, Mode: d.Mode, Pos: d.Pos}
			found = true
		}

		if d.Kind == DirectiveString {
			out.Kind, out.Mode = d.Kind, d.Mode
		}

		out.Args = append(out.Args, d.Args...)
	}

	if kinds[DirectiveWrapper] && kinds[DirectiveString] {
		diags.AddWarning(diagnostic.CodeDirectiveConflict,
			"both //holda:wrapper and //holda:string present, using //holda:string", ts.Name.Name,
			x.fset.Position(ts.Name.Pos()))
	}

	return out, found
}

// Extract builds the descriptor for a single declaration. Only the first
// field of the struct is used; any further fields are ignored.
func (x *Extractor) Extract(spec *ast.TypeSpec, dir Directive) (*WrapperDescriptor, error) {
	name := spec.Name.Name
	pos := x.fset.Position(spec.Name.Pos())

	fail := func(reason string) error {
		return &StructuralError{Type: name, Pos: pos, Reason: reason}
	}

	if spec.Assign.IsValid() {
		return nil, fail("type aliases cannot be wrappers")
	}

	if spec.TypeParams != nil && spec.TypeParams.NumFields() > 0 {
		return nil, fail("generic types are not supported")
	}

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, fail(fmt.Sprintf("expected a struct type, found %s type", syntaxKind(spec.Type)))
	}

	var fields []*ast.Field
	if st.Fields != nil {
		fields = st.Fields.List
	}

	first, ok := common.First(fields)
	if !ok {
		return nil, fail("struct has no fields")
	}

	if len(first.Names) == 0 {
		return nil, fail("first field is embedded; the wrapped value must be a named field")
	}

	field := first.Names[0].Name
	if field == "_" {
		return nil, fail("first field is blank; the wrapped value must be a named field")
	}

	desc := &WrapperDescriptor{
		ID:      TypeID{PkgPath: x.pkgPath, Name: name},
		PkgName: x.file.Name.Name,
		Field:   field,
		Inner:   x.typeRef(first.Type),
		Mode:    dir.Mode,
		Pos:     pos,
	}

	if dir.Mode == capability.ModeGeneric {
		desc.Options, desc.IgnoredOptions = capability.ParseOptions(dir.Args)
	}

	return desc, nil
}

// typeRef resolves the inner type expression.
func (x *Extractor) typeRef(expr ast.Expr) TypeRef {
	ref := TypeRef{
		Expr:    expr,
		Text:    types.ExprString(expr),
		Imports: x.importsOf(expr),
	}

	if t := x.typeOf(expr); t != nil {
		ref.GoType = t
		ref.Kind = kindOf(t)
		ref.Traits = traitsOf(t)

		return ref
	}

	ref.Kind = syntaxKind(expr)
	ref.Traits = syntaxTraits(expr, ref.Kind)

	return ref
}

// typeOf returns the checked type of expr, or nil when it is missing or only
// partially resolved.
func (x *Extractor) typeOf(expr ast.Expr) types.Type {
	if x.info == nil {
		return nil
	}

	tv, ok := x.info.Types[expr]
	if !ok || tv.Type == nil {
		return nil
	}

	if strings.Contains(types.TypeString(tv.Type, nil), "invalid type") {
		return nil
	}

	return tv.Type
}

// importsOf lists the packages a type expression refers to.
func (x *Extractor) importsOf(expr ast.Expr) []Import {
	seen := make(map[string]Import)

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		if imp, ok := x.resolveImport(id); ok {
			seen[imp.Path] = imp
		}

		return true
	})

	out := make([]Import, 0, len(seen))
	for _, imp := range seen {
		out = append(out, imp)
	}

	slices.SortFunc(out, func(a, b Import) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}

func (x *Extractor) resolveImport(id *ast.Ident) (Import, bool) {
	if x.info != nil {
		// Packages that failed to import are empty placeholders named after
		// the last path element; the file table guesses better.
		if pn, ok := x.info.Uses[id].(*types.PkgName); ok && pn.Imported().Scope().Len() > 0 {
			return Import{
				Path:  pn.Imported().Path(),
				Name:  pn.Imported().Name(),
				Alias: id.Name,
			}, true
		}
	}

	imp, ok := x.imports[id.Name]

	return imp, ok
}

func dirOf(filename string) string {
	if filename == "" {
		return ""
	}

	return filepath.Dir(filename)
}
