package analyze

import (
	"context"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"holda/internal/common"
	"holda/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// AnalyzerConfig configures package loading.
type AnalyzerConfig struct {
	// Dir is the directory patterns are resolved from; empty means the
	// current directory.
	Dir string
	// BuildTags are passed to the go command as -tags.
	BuildTags []string
	// GeneratedHeader marks holda's own output. Errors located in files
	// carrying it are reported as warnings.
	GeneratedHeader string
}

// Analyzer loads Go packages and extracts wrapper descriptors.
type Analyzer struct {
	config AnalyzerConfig
	diags  diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	return &Analyzer{config: config}
}

// Diagnostics returns everything reported while loading and extracting.
func (a *Analyzer) Diagnostics() *diagnostic.Diagnostics {
	return &a.diags
}

// LoadPackages loads the packages matching patterns (e.g. "./...",
// "holda/examples/username") and extracts their wrappers.
//
// Type errors, and any error located in a generated file, do not stop
// extraction: a stale generated file must not prevent regenerating it. They
// are reported as warnings and the affected inner types fall back to
// syntax-derived traits. Other listing and parse errors are fatal.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*PackageInfo, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.config.Dir,
	}

	if len(a.config.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.config.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		errs = append(errs, a.packageErrors(pkg)...)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	infos := make([]*PackageInfo, 0, len(pkgs))
	for _, pkg := range pkgs {
		infos = append(infos, a.processPackage(pkg))
	}

	return infos, nil
}

// packageErrors reports the tolerable errors of pkg as warnings and returns
// the rest. A position-less error, such as the compiler's "too many errors",
// is tolerated when the package also has errors in generated files.
func (a *Analyzer) packageErrors(pkg *packages.Package) []error {
	stale := false
	for _, e := range pkg.Errors {
		if a.inGenerated(e) {
			stale = true
			break
		}
	}

	var errs []error
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError || a.inGenerated(e) || (stale && errorFile(e) == "") {
			a.diags.AddWarning(diagnostic.CodeLoad, e.Error(), "", token.Position{})
			continue
		}

		errs = append(errs, e)
	}

	return errs
}

func (a *Analyzer) inGenerated(e packages.Error) bool {
	file := errorFile(e)
	if file == "" || a.config.GeneratedHeader == "" {
		return false
	}

	if !filepath.IsAbs(file) {
		file = filepath.Join(a.config.Dir, file)
	}

	ok, err := common.HasHeader(file, a.config.GeneratedHeader)

	return err == nil && ok
}

// errorFile returns the file an error is located in. List errors often carry
// the position at the start of their message instead of in Pos.
func errorFile(e packages.Error) string {
	pos := e.Pos
	if pos == "" {
		pos, _, _ = strings.Cut(e.Msg, ": ")
	}

	file, _, _ := strings.Cut(pos, ".go:")
	if file == pos || file == "" {
		return ""
	}

	return file + ".go"
}

// processPackage extracts wrappers from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *PackageInfo {
	info := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Files: pkg.GoFiles,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, file := range pkg.Syntax {
		x := NewExtractor(pkg.Fset, file, pkg.TypesInfo, pkg.PkgPath)
		info.Wrappers = append(info.Wrappers, x.ExtractAll(&a.diags)...)
	}

	return info
}
