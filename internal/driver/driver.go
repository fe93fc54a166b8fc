package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"holda/internal/analyze"
	"holda/internal/capability"
	"holda/internal/config"
	"holda/internal/diagnostic"
	"holda/internal/gen"
	"holda/internal/match"
)

// Options configures a Driver.
type Options struct {
	// Dir is the directory package patterns are resolved from.
	Dir string
	// Jobs bounds the number of packages generated concurrently.
	// Zero means GOMAXPROCS.
	Jobs int
	// DryRun generates without writing anything.
	DryRun bool
	// BuildTags are passed to the package loader.
	BuildTags []string
}

// Driver ties loading, capability resolution and generation together.
type Driver struct {
	opts   Options
	cfg    *config.Config
	gen    *gen.Generator
	logger *slog.Logger
}

// New creates a Driver. A nil cfg means the default configuration.
func New(cfg *config.Config, opts Options, logger *slog.Logger) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}

	if logger == nil {
		logger = slog.Default()
	}

	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}

	return &Driver{
		opts:   opts,
		cfg:    cfg,
		gen:    gen.NewGenerator(gen.GeneratorConfigFrom(cfg)).WithLogger(logger),
		logger: logger,
	}
}

// Config returns the configuration the driver runs with.
func (d *Driver) Config() *config.Config {
	return d.cfg
}

// Load loads the packages matching patterns and extracts their wrappers.
func (d *Driver) Load(ctx context.Context, patterns ...string) ([]*analyze.PackageInfo, *diagnostic.Diagnostics, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	a := analyze.NewAnalyzer(analyze.AnalyzerConfig{
		Dir:             d.opts.Dir,
		BuildTags:       d.opts.BuildTags,
		GeneratedHeader: d.cfg.Output.Header,
	})

	pkgs, err := a.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, a.Diagnostics(), err
	}

	diags := a.Diagnostics()
	for _, pkg := range pkgs {
		for _, desc := range pkg.Wrappers {
			d.applyConfig(desc, diags)
		}
	}

	diags.Sort()

	return pkgs, diags, nil
}

// applyConfig merges per-type options from the configuration into desc.
func (d *Driver) applyConfig(desc *analyze.WrapperDescriptor, diags *diagnostic.Diagnostics) {
	if desc.Mode != capability.ModeGeneric {
		return
	}

	opts, ignored := d.cfg.OptionsFor(desc.Name())
	desc.Options = desc.Options.Merge(opts)

	for _, name := range ignored {
		diags.AddInfo(diagnostic.CodeIgnoredOption,
			fmt.Sprintf("unrecognized option %q in config ignored%s", name, match.Hint(name, capability.OptionNames)),
			desc.Name(), desc.Pos)
	}
}

// Capabilities returns the capability set a wrapper is generated with.
func (d *Driver) Capabilities(desc *analyze.WrapperDescriptor) capability.Set {
	caps := capability.Resolve(desc.Mode, desc.Options)
	if !d.cfg.SerdeEnabled() {
		caps = caps.Without(capability.Serde)
	}

	return caps
}

// Fragments lists the fragments a wrapper is generated with.
func (d *Driver) Fragments(desc *analyze.WrapperDescriptor) []string {
	return d.gen.Fragments(desc, d.Capabilities(desc))
}

// PackageResult is the outcome of generating one package.
type PackageResult struct {
	Package *analyze.PackageInfo
	Files   []gen.GeneratedFile
	// Drift is filled by Check only.
	Drift []gen.Drift
}

// Generate expands every wrapper of pkgs and, unless DryRun is set, writes
// the files next to their declarations and removes generated files no wrapper
// produces anymore. Packages are processed concurrently;
// the first error cancels the rest.
func (d *Driver) Generate(ctx context.Context, pkgs []*analyze.PackageInfo) ([]PackageResult, error) {
	return d.each(ctx, pkgs, func(res *PackageResult) error {
		if d.opts.DryRun || res.Package.Dir == "" {
			return nil
		}

		if len(res.Files) > 0 {
			if err := gen.WriteFiles(res.Files, res.Package.Dir); err != nil {
				return fmt.Errorf("writing %s: %w", res.Package.Path, err)
			}

			d.logger.Info("generated", "package", res.Package.Path, "files", len(res.Files))
		}

		removed, err := gen.RemoveOrphans(res.Files, res.Package.Dir, d.cfg.Output.Header)
		if err != nil {
			return fmt.Errorf("cleaning %s: %w", res.Package.Path, err)
		}

		for _, name := range removed {
			d.logger.Info("removed stale file", "package", res.Package.Path, "file", name)
		}

		return nil
	})
}

// Check generates in memory and compares the result with what is on disk.
func (d *Driver) Check(ctx context.Context, pkgs []*analyze.PackageInfo) ([]PackageResult, error) {
	return d.each(ctx, pkgs, func(res *PackageResult) error {
		drift, err := gen.CheckFiles(res.Files, res.Package.Dir, d.cfg.Output.Header)
		if err != nil {
			return fmt.Errorf("checking %s: %w", res.Package.Path, err)
		}

		res.Drift = drift

		return nil
	})
}

func (d *Driver) each(ctx context.Context, pkgs []*analyze.PackageInfo, then func(*PackageResult) error) ([]PackageResult, error) {
	results := make([]PackageResult, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(d.opts.Jobs, max(len(pkgs), 1)))

	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			files, err := d.gen.GeneratePackage(pkg, d.Capabilities)
			if err != nil {
				return err
			}

			res := PackageResult{Package: pkg, Files: files}
			if err := then(&res); err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
