package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"holda/internal/analyze"
	"holda/internal/driver"
)

var (
	genJobs   int
	genWatch  bool
	genDryRun bool
)

func init() {
	genCmd.Flags().IntVarP(&genJobs, "jobs", "j", 0, "packages generated in parallel (default: GOMAXPROCS)")
	genCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "regenerate whenever a package source file changes")
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "print generated code instead of writing it")
}

var genCmd = &cobra.Command{
	Use:   "gen [packages]",
	Short: "Generate methods for marked wrapper types",
	Long: `Generate loads the given packages (default ./...), finds structs marked
with //holda:wrapper or //holda:string, and writes one <name>_holda.go file
per wrapper next to its declaration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDriver(cmd, driver.Options{Jobs: genJobs, DryRun: genDryRun})
		if err != nil {
			return err
		}

		if !genWatch {
			_, err := runGen(cmd.Context(), cmd, d, args)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintln(cmd.ErrOrStderr(), infoColor.Sprint("watching for changes, press Ctrl+C to stop"))

		return d.Watch(ctx, driver.DefaultDebounce, func(ctx context.Context) ([]*analyze.PackageInfo, error) {
			return runGen(ctx, cmd, d, args)
		})
	},
}

func runGen(ctx context.Context, cmd *cobra.Command, d *driver.Driver, patterns []string) ([]*analyze.PackageInfo, error) {
	pkgs, diags, err := d.Load(ctx, patterns...)
	printDiagnostics(cmd.ErrOrStderr(), diags, isVerbose(cmd))
	if err != nil {
		return nil, err
	}

	if diags.HasErrors() {
		return pkgs, errFailed
	}

	results, err := d.Generate(ctx, pkgs)
	if err != nil {
		return pkgs, err
	}

	out := cmd.OutOrStdout()
	wrappers, files := 0, 0

	for _, res := range results {
		wrappers += len(res.Package.Wrappers)
		files += len(res.Files)

		if genDryRun {
			for _, f := range res.Files {
				fmt.Fprintf(out, "// %s\n%s\n", pathColor.Sprintf("%s/%s", res.Package.Dir, f.Filename), f.Content)
			}
		}
	}

	verb := "wrote"
	if genDryRun {
		verb = "would write"
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %d files for %d wrappers in %d packages\n",
		okColor.Sprint("ok"), verb, files, wrappers, len(results))

	return pkgs, nil
}
