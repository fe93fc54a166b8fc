package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"holda/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Fail if generated files are missing or out of date",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDriver(cmd, driver.Options{})
		if err != nil {
			return err
		}

		pkgs, diags, err := d.Load(cmd.Context(), args...)
		printDiagnostics(cmd.ErrOrStderr(), diags, isVerbose(cmd))
		if err != nil {
			return err
		}

		if diags.HasErrors() {
			return errFailed
		}

		results, err := d.Check(cmd.Context(), pkgs)
		if err != nil {
			return err
		}

		w := cmd.ErrOrStderr()
		drifted := 0

		for _, res := range results {
			for _, drift := range res.Drift {
				drifted++
				fmt.Fprintf(w, "%s: %s\n", pathColor.Sprint(filepath.Join(res.Package.Dir, drift.Filename)), warningColor.Sprint(drift.Reason))
			}
		}

		if drifted > 0 {
			fmt.Fprintf(w, "%s %d generated files need updating, run holda gen\n", errorColor.Sprint("error:"), drifted)
			return errFailed
		}

		fmt.Fprintf(w, "%s generated files are up to date\n", okColor.Sprint("ok"))

		return nil
	},
}
