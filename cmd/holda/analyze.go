package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"holda/internal/analyze"
	"holda/internal/capability"
	"holda/internal/driver"
)

type analyzeReport struct {
	Packages []packageReport `yaml:"packages"`
}

type packageReport struct {
	Path     string          `yaml:"path"`
	Dir      string          `yaml:"dir"`
	Wrappers []wrapperReport `yaml:"wrappers"`
}

type wrapperReport struct {
	Name         string              `yaml:"name"`
	Position     string              `yaml:"position"`
	Mode         capability.Mode     `yaml:"mode"`
	Field        string              `yaml:"field"`
	Inner        string              `yaml:"inner"`
	Kind         analyze.TypeKind    `yaml:"kind"`
	Traits       analyze.InnerTraits `yaml:"traits"`
	Options      capability.Options  `yaml:"options"`
	Ignored      []string            `yaml:"ignored_options,omitempty"`
	Capabilities capability.Set      `yaml:"capabilities"`
	Fragments    []string            `yaml:"fragments"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [packages]",
	Short: "Print the wrappers found and what would be generated for them, as YAML",
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

		var report analyzeReport
		for _, pkg := range pkgs {
			if len(pkg.Wrappers) == 0 {
				continue
			}

			pr := packageReport{Path: pkg.Path, Dir: pkg.Dir}
			for _, w := range pkg.Wrappers {
				pr.Wrappers = append(pr.Wrappers, wrapperReport{
					Name:         w.Name(),
					Position:     w.Pos.String(),
					Mode:         w.Mode,
					Field:        w.Field,
					Inner:        w.Inner.Text,
					Kind:         w.Inner.Kind,
					Traits:       w.Inner.Traits,
					Options:      w.Options,
					Ignored:      w.IgnoredOptions,
					Capabilities: d.Capabilities(w),
					Fragments:    d.Fragments(w),
				})
			}

			report.Packages = append(report.Packages, pr)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)

		if err := enc.Encode(report); err != nil {
			return err
		}

		if err := enc.Close(); err != nil {
			return err
		}

		if diags.HasErrors() {
			return errFailed
		}

		return nil
	},
}
