package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"holda/internal/config"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing project file")
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a holda.yaml with the default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupOutput(cmd); err != nil {
			return err
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		if !initForce {
			for _, name := range config.FileNames {
				existing := filepath.Join(dir, name)
				if _, err := os.Stat(existing); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", existing)
				}
			}
		}

		path := filepath.Join(dir, config.FileNames[0])
		if err := config.WriteFile(config.Default(), path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", okColor.Sprint("ok"), pathColor.Sprint(path))

		return nil
	},
}
