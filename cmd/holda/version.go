package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version can be overridden at build time via -ldflags "-X main.Version=...".
var Version = ""

func versionString() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the holda version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "holda %s %s/%s %s\n",
			pathColor.Sprint(versionString()), runtime.GOOS, runtime.GOARCH, runtime.Version())

		return nil
	},
}
