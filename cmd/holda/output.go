package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"holda/internal/config"
	"holda/internal/diagnostic"
	"holda/internal/driver"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen)
	pathColor    = color.New(color.Bold)
)

// errFailed is returned after problems have already been reported.
var errFailed = errors.New("holda: failed")

func exitCode(err error) int {
	if errors.Is(err, errFailed) {
		return 1
	}

	return 2
}

func printError(w io.Writer, err error) {
	if errors.Is(err, errFailed) {
		return
	}

	fmt.Fprintf(w, "%s %v\n", errorColor.Sprint("error:"), err)
}

// setupOutput applies --color and returns a logger honoring --verbose.
func setupOutput(cmd *cobra.Command) (*slog.Logger, error) {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}

	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", colorFlag)
	}

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return logger, nil
}

// loadConfig reads the file named by --config, or the nearest project file
// above dir, or falls back to the defaults.
func loadConfig(cmd *cobra.Command, dir string, logger *slog.Logger) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}

	if path == "" {
		path, err = config.Find(dir)
		if err != nil {
			return nil, err
		}
	}

	if path == "" {
		logger.Debug("no config file, using defaults")
		return config.Default(), nil
	}

	logger.Debug("loading config", "path", path)

	return config.LoadFile(path)
}

// newDriver wires configuration, output and flags into a driver.
func newDriver(cmd *cobra.Command, opts driver.Options) (*driver.Driver, error) {
	logger, err := setupOutput(cmd)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	cfg, err := loadConfig(cmd, dir, logger)
	if err != nil {
		return nil, err
	}

	opts.BuildTags, err = cmd.Root().PersistentFlags().GetStringSlice("tags")
	if err != nil {
		return nil, err
	}

	return driver.New(cfg, opts, logger), nil
}

// printDiagnostics writes every diagnostic to w, most severe first.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, verbose bool) {
	for _, d := range diags.Errors {
		printDiagnostic(w, errorColor, d)
	}

	for _, d := range diags.Warnings {
		printDiagnostic(w, warningColor, d)
	}

	if verbose {
		for _, d := range diags.Infos {
			printDiagnostic(w, infoColor, d)
		}
	}
}

func printDiagnostic(w io.Writer, c *color.Color, d diagnostic.Diagnostic) {
	var where string
	if d.Pos.IsValid() {
		where = pathColor.Sprint(d.Pos.String()) + ": "
	}

	var typ string
	if d.Type != "" {
		typ = d.Type + ": "
	}

	fmt.Fprintf(w, "%s%s [%s] %s%s\n", where, c.Sprint(d.Severity.String()), d.Code, typ, d.Message)
}

func isVerbose(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	return v
}
