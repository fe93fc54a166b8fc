package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"holda/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files whose content is
// already up to date are left untouched.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		existing, err := os.ReadFile(outputPath)
		if err == nil && bytes.Equal(existing, file.Content) {
			continue
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// RemoveOrphans deletes the files in dir that carry header but are not among
// files, such as the output of a wrapper that was renamed or removed. It
// returns the names it deleted.
func RemoveOrphans(files []GeneratedFile, dir, header string) ([]string, error) {
	existing, err := common.GeneratedFiles(dir, header)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range existing {
		if slices.ContainsFunc(files, func(f GeneratedFile) bool { return f.Filename == name }) {
			continue
		}

		err := os.Remove(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("removing %s: %w", name, err)
		}

		removed = append(removed, name)
	}

	return removed, nil
}

// Drift describes a generated file that does not match what would be
// generated now.
type Drift struct {
	Filename string
	Reason   string // "missing", "stale" or "orphaned"
}

// String returns "filename: reason".
func (d Drift) String() string {
	return d.Filename + ": " + d.Reason
}

// CheckFiles compares files with what is on disk in dir. Generated files in
// dir that carry header but are not among files are reported as orphaned.
func CheckFiles(files []GeneratedFile, dir, header string) ([]Drift, error) {
	var drifts []Drift

	want := make(map[string]bool, len(files))
	for _, file := range files {
		want[file.Filename] = true

		existing, err := os.ReadFile(filepath.Join(dir, file.Filename))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			drifts = append(drifts, Drift{Filename: file.Filename, Reason: "missing"})
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", file.Filename, err)
		case !bytes.Equal(existing, file.Content):
			drifts = append(drifts, Drift{Filename: file.Filename, Reason: "stale"})
		}
	}

	orphans, err := common.GeneratedFiles(dir, header)
	if err != nil {
		return nil, err
	}

	for _, name := range orphans {
		if !want[name] {
			drifts = append(drifts, Drift{Filename: name, Reason: "orphaned"})
		}
	}

	slices.SortFunc(drifts, func(a, b Drift) int {
		return strings.Compare(a.Filename, b.Filename)
	})

	return drifts, nil
}
