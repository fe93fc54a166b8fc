package common

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedFiles lists the .go files in dir that carry header. A missing dir
// holds no files.
func GeneratedFiles(dir, header string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") || strings.HasSuffix(e.Name(), ".unformatted.go") {
			continue
		}

		ok, err := HasHeader(filepath.Join(dir, e.Name()), header)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, e.Name())
		}
	}

	return out, nil
}

// HasHeader reports whether the first line of path, or the first line after
// a build constraint, equals header.
func HasHeader(path, header string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//go:build") {
			continue
		}

		return line == header, nil
	}

	return false, sc.Err()
}
