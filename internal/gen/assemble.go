package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"

	"holda/internal/analyze"
)

// render formats f. On failure the unformatted source is written next to the
// intended output and returned alongside the error.
func (g *Generator) render(desc *analyze.WrapperDescriptor, f *jen.File, filename string) (GeneratedFile, error) {
	f.NoFormat = true

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", filename, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		dir := g.config.DebugDir
		if dir == "" {
			dir = desc.Dir()
		}

		if werr := writeDebugUnformatted(dir, filename, buf.Bytes()); werr != nil {
			g.logger.Warn("could not write unformatted source", "file", filename, "error", werr)
		}

		return GeneratedFile{Filename: filename, Content: buf.Bytes()},
			fmt.Errorf("formatting %s: %w", filename, err)
	}

	return GeneratedFile{Filename: filename, Content: formatted}, nil
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. It is best-effort and never replaces the real file.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	// Keep a .go extension for syntax highlighting without colliding with the
	// real output.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, debugName), content, filePerm)
}
