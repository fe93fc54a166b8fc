package gen

import (
	"fmt"
	"log/slog"

	"github.com/dave/jennifer/jen"

	"holda/internal/analyze"
	"holda/internal/capability"
	"holda/internal/config"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Header is the first line of every generated file.
	Header string
	// Suffix is appended to the snake_case wrapper name to form file names.
	Suffix string
	// GenerateComments enables doc comments on generated functions.
	GenerateComments bool
	// SerdeEnabled turns the serialization capability on for the whole run.
	SerdeEnabled bool
	// SerdeBuildTag, when set, moves serialization methods into a separate
	// file guarded by //go:build SerdeBuildTag.
	SerdeBuildTag string
	// SerdeFormats lists the formats serialization methods are emitted for.
	SerdeFormats []config.Format
	// DebugDir receives .unformatted.go sidecars when formatting fails.
	// Empty means the wrapper's own directory.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfigFrom(config.Default())
}

// GeneratorConfigFrom derives a generator configuration from a project file.
func GeneratorConfigFrom(cfg *config.Config) GeneratorConfig {
	return GeneratorConfig{
		Header:           cfg.Output.Header,
		Suffix:           cfg.Output.Suffix,
		GenerateComments: true,
		SerdeEnabled:     cfg.SerdeEnabled(),
		SerdeBuildTag:    cfg.Serde.BuildTag,
		SerdeFormats:     cfg.Serde.Formats,
	}
}

// Generator expands wrapper descriptors into Go source files. It holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	config GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config, logger: slog.Default()}
}

// WithLogger returns a copy of g that logs to logger.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	c := *g
	c.logger = logger

	return &c
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "user_name_holda.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate expands one wrapper with the given capabilities enabled. It
// returns the main file and, when serialization is guarded by a build tag,
// the separate serialization file.
func (g *Generator) Generate(desc *analyze.WrapperDescriptor, caps capability.Set) ([]GeneratedFile, error) {
	if !g.serdeOn() {
		caps = caps.Without(capability.Serde)
	}

	u := newUnit(desc, caps, g.config)

	g.logger.Debug("expanding wrapper",
		"wrapper", desc.ID.String(),
		"mode", desc.Mode.String(),
		"inner", desc.Inner.Text,
		"capabilities", caps.String(),
	)

	main := g.newFile(desc, "")
	serde := main
	split := g.config.SerdeBuildTag != "" && caps.Has(capability.Serde)
	if split {
		serde = g.newFile(desc, g.config.SerdeBuildTag)
	}

	for _, frag := range fragments {
		if !frag.enabled(u) {
			continue
		}

		target := main
		if frag.serde {
			target = serde
		}

		for _, decl := range frag.emit(u) {
			target.Add(decl)
			target.Line()
		}
	}

	name := FileName(desc.Name(), g.config.Suffix)
	out, err := g.render(desc, main, name)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", desc.ID, err)
	}

	files := []GeneratedFile{out}
	if split {
		name = SerdeFileName(desc.Name(), g.config.Suffix)
		out, err = g.render(desc, serde, name)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", desc.ID, err)
		}

		files = append(files, out)
	}

	return files, nil
}

// GeneratePackage expands every wrapper of a package. resolve picks the
// capability set of each wrapper.
func (g *Generator) GeneratePackage(pkg *analyze.PackageInfo, resolve func(*analyze.WrapperDescriptor) capability.Set) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, desc := range pkg.Wrappers {
		out, err := g.Generate(desc, resolve(desc))
		if err != nil {
			return nil, err
		}

		files = append(files, out...)
	}

	return files, nil
}

func (g *Generator) serdeOn() bool {
	return g.config.SerdeEnabled && len(g.config.SerdeFormats) > 0
}

// newFile creates an empty output file for desc. A non-empty buildTag adds a
// //go:build line above the header.
func (g *Generator) newFile(desc *analyze.WrapperDescriptor, buildTag string) *jen.File {
	f := jen.NewFilePathName(desc.ID.PkgPath, desc.PkgName)
	if buildTag != "" {
		f.HeaderComment("//go:build " + buildTag + "\n")
	}

	f.HeaderComment(g.config.Header)

	f.ImportName(yamlPath, "yaml")
	f.ImportName(msgpackPath, "msgpack")

	for _, imp := range desc.Inner.Imports {
		if imp.Alias == imp.Name {
			f.ImportName(imp.Path, imp.Name)
		} else {
			f.ImportAlias(imp.Path, imp.Alias)
		}
	}

	return f
}
