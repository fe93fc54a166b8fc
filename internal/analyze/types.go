package analyze

import (
	"go/ast"
	"go/token"
	"go/types"

	"holda/internal/capability"
	"holda/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string `yaml:"pkg_path"` // e.g., "holda/examples/username"
	Name    string `yaml:"name"`     // e.g., "UserName"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the shape of an inner type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindNamed              // named type, local or imported (e.g., uuid.UUID)
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindStruct             // struct literal type (e.g., struct{})
	TypeKindInterface          // interface type, including any and error
	TypeKindFunc               // func type
	TypeKindChan               // channel type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindNamed:
		return "named"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	default:
		return common.UnknownStr
	}
}

// MarshalText renders the kind for YAML reports.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Import is a package the inner type expression refers to.
type Import struct {
	Path  string `yaml:"path"`  // import path
	Name  string `yaml:"name"`  // declared package name
	Alias string `yaml:"alias"` // qualifier used in the source file
}

// TypeRef is the inner type of a wrapper.
type TypeRef struct {
	// Expr is the type expression as written in the declaration.
	Expr ast.Expr `yaml:"-"`
	// Text is Expr printed back as Go source.
	Text string `yaml:"text"`
	// Imports lists every package Expr refers to, sorted by path.
	Imports []Import `yaml:"imports,omitempty"`
	// Kind is the shape of the type.
	Kind TypeKind `yaml:"kind"`
	// Traits drive the choice of delegation in generated code.
	Traits InnerTraits `yaml:"traits"`
	// GoType is the checked type, nil when type information was unavailable.
	GoType types.Type `yaml:"-"`
}

// InnerTraits summarises what the generator knows about an inner type.
// Traits never disable a capability; they only choose how it delegates.
type InnerTraits struct {
	// Resolved is true when the traits come from go/types rather than syntax.
	Resolved bool `yaml:"resolved"`
	// Approximable is true when T is its own underlying type, so a
	// constructor can accept any V with constraint ~T.
	Approximable bool `yaml:"approximable"`
	Comparable   bool `yaml:"comparable"`
	// Ordered is true when cmp.Compare accepts T.
	Ordered bool `yaml:"ordered"`
	// HasEqual, HasCompare, HasHash and HasClone report methods with the
	// shapes Equal(T) bool, Compare(T) int, Hash(maphash.Seed) uint64 and
	// Clone() T.
	HasEqual   bool `yaml:"has_equal"`
	HasCompare bool `yaml:"has_compare"`
	HasHash    bool `yaml:"has_hash"`
	HasClone   bool `yaml:"has_clone"`
	// TextUnmarshaler is true when *T implements encoding.TextUnmarshaler.
	TextUnmarshaler bool `yaml:"text_unmarshaler"`
}

// WrapperDescriptor is the normalized form of one wrapper declaration.
// It is built once by the extractor and never modified afterwards.
type WrapperDescriptor struct {
	ID      TypeID          `yaml:"id"`
	PkgName string          `yaml:"pkg_name"`
	Field   string          `yaml:"field"`
	Inner   TypeRef         `yaml:"inner"`
	Mode    capability.Mode `yaml:"mode"`
	// Options are the suppression flags read from the directive. ModeString
	// ignores them.
	Options capability.Options `yaml:"options"`
	// IgnoredOptions are option names that were not recognized.
	IgnoredOptions []string `yaml:"ignored_options,omitempty"`
	// Pos is the position of the type name in the declaration.
	Pos token.Position `yaml:"-"`
}

// Name returns the wrapper type name.
func (d *WrapperDescriptor) Name() string {
	return d.ID.Name
}

// Dir returns the directory the declaration lives in; generated files are
// written next to it.
func (d *WrapperDescriptor) Dir() string {
	return dirOf(d.Pos.Filename)
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path     string               // Import path
	Name     string               // Package name
	Dir      string               // Directory of the package sources
	Files    []string             // Go files of the package, generated ones included
	Wrappers []*WrapperDescriptor // Wrapper declarations, in source order
}
