package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holda/internal/analyze"
	"holda/internal/capability"
	"holda/internal/config"
	"holda/internal/diagnostic"
)

func describe(t *testing.T, src string) *analyze.WrapperDescriptor {
	t.Helper()

	var diags diagnostic.Diagnostics
	pkg, err := analyze.ParseSource("wrappers.go", src, &diags)
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), diags.Error())
	require.NotEmpty(t, pkg.Wrappers)

	return pkg.Wrappers[len(pkg.Wrappers)-1]
}

func generateWith(t *testing.T, cfg GeneratorConfig, src string) []GeneratedFile {
	t.Helper()

	desc := describe(t, src)
	files, err := NewGenerator(cfg).Generate(desc, capability.Resolve(desc.Mode, desc.Options))
	require.NoError(t, err, spew.Sdump(desc.Inner.Traits))

	return files
}

func generate(t *testing.T, src string) string {
	t.Helper()

	files := generateWith(t, DefaultGeneratorConfig(), src)
	require.Len(t, files, 1)

	return string(files[0].Content)
}

func methodsOf(t *testing.T, src string) []string {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "out.go", src, 0)
	require.NoError(t, err)

	var out []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			out = append(out, fn.Name.Name)
		}
	}

	return out
}

const userNameSrc = `package names

//holda:string
type UserName struct {
	inner string
}
`

func TestGenerate_StringWrapper(t *testing.T) {
	out := generate(t, userNameSrc)

	assert.True(t, strings.HasPrefix(out, "// Code generated by holda. DO NOT EDIT.\n\npackage names\n"))

	for _, want := range []string{
		"func NewUserName(value string) UserName {\n\treturn UserName{inner: value}\n}",
		"func UserNameOf[V ~string](value V) UserName {\n\treturn UserName{inner: string(value)}\n}",
		"func UserNameFromString(s string) UserName {\n\treturn UserName{inner: s}\n}",
		"func (u *UserName) AsRef() *string {\n\treturn &u.inner\n}",
		"func UserNameFrom(value string) UserName {\n\treturn UserName{inner: value}\n}",
		"func (u UserName) Into() string {\n\treturn u.inner\n}",
		"func (u UserName) Get() string {\n\treturn u.inner\n}",
		"func (u *UserName) Set(value string) {\n\tu.inner = value\n}",
		"func (u UserName) String() string {\n\treturn fmt.Sprint(u.inner)\n}",
		"func (u UserName) GoString() string {\n\treturn fmt.Sprintf(\"%#v\", u.inner)\n}",
		"func ParseUserName(text string) (UserName, error) {",
		"if err := out.UnmarshalText([]byte(text)); err != nil {\n\t\treturn UserName{}, err\n\t}",
		"func (u *UserName) UnmarshalText(text []byte) error {\n\tu.inner = string(text)\n\treturn nil\n}",
		"func (u UserName) Equal(other UserName) bool {\n\treturn u.inner == other.inner\n}",
		"func (u UserName) Compare(other UserName) int {\n\treturn cmp.Compare(u.inner, other.inner)\n}",
		"func (u UserName) Less(other UserName) bool {\n\treturn u.Compare(other) < 0\n}",
		"func (u UserName) Hash(seed maphash.Seed) uint64 {\n\treturn maphash.Comparable(seed, u.inner)\n}",
		"func (u UserName) Clone() UserName {\n\treturn u\n}",
		"func (u UserName) MarshalJSON() ([]byte, error) {\n\treturn json.Marshal(u.inner)\n}",
		"func (u *UserName) UnmarshalJSON(data []byte) error {\n\treturn json.Unmarshal(data, &u.inner)\n}",
		"// NewUserName wraps value.\n",
		"// UserNameOf wraps value, which may be of any type with the same underlying type.\n",
	} {
		assert.Contains(t, out, want)
	}

	assert.Equal(t, []string{
		"NewUserName", "UserNameOf", "UserNameFromString", "AsRef", "UserNameFrom", "Into", "Get", "Set",
		"String", "GoString", "ParseUserName", "UnmarshalText", "Equal", "Compare", "Less",
		"Hash", "Clone", "MarshalJSON", "UnmarshalJSON",
	}, methodsOf(t, out))
}

func TestGenerate_StringModeIgnoresSuppression(t *testing.T) {
	desc := describe(t, userNameSrc)
	desc.Options = capability.Options{NoDisplay: true, NoEq: true}

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(desc, capability.Resolve(desc.Mode, desc.Options))
	require.NoError(t, err)

	out := string(files[0].Content)
	assert.Contains(t, out, ") String() string")
	assert.Contains(t, out, ") Equal(other UserName) bool")
}

func TestGenerate_SuppressedNumericWrapper(t *testing.T) {
	out := generate(t, `package nums

//holda:wrapper NoEq NoOrd NoHash
type MyI32Wrapper struct {
	inner int32
}
`)

	assert.Equal(t, []string{
		"NewMyI32Wrapper", "MyI32WrapperOf", "AsRef", "MyI32WrapperFrom", "Into", "Get", "Set",
		"String", "GoString", "Clone", "MarshalJSON", "UnmarshalJSON",
	}, methodsOf(t, out))

	assert.NotContains(t, out, "cmp")
	assert.NotContains(t, out, "maphash")
	assert.NotContains(t, out, "FromString")
	assert.NotContains(t, out, "UnmarshalText")
}

func TestGenerate_SuppressionIsIndependent(t *testing.T) {
	all := []string{
		"NewCount", "CountOf", "AsRef", "CountFrom", "Into", "Get", "Set", "String", "GoString",
		"Equal", "Compare", "Less", "Hash", "Clone", "MarshalJSON", "UnmarshalJSON",
	}

	tests := []struct {
		option  string
		removed []string
	}{
		{option: "", removed: nil},
		{option: "NoDisplay", removed: []string{"String"}},
		{option: "NoEq", removed: []string{"Equal"}},
		{option: "NoOrd", removed: []string{"Compare", "Less"}},
		{option: "NoHash", removed: []string{"Hash"}},
		{option: "NoClone", removed: []string{"Clone"}},
		{option: "NoSerde", removed: []string{"MarshalJSON", "UnmarshalJSON"}},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			out := generate(t, "package p\n\n//holda:wrapper "+tt.option+"\ntype Count struct {\n\tn int\n}\n")

			var want []string
			for _, m := range all {
				if !slices.Contains(tt.removed, m) {
					want = append(want, m)
				}
			}

			assert.Equal(t, want, methodsOf(t, out))
		})
	}
}

func TestGenerate_NoDisplayKeepsGoString(t *testing.T) {
	out := generate(t, `package nums

//holda:wrapper NoDisplay NoEq NoOrd NoHash
type MyF64Wrapper struct {
	inner float64
}
`)

	assert.NotContains(t, out, ") String() string")
	assert.Contains(t, out, "func (m MyF64Wrapper) GoString() string {")
}

func TestGenerate_CustomStructDelegates(t *testing.T) {
	out := generate(t, `package custom

type Point struct {
	X, Y int
}

func (p Point) Compare(other Point) int { return p.X - other.X }

//holda:wrapper
type Location struct {
	p Point
}
`)

	assert.Contains(t, out, "func NewLocation(value Point) Location {\n\treturn Location{p: value}\n}")
	assert.Contains(t, out, "return l.p.Compare(other.p)")
	assert.Contains(t, out, "return l.p == other.p")
	assert.Contains(t, out, "return maphash.Comparable(seed, l.p)")
	assert.NotContains(t, out, "cmp.Compare")
}

func TestGenerate_InnerMethodsPreferred(t *testing.T) {
	out := generate(t, `package custom

import "hash/maphash"

type Tags []string

func (t Tags) Equal(o Tags) bool             { return len(t) == len(o) }
func (t Tags) Compare(o Tags) int            { return len(t) - len(o) }
func (t Tags) Hash(seed maphash.Seed) uint64 { return 0 }
func (t Tags) Clone() Tags                   { return append(Tags(nil), t...) }

//holda:wrapper
type Labels struct {
	tags Tags
}
`)

	assert.Contains(t, out, "return l.tags.Equal(other.tags)")
	assert.Contains(t, out, "return l.tags.Compare(other.tags)")
	assert.Contains(t, out, "return Labels{tags: l.tags.Clone()}")
}

func TestGenerate_EqualFollowsHash(t *testing.T) {
	src := `package clock

type Stamp struct {
	wall int64
	loc  *string
}

func (s Stamp) Equal(o Stamp) bool { return s.wall == o.wall }

//holda:wrapper NoOrd
type When struct {
	at Stamp
}
`

	desc := describe(t, src)
	require.True(t, desc.Inner.Traits.HasEqual)
	require.False(t, desc.Inner.Traits.HasHash)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(desc, capability.Resolve(desc.Mode, desc.Options))
	require.NoError(t, err)

	out := string(files[0].Content)
	assert.Contains(t, out, "return w.at == other.at")
	assert.Contains(t, out, "return maphash.Comparable(seed, w.at)")

	desc.Inner.Traits.HasHash = true

	files, err = NewGenerator(DefaultGeneratorConfig()).Generate(desc, capability.Resolve(desc.Mode, desc.Options))
	require.NoError(t, err)

	out = string(files[0].Content)
	assert.Contains(t, out, "return w.at.Equal(other.at)")
	assert.Contains(t, out, "return w.at.Hash(seed)")
}

func TestGenerate_CloneCollections(t *testing.T) {
	out := generate(t, "package p\n\n//holda:wrapper NoEq NoOrd NoHash\ntype Names struct {\n\tlist []string\n}\n")
	assert.Contains(t, out, "return Names{list: slices.Clone(n.list)}")
	assert.Contains(t, out, "func NamesOf[V ~[]string](value V) Names {\n\treturn Names{list: []string(value)}\n}")

	out = generate(t, "package p\n\n//holda:wrapper NoEq NoOrd NoHash\ntype Index struct {\n\tm map[string]int\n}\n")
	assert.Contains(t, out, "return Index{m: maps.Clone(i.m)}")
}

func TestGenerate_PointerConversionParenthesised(t *testing.T) {
	out := generate(t, "package p\n\n//holda:wrapper\ntype Ref struct {\n\tp *int\n}\n")
	assert.Contains(t, out, "func RefOf[V ~*int](value V) Ref {\n\treturn Ref{p: (*int)(value)}\n}")
	assert.Contains(t, out, "func (r *Ref) AsRef() **int {")
}

func TestGenerate_UnitWrapper(t *testing.T) {
	out := generate(t, "package p\n\n//holda:wrapper NoDisplay NoEq NoOrd NoHash\ntype Unit struct {\n\tinner struct{}\n}\n")
	assert.Contains(t, out, "func NewUnit(value struct{}) Unit {")
	assert.Contains(t, out, "func UnitOf[V ~struct{}](value V) Unit {")
	assert.Contains(t, out, "func (u Unit) Get() struct{} {")
}

func TestGenerate_ImportedInnerType(t *testing.T) {
	out := generate(t, `package ids

import "github.com/google/uuid"

//holda:wrapper NoOrd
type UserID struct {
	inner uuid.UUID
}
`)

	assert.Contains(t, out, "\"github.com/google/uuid\"")
	assert.Contains(t, out, "func NewUserID(value uuid.UUID) UserID {")
	assert.Contains(t, out, "func (u *UserID) AsRef() *uuid.UUID {")
}

func TestGenerate_AliasedImport(t *testing.T) {
	out := generate(t, `package env

import pb "example.com/proto/v2"

//holda:wrapper NoEq NoOrd NoHash
type Envelope struct {
	msgs map[string]*pb.Message
}
`)

	assert.Contains(t, out, "pb \"example.com/proto/v2\"")
	assert.Contains(t, out, "func (e Envelope) Get() map[string]*pb.Message {")
	assert.Contains(t, out, "return Envelope{msgs: maps.Clone(e.msgs)}")
}

func TestGenerate_UnexportedWrapper(t *testing.T) {
	out := generate(t, "package p\n\n//holda:string\ntype label struct {\n\ttext string\n}\n")

	assert.Contains(t, out, "func newLabel(value string) label {")
	assert.Contains(t, out, "func labelOf[V ~string](value V) label {")
	assert.Contains(t, out, "func labelFromString(s string) label {")
	assert.Contains(t, out, "func labelFrom(value string) label {")
	assert.Contains(t, out, "func parseLabel(text string) (label, error) {")
	assert.Contains(t, out, "func (l label) Get() string {")
}

func TestGenerate_TextUnmarshalerInner(t *testing.T) {
	out := generate(t, `package p

type Code string

func (c *Code) UnmarshalText(text []byte) error { *c = Code(text); return nil }

//holda:string
type Label struct {
	code Code
}
`)

	assert.Contains(t, out, "func LabelFromString(s string) Label {\n\treturn Label{code: Code(s)}\n}")
	assert.Contains(t, out, "if err := l.code.UnmarshalText(text); err != nil {\n\t\treturn fmt.Errorf(\"parse Label: %w\", err)\n\t}")
}

func TestGenerate_SerdeFormats(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.SerdeFormats = []config.Format{config.FormatMsgpack, config.FormatYAML}

	files := generateWith(t, cfg, "package p\n\n//holda:wrapper\ntype Count struct {\n\tn int\n}\n")
	require.Len(t, files, 1)
	out := string(files[0].Content)

	assert.Contains(t, out, "\t\"github.com/vmihailenco/msgpack/v5\"\n")
	assert.Contains(t, out, "\t\"gopkg.in/yaml.v3\"\n")
	assert.Contains(t, out, "func (c Count) MarshalYAML() (any, error) {\n\treturn c.n, nil\n}")
	assert.Contains(t, out, "func (c *Count) UnmarshalYAML(node *yaml.Node) error {\n\treturn node.Decode(&c.n)\n}")
	assert.Contains(t, out, "func (c Count) EncodeMsgpack(enc *msgpack.Encoder) error {\n\treturn enc.Encode(c.n)\n}")
	assert.Contains(t, out, "func (c *Count) DecodeMsgpack(dec *msgpack.Decoder) error {\n\treturn dec.Decode(&c.n)\n}")
	assert.NotContains(t, out, "MarshalJSON")

	// Fixed order regardless of configuration order.
	assert.Less(t, strings.Index(out, "MarshalYAML"), strings.Index(out, "EncodeMsgpack"))
}

func TestGenerate_SerdeDisabled(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.SerdeEnabled = false

	files := generateWith(t, cfg, "package p\n\n//holda:wrapper\ntype Count struct {\n\tn int\n}\n")
	require.Len(t, files, 1)
	assert.NotContains(t, string(files[0].Content), "Marshal")
}

func TestGenerate_SerdeBuildTagSplitsFile(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.SerdeBuildTag = "holda_serde"

	files := generateWith(t, cfg, userNameSrc)
	require.Len(t, files, 2)

	assert.Equal(t, "user_name_holda.go", files[0].Filename)
	assert.Equal(t, "user_name_holda_serde.go", files[1].Filename)

	assert.NotContains(t, string(files[0].Content), "MarshalJSON")
	assert.NotContains(t, string(files[0].Content), "go:build")

	serde := string(files[1].Content)
	assert.True(t, strings.HasPrefix(serde, "//go:build holda_serde\n\n// Code generated by holda. DO NOT EDIT.\n"), serde)
	assert.Contains(t, serde, "func (u UserName) MarshalJSON() ([]byte, error) {")
	assert.NotContains(t, serde, "NewUserName")

	// A wrapper without serde gets no second file.
	files = generateWith(t, cfg, "package p\n\n//holda:wrapper NoSerde\ntype Count struct {\n\tn int\n}\n")
	assert.Len(t, files, 1)
}

func TestGenerate_WithoutComments(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	files := generateWith(t, cfg, userNameSrc)
	out := string(files[0].Content)
	assert.NotContains(t, out, "// NewUserName")
	assert.Contains(t, out, "// Code generated by holda. DO NOT EDIT.")
}

func TestGenerate_Deterministic(t *testing.T) {
	src := `package ids

import "github.com/google/uuid"

//holda:wrapper
type Pair struct {
	m map[uuid.UUID][]string
}
`
	first := generate(t, src)
	for range 5 {
		assert.Equal(t, first, generate(t, src))
	}
}

func TestGenerator_Fragments(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	desc := describe(t, userNameSrc)
	assert.Equal(t, []string{
		"Construction", "TextConstruction", "ReferenceConversion", "OwnershipConversion",
		"DereferenceRead", "DereferenceWrite", "TextualDisplay", "DebugRendering",
		"ParseFromText", "Equality", "Ordering", "Hashing", "Duplication",
		"SerializationEncode", "SerializationDecode",
	}, g.Fragments(desc, capability.All))

	desc = describe(t, "package p\n\n//holda:wrapper\ntype Count struct {\n\tn int\n}\n")
	assert.Equal(t, []string{
		"Construction", "ReferenceConversion", "OwnershipConversion",
		"DereferenceRead", "DereferenceWrite", "DebugRendering",
	}, g.Fragments(desc, capability.None))
}

func TestGeneratePackage(t *testing.T) {
	var diags diagnostic.Diagnostics
	pkg, err := analyze.ParseSource("wrappers.go", `package p

//holda:wrapper
type A struct{ v int }

//holda:string
type B struct{ s string }
`, &diags)
	require.NoError(t, err)

	files, err := NewGenerator(DefaultGeneratorConfig()).GeneratePackage(pkg, func(d *analyze.WrapperDescriptor) capability.Set {
		return capability.Resolve(d.Mode, d.Options)
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a_holda.go", files[0].Filename)
	assert.Equal(t, "b_holda.go", files[1].Filename)
}
