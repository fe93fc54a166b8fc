package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holda/internal/analyze"
	"holda/internal/capability"
	"holda/internal/config"
	"holda/internal/diagnostic"
)

const wrappersSrc = `package ids

//holda:wrapper NoOrd
type Counter struct {
	n int
}

//holda:string
type Label struct {
	text string
}
`

func loadTemp(t *testing.T) (*analyze.PackageInfo, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "wrappers.go")
	require.NoError(t, os.WriteFile(path, []byte(wrappersSrc), 0o644))

	var diags diagnostic.Diagnostics
	pkg, err := analyze.ParseSource(path, nil, &diags)
	require.NoError(t, err)
	require.Len(t, pkg.Wrappers, 2)

	return pkg, dir
}

func TestDriver_CapabilitiesMergeConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
types:
  Counter:
    options: [NoHash, Mystery]
  Label:
    options: [NoEq]
`))
	require.NoError(t, err)

	pkg, _ := loadTemp(t)
	d := New(cfg, Options{}, nil)

	var diags diagnostic.Diagnostics
	for _, desc := range pkg.Wrappers {
		d.applyConfig(desc, &diags)
	}

	counter, label := pkg.Wrappers[0], pkg.Wrappers[1]
	assert.Equal(t, capability.Options{NoOrd: true, NoHash: true}, counter.Options)
	assert.Equal(t, capability.All.Without(capability.Ord).Without(capability.Hash), d.Capabilities(counter))

	// String wrappers ignore configured options.
	assert.Equal(t, capability.Options{}, label.Options)
	assert.Equal(t, capability.All, d.Capabilities(label))

	require.Len(t, diags.Infos, 1)
	assert.Contains(t, diags.Infos[0].Message, `"Mystery"`)
	assert.NotContains(t, diags.Infos[0].Message, "did you mean")
}

func TestDriver_SerdeDisabled(t *testing.T) {
	cfg, err := config.Parse([]byte("serde:\n  enabled: false\n"))
	require.NoError(t, err)

	pkg, _ := loadTemp(t)
	d := New(cfg, Options{}, nil)

	assert.False(t, d.Capabilities(pkg.Wrappers[1]).Has(capability.Serde))
	assert.NotContains(t, d.Fragments(pkg.Wrappers[1]), "SerializationEncode")
}

func TestDriver_GenerateAndCheck(t *testing.T) {
	pkg, dir := loadTemp(t)
	d := New(nil, Options{Jobs: 2}, nil)
	ctx := context.Background()

	results, err := d.Check(ctx, []*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Drift, 2)

	results, err = d.Generate(ctx, []*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	require.Len(t, results[0].Files, 2)

	for _, name := range []string{"counter_holda.go", "label_holda.go"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	results, err = d.Check(ctx, []*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	assert.Empty(t, results[0].Drift)
}

func TestDriver_GenerateAfterRename(t *testing.T) {
	pkg, dir := loadTemp(t)
	d := New(nil, Options{}, nil)
	ctx := context.Background()

	_, err := d.Generate(ctx, []*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "counter_holda.go"))

	path := filepath.Join(dir, "wrappers.go")
	renamed := strings.ReplaceAll(wrappersSrc, "Counter", "Tally")
	require.NoError(t, os.WriteFile(path, []byte(renamed), 0o644))

	var diags diagnostic.Diagnostics
	pkg, err = analyze.ParseSource(path, nil, &diags)
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), diags.Error())

	_, err = d.Generate(ctx, []*analyze.PackageInfo{pkg})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "counter_holda.go"))
	assert.FileExists(t, filepath.Join(dir, "tally_holda.go"))
	assert.FileExists(t, filepath.Join(dir, "label_holda.go"))
	assert.FileExists(t, path)

	results, err := d.Check(ctx, []*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	assert.Empty(t, results[0].Drift)
}

func TestDriver_DryRunWritesNothing(t *testing.T) {
	pkg, dir := loadTemp(t)
	d := New(nil, Options{DryRun: true}, nil)

	results, err := d.Generate(context.Background(), []*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	assert.Len(t, results[0].Files, 2)
	assert.NoFileExists(t, filepath.Join(dir, "counter_holda.go"))
}

func TestDriver_GenerateCanceled(t *testing.T) {
	pkg, _ := loadTemp(t)
	d := New(nil, Options{DryRun: true}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Generate(ctx, []*analyze.PackageInfo{pkg})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDriver_Relevant(t *testing.T) {
	d := New(nil, Options{}, nil)

	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{name: "/p/wrappers.go", op: fsnotify.Write, want: true},
		{name: "/p/wrappers.go", op: fsnotify.Create, want: true},
		{name: "/p/wrappers.go", op: fsnotify.Chmod, want: false},
		{name: "/p/wrappers_test.go", op: fsnotify.Write, want: false},
		{name: "/p/label_holda.go", op: fsnotify.Write, want: false},
		{name: "/p/label_holda_serde.go", op: fsnotify.Write, want: false},
		{name: "/p/label_holda.unformatted.go", op: fsnotify.Write, want: false},
		{name: "/p/README.md", op: fsnotify.Write, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.relevant(fsnotify.Event{Name: tt.name, Op: tt.op}), tt.name)
	}
}
