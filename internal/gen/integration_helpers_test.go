package gen_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runExampleIntegrationTest regenerates an example package with the holda
// command and runs its tests against the fresh output.
func runExampleIntegrationTest(t *testing.T, exampleName string) {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	exampleDir := filepath.Join(repoRoot, "examples", exampleName)

	cmd := exec.CommandContext(t.Context(), "go", "run", "./cmd/holda", "gen",
		"--config", filepath.Join(repoRoot, "holda.yaml"),
		"./examples/"+exampleName,
	)
	cmd.Dir = repoRoot

	b, err := cmd.CombinedOutput()
	if err != nil {
		// Best-effort: dump what got written for easier debugging.
		if entries, readErr := os.ReadDir(exampleDir); readErr == nil {
			for _, e := range entries {
				if e.IsDir() || !strings.Contains(e.Name(), "_holda") {
					continue
				}

				p := filepath.Join(exampleDir, e.Name())
				if fb, rerr := os.ReadFile(p); rerr == nil {
					t.Logf("generated file %s:\n%s", p, string(fb))
				}
			}
		}

		t.Fatalf("gen failed: %v\n%s", err, string(b))
	}

	test := exec.CommandContext(t.Context(), "go", "test", "./examples/"+exampleName, "-count=1")
	test.Dir = repoRoot

	b, err = test.CombinedOutput()
	if err != nil {
		t.Fatalf("example tests failed: %v\n%s", err, string(b))
	}
}

func TestExamples_Regenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}

	for _, name := range []string{"username", "numeric", "unit", "custom", "uuidwrap", "payload"} {
		t.Run(name, func(t *testing.T) {
			runExampleIntegrationTest(t, name)
		})
	}
}

func TestExamples_UpToDate(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	cmd := exec.CommandContext(t.Context(), "go", "run", "./cmd/holda", "check", "./examples/...")
	cmd.Dir = repoRoot

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, string(b))
	}
}
