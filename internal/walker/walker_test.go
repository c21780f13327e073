// # internal/walker/walker_test.go
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"codescope/internal/core/errors"
	"codescope/internal/lang"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newWalker(t *testing.T, opts Options) *Walker {
	t.Helper()
	if opts.MaxFileSizeBytes == 0 {
		opts.MaxFileSizeBytes = 10 * 1024 * 1024
	}
	w, err := New(lang.NewCatalog(), opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestDiscoverBasic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":        "package main\n",
		"lib/util.py":    "x = 1\n",
		"docs/README.md": "# docs\n",
		"assets/logo":    "binary\n",
	})

	w := newWalker(t, Options{})
	files, stats, err := w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	got := relPaths(t, root, files)
	expected := []string{"lib/util.py", "main.go"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
	if stats.FilesFound != 2 {
		t.Errorf("expected 2 files found, got %d", stats.FilesFound)
	}
	if stats.SkippedLanguage != 2 {
		t.Errorf("expected 2 language skips, got %d", stats.SkippedLanguage)
	}
}

func TestDiscoverSkipsHidden(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"visible.go":       "package a\n",
		".hidden.go":       "package a\n",
		".cache/deep.go":   "package a\n",
		".git/objects/x.c": "int x;\n",
	})

	w := newWalker(t, Options{})
	files, stats, err := w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "visible.go" {
		t.Fatalf("expected only visible.go, got %v", got)
	}
	if stats.SkippedHidden != 1 {
		t.Errorf("expected 1 hidden skip, got %d", stats.SkippedHidden)
	}

	w = newWalker(t, Options{IncludeHidden: true})
	files, _, err = w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	got = relPaths(t, root, files)
	// .git stays excluded even with hidden entries included.
	expected := []string{".cache/deep.go", ".hidden.go", "visible.go"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestDiscoverExcludePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":           "package main\n",
		"main_test.go":      "package main\n",
		"vendor/dep/dep.go": "package dep\n",
	})

	w := newWalker(t, Options{ExcludePatterns: []string{"vendor", "*_test.go"}})
	files, stats, err := w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "main.go" {
		t.Fatalf("expected only main.go, got %v", got)
	}
	if stats.SkippedExcluded != 1 {
		t.Errorf("expected 1 excluded file, got %d", stats.SkippedExcluded)
	}
}

func TestDiscoverInvalidExcludePattern(t *testing.T) {
	t.Parallel()

	_, err := New(lang.NewCatalog(), Options{ExcludePatterns: []string{"[unclosed"}})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if !errors.IsCode(err, errors.CodeValidationError) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDiscoverGitignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":          "build/\n*.gen.go\n",
		"main.go":             "package main\n",
		"api.gen.go":          "package main\n",
		"build/out.go":        "package out\n",
		"sub/.gitignore":      "local.py\n",
		"sub/local.py":        "x = 1\n",
		"sub/kept.py":         "x = 2\n",
		"sub/nested/local.py": "x = 3\n",
	})

	w := newWalker(t, Options{IncludeHidden: false})
	files, stats, err := w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	got := relPaths(t, root, files)
	expected := []string{"main.go", "sub/kept.py"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
	if stats.SkippedIgnored < 2 {
		t.Errorf("expected at least 2 ignored entries, got %d", stats.SkippedIgnored)
	}
}

func TestDiscoverMaxDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.go":         "package a\n",
		"l1/one.go":      "package a\n",
		"l1/l2/two.go":   "package a\n",
		"l1/l2/l3/三.go": "package a\n",
	})

	w := newWalker(t, Options{MaxDepth: 2})
	files, _, err := w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	got := relPaths(t, root, files)
	expected := []string{"l1/one.go", "top.go"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestDiscoverSizeGate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"small.go": "package a\n",
		"big.go":   "package a\n// padding padding padding padding\n",
	})

	w := newWalker(t, Options{MaxFileSizeBytes: 15})
	files, stats, err := w.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "small.go" {
		t.Fatalf("expected only small.go, got %v", got)
	}
	if stats.SkippedSize != 1 {
		t.Errorf("expected 1 size skip, got %d", stats.SkippedSize)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"single.py": "x = 1\n",
		"notes.txt": "hello\n",
	})

	w := newWalker(t, Options{})
	files, stats, err := w.Discover(filepath.Join(root, "single.py"))
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 1 || stats.FilesFound != 1 {
		t.Fatalf("expected single file, got %v", files)
	}

	if _, _, err := w.Discover(filepath.Join(root, "notes.txt")); err == nil {
		t.Fatal("expected error for unsupported single file")
	} else if !errors.IsCode(err, errors.CodeValidationError) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	t.Parallel()

	w := newWalker(t, Options{})
	_, _, err := w.Discover(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.IsCode(err, errors.CodeInvalidPath) {
		t.Errorf("expected INVALID_PATH, got %v", err)
	}
}
