package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

func writePy(t *testing.T, dir, relPath, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverClassifiesPythonFiles(t *testing.T) {
	tmp := t.TempDir()
	writePy(t, tmp, "app/main.py", "x = 1\n")
	writePy(t, tmp, "app/test_main.py", "def test_x(): pass\n")
	writePy(t, tmp, "app/conftest.py", "\n")
	writePy(t, tmp, "app/__init__.py", "\n")
	writePy(t, tmp, "app/_private.py", "\n")
	writePy(t, tmp, ".venv/lib/site.py", "\n")
	writePy(t, tmp, "__pycache__/main.cpython-311.pyc.py", "\n")

	if err := os.WriteFile(filepath.Join(tmp, ".gitignore"), []byte("app/ignored.py\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePy(t, tmp, "app/ignored.py", "\n")

	w := NewWalker(nil, nil)
	result, err := w.Discover(tmp)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	fileMap := make(map[string]types.DiscoveredFile)
	for _, f := range result.Files {
		fileMap[f.RelPath] = f
	}

	assertFile(t, fileMap, "app/main.py", types.ClassSource, "")
	assertFile(t, fileMap, "app/test_main.py", types.ClassTest, "")
	assertFile(t, fileMap, "app/conftest.py", types.ClassTest, "")
	assertFile(t, fileMap, "app/__init__.py", types.ClassSource, "")
	assertFile(t, fileMap, "app/_private.py", types.ClassExcluded, "")
	assertFile(t, fileMap, "app/ignored.py", types.ClassExcluded, "gitignore")

	if _, ok := fileMap[".venv/lib/site.py"]; ok {
		t.Error(".venv contents should be skipped during walk, not recorded")
	}
	if _, ok := fileMap["__pycache__/main.cpython-311.pyc.py"]; ok {
		t.Error("__pycache__ contents should be skipped during walk, not recorded")
	}
}

func TestDiscoverSortsLexicographically(t *testing.T) {
	tmp := t.TempDir()
	writePy(t, tmp, "z.py", "\n")
	writePy(t, tmp, "a/b.py", "\n")
	writePy(t, tmp, "a.py", "\n")

	w := NewWalker(nil, nil)
	result, err := w.Discover(tmp)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.RelPath)
	}
	want := []string{"a.py", "a/b.py", "z.py"}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	tmp := t.TempDir()

	w := NewWalker(nil, nil)
	result, err := w.Discover(tmp)
	if err != nil {
		t.Fatalf("Discover(%q) returned error: %v", tmp, err)
	}
	if len(result.Files) != 0 {
		t.Errorf("expected empty file list, got %d files", len(result.Files))
	}
}

func TestDiscoverNonExistentDir(t *testing.T) {
	w := NewWalker(nil, nil)
	_, err := w.Discover("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory, got nil")
	}
}

func TestDiscoverRespectsExcludeGlob(t *testing.T) {
	tmp := t.TempDir()
	writePy(t, tmp, "app/main.py", "\n")
	writePy(t, tmp, "migrations/0001_init.py", "\n")

	w := NewWalker(nil, []string{"migrations/**"})
	result, err := w.Discover(tmp)
	if err != nil {
		t.Fatal(err)
	}

	fileMap := make(map[string]types.DiscoveredFile)
	for _, f := range result.Files {
		fileMap[f.RelPath] = f
	}
	assertFile(t, fileMap, "app/main.py", types.ClassSource, "")
	assertFile(t, fileMap, "migrations/0001_init.py", types.ClassExcluded, "exclude-glob")
}

func TestGlobMatchDoubleStarSuffix(t *testing.T) {
	cases := []struct {
		pattern, name string
		want          bool
	}{
		{"**/*.py", "a.py", true},
		{"**/*.py", "a/b/c.py", true},
		{"**/*.py", "a/b/c.txt", false},
		{"migrations/**", "migrations/0001.py", true},
		{"migrations/**", "app/main.py", false},
	}
	for _, c := range cases {
		if got := globMatch(c.pattern, c.name); got != c.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", c.pattern, c.name, got, c.want)
		}
	}
}

func assertFile(t *testing.T, fileMap map[string]types.DiscoveredFile, relPath string, wantClass types.FileClass, wantReason string) {
	t.Helper()
	f, ok := fileMap[relPath]
	if !ok {
		t.Errorf("file %q not found in results", relPath)
		return
	}
	if f.Class != wantClass {
		t.Errorf("file %q: Class = %v, want %v", relPath, f.Class, wantClass)
	}
	if wantReason != "" && f.ExcludeReason != wantReason {
		t.Errorf("file %q: ExcludeReason = %q, want %q", relPath, f.ExcludeReason, wantReason)
	}
}
