package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// skipDirs lists directory names that are never descended into, regardless
// of include/exclude glob configuration.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".pytest_cache": true,
	".mypy_cache":  true,
	".tox":         true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
	"env":          true,
	".eggs":        true,
}

// DefaultInclude is the include-glob pattern applied when a Walker is
// constructed with no explicit include list.
const DefaultInclude = "**/*.py"

// Walker discovers and classifies Python source files in a directory tree.
type Walker struct {
	Include []string // glob patterns, relative to root, "**" matches across separators
	Exclude []string
}

// NewWalker creates a Walker using the given include/exclude glob lists.
// An empty include list defaults to DefaultInclude.
func NewWalker(include, exclude []string) *Walker {
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}
	return &Walker{Include: include, Exclude: exclude}
}

// Discover walks rootDir recursively, discovers all Python files, classifies
// them, and returns a ScanResult with a deterministically sorted file list.
func (w *Walker) Discover(rootDir string) (*types.ScanResult, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootDir)
	}

	var gitIgnore *ignore.GitIgnore
	gitignorePath := filepath.Join(rootDir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		gitIgnore, err = ignore.CompileIgnoreFile(gitignorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse .gitignore: %w", err)
		}
	}

	result := &types.ScanResult{RootDir: rootDir}

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			fmt.Fprintf(os.Stderr, "warning: skipping symlink %s\n", path)
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if strings.HasPrefix(name, ".") && name != "." {
				return fs.SkipDir
			}
			if skipDirs[name] {
				return fs.SkipDir
			}
			return nil
		}

		if filepath.Ext(name) != ".py" {
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: failed to compute relative path: %v\n", path, err)
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		file := types.DiscoveredFile{Path: path, RelPath: relPath}

		if !matchAny(w.Include, relPath) {
			return nil
		}

		if matchAny(w.Exclude, relPath) {
			file.Class = types.ClassExcluded
			file.ExcludeReason = "exclude-glob"
			result.Files = append(result.Files, file)
			result.ExcludedCount++
			result.TotalFiles++
			return nil
		}

		if gitIgnore != nil && gitIgnore.MatchesPath(relPath) {
			file.Class = types.ClassExcluded
			file.ExcludeReason = "gitignore"
			result.Files = append(result.Files, file)
			result.GitignoreCount++
			result.TotalFiles++
			return nil
		}

		file.Class = classifyPythonFile(name)
		result.Files = append(result.Files, file)
		result.TotalFiles++

		switch file.Class {
		case types.ClassSource:
			result.SourceCount++
		case types.ClassTest:
			result.TestCount++
		case types.ClassExcluded:
			result.ExcludedCount++
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk error: %w", err)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].RelPath < result.Files[j].RelPath
	})

	return result, nil
}

// matchAny reports whether relPath matches at least one of the given
// "**"-aware glob patterns. An empty pattern list matches nothing.
func matchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if globMatch(p, relPath) {
			return true
		}
	}
	return false
}

// globMatch extends filepath.Match with a "**" component that matches any
// number of path segments, including zero.
func globMatch(pattern, name string) bool {
	if !strings.Contains(pattern, "**") {
		ok, _ := filepath.Match(pattern, name)
		return ok
	}

	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && !strings.HasPrefix(name, prefix) {
		// a "." prefix stands for the root and is accepted for any name;
		// other prefixes are compared as plain string prefixes
		if prefix != "." {
			return false
		}
	}
	rest := strings.TrimPrefix(name, prefix)
	rest = strings.TrimPrefix(rest, "/")

	if suffix == "" {
		return true
	}

	segments := strings.Split(rest, "/")
	for i := range segments {
		candidate := strings.Join(segments[i:], "/")
		if ok, _ := filepath.Match(suffix, candidate); ok {
			return true
		}
	}
	return false
}
