// Package noqa scans Python source for trailing suppression comments
// ("# noqa", "# noqa: CODE[,CODE...]", "# type: ignore") and indexes them
// by file and line so the scorer can honor them.
package noqa

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// All is the sentinel code recorded for a bare "# noqa" comment, which
// suppresses every check on its line.
const All = "ALL"

var noqaPattern = regexp.MustCompile(`#\s*noqa(?::\s*([A-Za-z0-9_\-,\s]+))?`)
var typeIgnorePattern = regexp.MustCompile(`#\s*type:\s*ignore`)

// Index maps FilePath -> line number -> set of suppressed codes.
type Index map[types.FilePath]map[int]map[string]struct{}

// CodesAt returns the suppression codes recorded for file:line, or nil if
// there are none.
func (idx Index) CodesAt(file types.FilePath, line int) map[string]struct{} {
	byLine, ok := idx[file]
	if !ok {
		return nil
	}
	return byLine[line]
}

// Build scans every file's already-read content for suppression comments
// and returns an Index. It reads nothing from disk, so the returned
// Diagnostics are always empty; BuildFromDisk reports read failures.
func Build(files map[types.FilePath][]byte) (Index, []types.Diagnostic) {
	idx := make(Index)
	var diags []types.Diagnostic

	for path, content := range files {
		byLine := scanContent(content)
		if len(byLine) > 0 {
			idx[path] = byLine
		}
	}

	return idx, diags
}

// BuildFromDisk reads each file from disk and scans it. Used by callers
// that haven't already buffered file content (e.g. standalone CLI tooling).
func BuildFromDisk(paths map[types.FilePath]string) (Index, []types.Diagnostic) {
	idx := make(Index)
	var diags []types.Diagnostic

	for relPath, absPath := range paths {
		content, err := os.ReadFile(absPath)
		if err != nil {
			ioErr := &types.IoError{Path: absPath, Err: err}
			diags = append(diags, types.Diagnostic{Kind: types.DiagIO, File: relPath, Message: ioErr.Error()})
			continue
		}
		byLine := scanContent(content)
		if len(byLine) > 0 {
			idx[relPath] = byLine
		}
	}

	return idx, diags
}

func scanContent(content []byte) map[int]map[string]struct{} {
	byLine := make(map[int]map[string]struct{})

	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.Contains(line, "#") {
			continue
		}

		codes := map[string]struct{}{}

		if m := noqaPattern.FindStringSubmatch(line); m != nil {
			if strings.TrimSpace(m[1]) == "" {
				codes[All] = struct{}{}
			} else {
				for _, c := range strings.Split(m[1], ",") {
					c = strings.TrimSpace(c)
					if c != "" {
						codes[c] = struct{}{}
					}
				}
			}
		}

		if typeIgnorePattern.MatchString(line) {
			codes["type-ignore"] = struct{}{}
		}

		if len(codes) > 0 {
			byLine[lineNo] = codes
		}
	}

	return byLine
}
