package discovery

import (
	"strings"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// classifyPythonFile classifies a Python file by its filename. Test files
// match test_*.py, *_test.py, or conftest.py; dot/underscore-prefixed files
// are excluded (private modules, __init__ aside -- __init__.py is source).
func classifyPythonFile(name string) types.FileClass {
	if name == "conftest.py" {
		return types.ClassTest
	}
	base := strings.TrimSuffix(name, ".py")
	if strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test") {
		return types.ClassTest
	}
	if name == "__init__.py" {
		return types.ClassSource
	}
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return types.ClassExcluded
	}
	return types.ClassSource
}
