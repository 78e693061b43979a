package types

import "fmt"

// ConfigError signals a malformed or contradictory configuration. It is
// fatal and no Report is produced: config.Load returns it before analysis
// starts, and Analyze returns it when discovery finds no source files.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

// IoError wraps a filesystem failure encountered for a single file. The
// parser (and noqa.BuildFromDisk) records it as a Diagnostic and skips the
// file; it is never fatal.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError signals that a file's source could not be parsed into a
// usable tree. The parser records it as a parse_error Diagnostic, skips
// the file, and continues with the remaining files.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// ResolveAmbiguity signals that a usage's leaf name matched more than one
// candidate Symbol. It is recorded as a Diagnostic and never fails the
// analysis; every candidate is still credited with the usage.
type ResolveAmbiguity struct {
	FromModule string
	ImportText string
	Candidates []string
}

func (e *ResolveAmbiguity) Error() string {
	return fmt.Sprintf("ambiguous import %q in %s: %d candidates", e.ImportText, e.FromModule, len(e.Candidates))
}

// ExitError carries a process exit code alongside its message so cmd/
// can translate a returned error into os.Exit(Code) without re-deriving
// the code from the error's type.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// NewExitError builds an ExitError from a formatted message.
func NewExitError(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}
