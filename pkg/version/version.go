// Package version provides the deadcode tool version.
package version

// Version is the deadcode tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/ingo-eichhorst/deadcode/pkg/version.Version=2.0.1"
var Version = "dev"
