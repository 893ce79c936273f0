// Package version provides build version metadata for the Purview MCP server.
package version

import (
	"fmt"
	"runtime"
)

// These values are injected at build time via -ldflags.
var (
	GitVersion   = "v0.0.0-unset"
	GitCommit    = "unknown"
	GitTreeState = "unknown"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return GitVersion
}

// GetVersionInfo returns a map of version details for display.
func GetVersionInfo() map[string]string {
	return map[string]string{
		"version":      GitVersion,
		"gitCommit":    GitCommit,
		"gitTreeState": GitTreeState,
		"goVersion":    runtime.Version(),
		"platform":     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
