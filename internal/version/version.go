package version

import (
	"runtime/debug"
)

const (
	// Version is the current semantic version of gocalc.
	Version = "0.3.0"

	// GitCommit is set during build time (use -ldflags)
	GitCommit = "unknown"
)

func Info() string { return Version }

// FullInfo returns the version with the commit and the Go toolchain that built it.
func FullInfo() string {
	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	return "gocalc " + Version + " (commit: " + GitCommit + ", " + goVersion + ")"
}
