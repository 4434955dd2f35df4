package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build-time via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}

// String formats the version line printed by --version
func String(binary string) string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		binary, Version, GitCommit, BuildDate, runtime.Version())
}
