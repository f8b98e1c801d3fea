// Package version reports which build of pulse is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver).
// Without ldflags the VCS stamp recorded by the Go toolchain is used.
func String() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = fromBuildSettings(commit, built, info.Settings)
	}
	return format(commit, built)
}

func fromBuildSettings(commit, built string, settings []debug.BuildSetting) (string, string) {
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" {
				commit = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && commit != "unknown" {
		commit = shortCommit(commit) + "-dirty"
	}
	return commit, built
}

func format(commit, built string) string {
	return fmt.Sprintf("pulse dev (commit: %s, built: %s)", shortCommit(commit), built)
}

func shortCommit(commit string) string {
	if len(commit) > 7 && commit[7] != '-' {
		return commit[:7]
	}
	return commit
}
