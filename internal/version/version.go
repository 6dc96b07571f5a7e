// Package version carries build metadata stamped in by the linker.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the version line printed by `golos version`. An unstamped
// build installed with `go install` reports its module version instead of
// "dev".
func String() string {
	return fmt.Sprintf("golos %s (commit=%s, date=%s, go=%s)", resolved(Version, readModuleVersion), Commit, Date, runtime.Version())
}

func resolved(stamped string, module func() string) string {
	if stamped != "dev" {
		return stamped
	}
	if v := module(); v != "" && v != "(devel)" {
		return v
	}
	return stamped
}

func readModuleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Version
}
