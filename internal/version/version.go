// Package version reports the snippetdocs build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/snippetdocs/internal/version.Version=v1.0.0"
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the --version line. Without a link-time Version, the module
// version recorded by `go install` is used when there is one.
func String() string {
	return fmt.Sprintf("snippetdocs %s (commit %s, built %s)", resolve(), GitCommit, BuildTime)
}

func resolve() string {
	if Version != "unknown" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}
