// Package version reports the build version of scriptline.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version can be set at build time, e.g.
// go build -ldflags "-X github.com/vsariola/scriptline/version.Version=$(git describe --dirty)"
var Version string

// Revision is the short VCS revision recorded by the go toolchain, with a
// "-dirty" suffix when the work tree had local changes.
var Revision = revision(debug.ReadBuildInfo)

func revision(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok {
		return ""
	}
	var rev string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && modified {
		rev += "-dirty"
	}
	return rev
}

// String returns Version, falling back to Revision and finally "devel".
func String() string {
	switch {
	case Version != "":
		return Version
	case Revision != "":
		return Revision
	default:
		return "devel"
	}
}

// Full returns the version line printed by the version command.
func Full() string {
	return fmt.Sprintf("scriptline %s (%s %s/%s)", String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
