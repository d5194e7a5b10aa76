// Package version exposes the build's version metadata for `tend version`
// and the dashboard footer.
package version

import "runtime/debug"

// Overridden at release time via ldflags; `go install` builds are backfilled
// from the embedded build info below.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full returns "version (commit) date".
func Full() string {
	return Version + " (" + Commit + ") " + Date
}

// Short returns just the version string.
func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		backfillFromBuildInfo(info)
	}
}

// backfillFromBuildInfo fills any variable still holding its ldflags default
// from the module's build info. Explicit ldflags always win. A build from an
// untagged HEAD reports "(devel)", which we keep as "dev".
func backfillFromBuildInfo(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && s.Value != "" {
				rev := s.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				Commit = rev
			}
		case "vcs.time":
			if Date == "unknown" && s.Value != "" {
				Date = s.Value
			}
		}
	}
}
