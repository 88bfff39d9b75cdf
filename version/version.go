package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// Set at build time via -ldflags.
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the build information reported by the /version endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time"`
	IsRelease bool   `json:"is_release"`
}

// Get returns the build information, filling gaps from the binary's
// embedded module and VCS metadata.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
					if len(info.Commit) > 7 {
						info.Commit = info.Commit[:7]
					}
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}

	if info.BuildTime == "" {
		info.BuildTime = time.Now().UTC().Format(time.RFC3339)
	}
	return info
}

// String renders a single-line version for startup logs.
func (i Info) String() string {
	if i.Commit != "" {
		return fmt.Sprintf("%s-%s (built %s)", i.Version, i.Commit, i.BuildTime)
	}
	return fmt.Sprintf("%s (built %s)", i.Version, i.BuildTime)
}
