// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report the build revision for --version.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set with -ldflags "-X .../internal/version.Version=v1.2.3" on release builds.
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns Version when set, otherwise the VCS revision from build
// info with "(dirty)" appended for modified trees. Falls back to "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
