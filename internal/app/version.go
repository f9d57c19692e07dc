package app

import (
	"fmt"
	"runtime/debug"
)

// Build metadata. Release builds override these with
// -ldflags "-X github.com/heartmarshall/slotswap-backend/internal/app.Version=1.0.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const shortRevisionLen = 12

// BuildVersion reports the running build for the startup log and /health.
// Builds made without ldflags fall back to the VCS stamp the toolchain embeds.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = fromBuildSettings(info.Settings, commit, built)
	}
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", serviceName, Version, commit, built)
}

func fromBuildSettings(settings []debug.BuildSetting, commit, built string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && s.Value != "" {
				commit = s.Value
				if len(commit) > shortRevisionLen {
					commit = commit[:shortRevisionLen]
				}
			}
		case "vcs.time":
			if built == "unknown" && s.Value != "" {
				built = s.Value
			}
		}
	}
	return commit, built
}
