// Package version provides application version and build info.
//
//nolint:revive
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	// Version is the release version, overridden by ldflags at build time.
	Version = "dev"
	// CommitHash is the git commit hash, overridden by ldflags or read from VCS build settings.
	CommitHash = ""
	// BuildTime is the build or commit time, overridden by ldflags or read from VCS build settings.
	BuildTime = ""

	readVCS sync.Once
)

// Info is the build description printed by `chirp version` and logged at startup.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash,omitempty"`
	BuildTime  string `json:"build_time,omitempty"`
}

// Get returns build info, filling missing commit data from the embedded VCS settings.
func Get() Info {
	readVCS.Do(func() {
		if CommitHash != "" {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				CommitHash = setting.Value
			case "vcs.time":
				if BuildTime == "" {
					BuildTime = setting.Value
				}
			}
		}
	})
	return Info{Version: Version, CommitHash: CommitHash, BuildTime: BuildTime}
}

// String formats the version with a short commit hash, e.g. "v0.3.1 (a1b2c3d)".
func (i Info) String() string {
	if i.CommitHash == "" {
		return i.Version
	}
	short := i.CommitHash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", i.Version, short)
}
