// Package buildinfo provides build-time version information.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/memkv-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Fields left unset fall back to what the Go toolchain embedded in the
// binary (module version, VCS revision and time).
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

var (
	resolveOnce sync.Once
	resolved    Info
)

// Get returns the build information.
func Get() Info {
	resolveOnce.Do(func() {
		resolved = resolve(Info{
			Version:   Version,
			Commit:    Commit,
			BuildTime: BuildTime,
			GoVersion: runtime.Version(),
		}, debug.ReadBuildInfo)
	})
	return resolved
}

func resolve(info Info, read func() (*debug.BuildInfo, bool)) Info {
	bi, ok := read()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && s.Value != "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && s.Value != "" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String returns a formatted version string.
func String() string {
	info := Get()
	return "memkv " + info.Version + " (" + info.Commit + ") built at " + info.BuildTime + " with " + info.GoVersion
}
