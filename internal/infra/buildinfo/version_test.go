package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	tests := []struct {
		name  string
		value string
	}{
		{"Version", info.Version},
		{"Commit", info.Commit},
		{"BuildTime", info.BuildTime},
		{"GoVersion", info.GoVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s field should not be empty", tt.name)
			}
		})
	}

	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestString(t *testing.T) {
	info := Get()
	s := String()

	for _, part := range []string{"memkv", info.Version, "(" + info.Commit + ")", info.BuildTime, info.GoVersion} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}

func TestResolve(t *testing.T) {
	defaults := Info{Version: "dev", Commit: "unknown", BuildTime: "unknown", GoVersion: "go1.24"}
	embedded := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name string
		in   Info
		read func() (*debug.BuildInfo, bool)
		want Info
	}{
		{
			name: "no embedded info",
			in:   defaults,
			read: func() (*debug.BuildInfo, bool) { return nil, false },
			want: defaults,
		},
		{
			name: "fills unset fields",
			in:   defaults,
			read: func() (*debug.BuildInfo, bool) { return embedded, true },
			want: Info{Version: "v1.2.3", Commit: "abc123", BuildTime: "2026-01-02T03:04:05Z", GoVersion: "go1.24"},
		},
		{
			name: "ldflags win",
			in:   Info{Version: "v9.0.0", Commit: "feed", BuildTime: "now", GoVersion: "go1.24"},
			read: func() (*debug.BuildInfo, bool) { return embedded, true },
			want: Info{Version: "v9.0.0", Commit: "feed", BuildTime: "now", GoVersion: "go1.24"},
		},
		{
			name: "devel version ignored",
			in:   defaults,
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
			},
			want: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.in, tt.read); got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
