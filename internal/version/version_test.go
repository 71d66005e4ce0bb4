package version

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withBuildVars(t *testing.T, v, commit, built string) {
	t.Helper()
	oldV, oldC, oldB := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = v, commit, built
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldB })
}

func TestInjectedVersion(t *testing.T) {
	withBuildVars(t, "v0.4.0", "0123456789abcdef", "2026-03-01T12:00:00Z")

	assert.Equal(t, "v0.4.0", GetVersion())
	assert.Equal(t, "0123456789abcdef", GetGitCommit())
	assert.Equal(t, "v0.4.0 (0123456)", GetShortVersion())
	assert.True(t, IsRelease())

	info := GetBuildInfo()
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), info.BuildTime)
	assert.Contains(t, info.String(), "Commit: 0123456789abcdef")
	assert.Contains(t, info.String(), "Built: 2026-03-01T12:00:00Z")
}

func TestParseBuildTime(t *testing.T) {
	testCases := []struct {
		in   string
		zero bool
	}{
		{"2026-03-01T12:00:00Z", false},
		{"2026-03-01T12:00:00", false},
		{"2026-03-01 12:00:00", false},
		{"unknown", true},
		{"", true},
		{"yesterday", true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.zero, parseBuildTime(tc.in).IsZero())
		})
	}
}

func TestStringOmitsUnknowns(t *testing.T) {
	info := &BuildInfo{Version: "dev", GitCommit: "unknown", GoVersion: "go1.24.4", Platform: "linux/amd64"}
	s := info.String()
	assert.False(t, strings.Contains(s, "Commit"))
	assert.False(t, strings.Contains(s, "Built"))
	assert.Equal(t, "Version: dev\nGo: go1.24.4\nPlatform: linux/amd64", s)
}
