package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringReportsStampedMetadata(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = saved[0], saved[1], saved[2] })

	Version, Commit, Date = "0.4.0", "9f1c2ab", "2026-10-01"

	got := String()
	require.Contains(t, got, "golos 0.4.0 ")
	require.Contains(t, got, "commit=9f1c2ab")
	require.Contains(t, got, "date=2026-10-01")
	require.Regexp(t, `go=.+\)$`, got)
}

func TestResolvedPrefersStampedVersion(t *testing.T) {
	module := func() string { return "v0.3.1" }

	require.Equal(t, "1.0.0", resolved("1.0.0", module))
	require.Equal(t, "v0.3.1", resolved("dev", module))
	require.Equal(t, "dev", resolved("dev", func() string { return "(devel)" }))
	require.Equal(t, "dev", resolved("dev", func() string { return "" }))
}
