package health

import (
	"net"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/PropNest/internal/pkg/cache"
	"github.com/propnest/PropNest/internal/pkg/env"
)

func setupTestRedis(t *testing.T) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	if env.Env == nil {
		env.Env = map[string]string{}
	}
	env.Env["CACHE_HOST"] = host
	env.Env["CACHE_PORT"] = port
	env.Env["CACHE_PASSWORD"] = ""
	_ = os.Setenv("CACHE_HOST", host)
	_ = os.Setenv("CACHE_PORT", port)
	_ = os.Setenv("CACHE_PASSWORD", "")

	cache.SetupCache()
}

func findCheck(t *testing.T, report Report, name string) Check {
	t.Helper()

	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q missing from report", name)
	return Check{}
}

func TestRunChecks_NoDatabase(t *testing.T) {
	setupTestRedis(t)

	report := RunChecks(t.TempDir())

	// No database in unit tests, so the report must flag it
	assert.False(t, report.Healthy)
	assert.False(t, findCheck(t, report, "database").Healthy)
	assert.Equal(t, "not connected", findCheck(t, report, "database").Detail)

	assert.True(t, findCheck(t, report, "cache").Healthy)
	assert.True(t, findCheck(t, report, "uploads").Healthy)
	assert.False(t, report.CheckedAt.IsZero())
}

func TestRunChecks_MissingUploadsDir(t *testing.T) {
	setupTestRedis(t)

	report := RunChecks("")

	uploads := findCheck(t, report, "uploads")
	assert.False(t, uploads.Healthy)
	assert.Equal(t, "no uploads directory configured", uploads.Detail)
}

func TestRunChecks_CreatesUploadsDir(t *testing.T) {
	setupTestRedis(t)

	dir := t.TempDir() + "/nested/uploads"
	report := RunChecks(dir)

	assert.True(t, findCheck(t, report, "uploads").Healthy)
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}
