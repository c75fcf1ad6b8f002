package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync"
	"github.com/agentstation/depsync/cmd/depsync/cmd/check"
	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/logging"
)

const (
	testCatalog = `[versions]

[libraries]
a = "g:a:1.0"
`
	testBuild = `dependencies {
  dependencySync("g:a:2.0")
}
`
)

func newTestApp(t *testing.T) (*App, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, constants.DefaultBuildFile, []byte(testBuild), constants.FilePermissions))
	require.NoError(t, afero.WriteFile(fs, constants.DefaultCatalogFile, []byte(testCatalog), constants.FilePermissions))

	config := &Config{
		BuildFile:    constants.DefaultBuildFile,
		CatalogFile:  constants.DefaultCatalogFile,
		Marker:       constants.DefaultMarker,
		ValidateTOML: true,
		LogFormat:    "json",
		LogOutput:    "stderr",
		LogLevel:     "error",
	}

	a, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
		WithSyncerOptions(depsync.WithFs(fs)),
	)
	require.NoError(t, err)
	return a, fs
}

func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := a.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2024-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
	assert.NoError(t, a.Shutdown(context.Background()))
}

func TestExecuteSync(t *testing.T) {
	a, fs := newTestApp(t)

	out, err := execute(t, a, "sync", "-o", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["catalog_changed"])
	assert.Equal(t, false, result["dry_run"])

	catalog, err := afero.ReadFile(fs, constants.DefaultCatalogFile)
	require.NoError(t, err)
	assert.Contains(t, string(catalog), `a = "g:a:2.0"`)
}

func TestExecuteSyncDryRun(t *testing.T) {
	a, fs := newTestApp(t)

	out, err := execute(t, a, "sync", "--dry-run", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "g:a:2.0")
	assert.Contains(t, out, "(Dry run)")

	catalog, err := afero.ReadFile(fs, constants.DefaultCatalogFile)
	require.NoError(t, err)
	assert.Equal(t, testCatalog, string(catalog))
}

func TestExecuteCheck(t *testing.T) {
	a, fs := newTestApp(t)

	_, err := execute(t, a, "check", "-o", "yaml")
	require.Error(t, err)

	var drift *check.DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, 1, drift.Changes)
	assert.Equal(t, constants.ExitDrift, ExitCode(err))

	// Once synced, check passes
	_, err = execute(t, a, "sync", "-o", "json")
	require.NoError(t, err)
	out, err := execute(t, a, "check", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Dependencies are in sync")

	build, err := afero.ReadFile(fs, constants.DefaultBuildFile)
	require.NoError(t, err)
	assert.Equal(t, testBuild, string(build))
}

func TestExecuteFlagsOverrideConfig(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := execute(t, a, "check", "--marker", "other", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "other")
	assert.Equal(t, 1, ExitCode(err))
	assert.Equal(t, "other", a.Config().Marker)
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := execute(t, a, "sync", "-o", "wide")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExecuteRejectsMalformedConfigFile(t *testing.T) {
	a, fs := newTestApp(t)
	path := filepath.Join(t.TempDir(), "depsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker: [sync\n"), constants.FilePermissions))

	_, err := execute(t, a, "sync", "--config", path, "-o", "json")
	require.Error(t, err)

	var cerr *errors.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, path, cerr.Source)
	assert.Equal(t, 1, ExitCode(err))

	build, err := afero.ReadFile(fs, constants.DefaultBuildFile)
	require.NoError(t, err)
	assert.Equal(t, testBuild, string(build), "nothing is synced with a broken config")
}

func TestExecuteVersion(t *testing.T) {
	a, _ := newTestApp(t)

	out, err := execute(t, a, "version")
	require.NoError(t, err)
	assert.Equal(t, "depsync 1.0.0\n", out)

	out, err = execute(t, a, "version", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"commit": "abc123"`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(assert.AnError))
	assert.Equal(t, constants.ExitDrift, ExitCode(&check.DriftError{Changes: 3}))
}
