// pkg/prune/prune_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp directories
// PURPOSE: Test feature-driven file removal and empty-directory cleanup

package prune

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/testutil"
)

// scaffoldTree lays down the generated paths the pruner knows about.
func scaffoldTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := []string{
		"internal/router/auth.go",
		"internal/router/health.go",
		"internal/service/auth.go",
		"internal/service/auth_test.go",
		"internal/service/email.go",
		"internal/service/scheduler.go",
		"internal/service/health.go",
		"internal/dto/auth.go",
		"internal/dto/root.go",
		"internal/model/auth.go",
		"internal/model/base.go",
		"internal/dto/internal/authfmt/authfmt.go",
		"Dockerfile",
		".dockerignore",
		"docker-compose.yml",
		".github/workflows/docker.yml",
		".github/workflows/ci.yml",
		"deploy/app.service",
	}
	for _, f := range files {
		testutil.CreateFile(t, dir, f, "content")
	}
	return dir
}

func allEnabled() config.AppConfig {
	return config.AppConfig{
		Name:                "demo",
		EnableDocker:        true,
		EnableAuth:          true,
		EnableSoftDelete:    true,
		EnableVPSDeployment: true,
	}
}

func TestManifestParses(t *testing.T) {
	features, err := Manifest()
	require.NoError(t, err)

	for _, key := range []string{"auth", "docker", "vps_deployment", "soft_delete"} {
		assert.Contains(t, features, key)
	}
	assert.NotEmpty(t, features["auth"].Paths)
	assert.Empty(t, features["soft_delete"].Paths)
}

func TestApplyAllEnabledRemovesNothing(t *testing.T) {
	dir := scaffoldTree(t)
	require.NoError(t, Apply(allEnabled(), dir))

	testutil.AssertFileExists(t, filepath.Join(dir, "internal/service/auth.go"))
	testutil.AssertFileExists(t, filepath.Join(dir, "Dockerfile"))
	testutil.AssertFileExists(t, filepath.Join(dir, "deploy/app.service"))
}

func TestApplyAuthDisabled(t *testing.T) {
	dir := scaffoldTree(t)
	cfg := allEnabled()
	cfg.EnableAuth = false

	require.NoError(t, Apply(cfg, dir))

	for _, gone := range []string{
		"internal/router/auth.go",
		"internal/service/auth.go",
		"internal/service/auth_test.go",
		"internal/service/email.go",
		"internal/service/scheduler.go",
		"internal/dto/auth.go",
		"internal/model/auth.go",
		"internal/dto/internal/authfmt/authfmt.go",
	} {
		testutil.AssertNotExists(t, filepath.Join(dir, gone))
	}

	// The emptied helper directories are swept away too
	testutil.AssertNotExists(t, filepath.Join(dir, "internal/dto/internal"))

	// Unrelated files survive
	testutil.AssertFileExists(t, filepath.Join(dir, "internal/router/health.go"))
	testutil.AssertFileExists(t, filepath.Join(dir, "internal/service/health.go"))
	testutil.AssertFileExists(t, filepath.Join(dir, "internal/dto/root.go"))
	testutil.AssertFileExists(t, filepath.Join(dir, "Dockerfile"))
}

func TestApplyDockerDisabled(t *testing.T) {
	dir := scaffoldTree(t)
	cfg := allEnabled()
	cfg.EnableDocker = false

	require.NoError(t, Apply(cfg, dir))

	testutil.AssertNotExists(t, filepath.Join(dir, "Dockerfile"))
	testutil.AssertNotExists(t, filepath.Join(dir, ".dockerignore"))
	testutil.AssertNotExists(t, filepath.Join(dir, "docker-compose.yml"))
	testutil.AssertNotExists(t, filepath.Join(dir, ".github/workflows/docker.yml"))

	// The shared workflow directory keeps its other entries
	testutil.AssertFileExists(t, filepath.Join(dir, ".github/workflows/ci.yml"))
}

func TestApplyVPSDisabled(t *testing.T) {
	dir := scaffoldTree(t)
	cfg := allEnabled()
	cfg.EnableVPSDeployment = false

	require.NoError(t, Apply(cfg, dir))

	testutil.AssertNotExists(t, filepath.Join(dir, "deploy/app.service"))
	testutil.AssertNotExists(t, filepath.Join(dir, "deploy"))
}

func TestApplyToleratesAbsentPaths(t *testing.T) {
	// The renderer may have excluded some files already; an empty tree
	// must prune cleanly.
	dir := t.TempDir()
	cfg := config.AppConfig{Name: "demo"}

	require.NoError(t, Apply(cfg, dir))
}

func TestApplyKeepsNonEmptyCleanupDirs(t *testing.T) {
	dir := scaffoldTree(t)
	// An extra user file shares the auth helper directory
	testutil.CreateFile(t, dir, "internal/dto/internal/authfmt/extra.go", "keep")

	cfg := allEnabled()
	cfg.EnableAuth = false
	require.NoError(t, Apply(cfg, dir))

	testutil.AssertFileExists(t, filepath.Join(dir, "internal/dto/internal/authfmt/extra.go"))
}
