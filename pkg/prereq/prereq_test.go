// pkg/prereq/prereq_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Fake lookup and runner (no real processes)
// PURPOSE: Test tool presence checks and the database liveness probe

package prereq

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/errors"
	"github.com/appforge/appforge/pkg/pipeline"
)

type fakeProbe struct {
	ran  []pipeline.Step
	fail bool
}

func (p *fakeProbe) Run(step pipeline.Step) (string, error) {
	p.ran = append(p.ran, step)
	if p.fail {
		return "no response", stderrors.New("exit status 2")
	}
	return "", nil
}

func lookupWithout(missing ...string) func(string) (string, error) {
	gone := map[string]bool{}
	for _, m := range missing {
		gone[m] = true
	}
	return func(name string) (string, error) {
		if gone[name] {
			return "", stderrors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}
}

func TestCheckAllToolsPresent(t *testing.T) {
	probe := &fakeProbe{}
	c := &Checker{Lookup: lookupWithout(), Runner: probe}

	cfg := config.AppConfig{Name: "demo", SetupDatabase: true, InitializeGit: true}
	require.NoError(t, c.Check(cfg, config.DefaultToolConfig()))

	// The probe ran exactly once, against the configured host and port
	require.Len(t, probe.ran, 1)
	assert.Equal(t, "pg_isready", probe.ran[0].Command)
	assert.Equal(t, []string{"-h", "localhost", "-p", "5432"}, probe.ran[0].Args)
}

func TestCheckMissingTool(t *testing.T) {
	tests := []struct {
		name    string
		missing string
		cfg     config.AppConfig
	}{
		{"missing_go", "go", config.AppConfig{Name: "demo"}},
		{"missing_git", "git", config.AppConfig{Name: "demo"}},
		{"missing_goose", "goose", config.AppConfig{Name: "demo", SetupDatabase: true}},
		{"missing_lefthook", "lefthook", config.AppConfig{Name: "demo", InitializeGit: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Checker{Lookup: lookupWithout(tt.missing), Runner: &fakeProbe{}}

			err := c.Check(tt.cfg, config.DefaultToolConfig())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPrerequisiteMissing))

			var forgeErr *errors.ForgeError
			require.True(t, stderrors.As(err, &forgeErr))
			assert.Equal(t, tt.missing, forgeErr.Details["tool"])
			assert.NotEmpty(t, forgeErr.Details["hint"])
		})
	}
}

func TestCheckDatabaseToolsSkippedWithoutDatabase(t *testing.T) {
	// psql/createdb/goose absent, but database setup is off
	probe := &fakeProbe{}
	c := &Checker{Lookup: lookupWithout("psql", "createdb", "goose"), Runner: probe}

	cfg := config.AppConfig{Name: "demo", SetupDatabase: false}
	require.NoError(t, c.Check(cfg, config.DefaultToolConfig()))
	assert.Empty(t, probe.ran, "probe must not run when database setup is off")
}

func TestCheckDatabaseUnreachable(t *testing.T) {
	c := &Checker{Lookup: lookupWithout(), Runner: &fakeProbe{fail: true}}

	cfg := config.AppConfig{Name: "demo", SetupDatabase: true}
	err := c.Check(cfg, config.DefaultToolConfig())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrServiceUnreachable))
	assert.Equal(t, "no response", errors.GetStderr(err))
}
