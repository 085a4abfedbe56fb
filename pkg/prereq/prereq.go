// Package prereq verifies that the host has every external tool the run
// will invoke, before any filesystem mutation happens.
package prereq

import (
	"fmt"
	"os/exec"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/errors"
	"github.com/appforge/appforge/pkg/logging"
	"github.com/appforge/appforge/pkg/pipeline"
)

// Tool names a required binary and where to get it.
type Tool struct {
	Name string
	Hint string
}

// Checker inspects the host environment. Lookup and Runner are
// injectable for tests; zero values are filled by NewChecker.
type Checker struct {
	// Lookup resolves a binary on PATH, exec.LookPath in production.
	Lookup func(name string) (string, error)
	// Runner executes the database liveness probe.
	Runner pipeline.Runner
}

// NewChecker returns a Checker wired to the real host environment.
func NewChecker() *Checker {
	return &Checker{
		Lookup: exec.LookPath,
		Runner: pipeline.ExecRunner{},
	}
}

// requiredTools returns the binaries a run with this configuration will
// invoke, in check order.
func requiredTools(cfg config.AppConfig) []Tool {
	tools := []Tool{
		{Name: "go", Hint: "https://go.dev/dl"},
		{Name: "git", Hint: "https://git-scm.com/downloads"},
	}
	if cfg.SetupDatabase {
		tools = append(tools,
			Tool{Name: "psql", Hint: "https://www.postgresql.org/download"},
			Tool{Name: "createdb", Hint: "https://www.postgresql.org/download"},
			Tool{Name: "goose", Hint: "https://github.com/pressly/goose"},
		)
	}
	if cfg.InitializeGit {
		tools = append(tools, Tool{Name: "lefthook", Hint: "https://github.com/evilmartians/lefthook"})
	}
	return tools
}

// Check verifies every required tool is on PATH and, when database setup
// is requested, that the database server answers a liveness probe.
// It performs no mutation; a failure here needs no cleanup.
func (c *Checker) Check(cfg config.AppConfig, tool config.ToolConfig) error {
	logger := logging.GetLogger("prereq")

	for _, t := range requiredTools(cfg) {
		if _, err := c.Lookup(t.Name); err != nil {
			logger.Debug().Str("tool", t.Name).Msg("Required tool not found")
			return errors.Newf(errors.ErrPrerequisiteMissing, "%s is not installed", t.Name).
				WithDetail("tool", t.Name).
				WithDetail("hint", t.Hint)
		}
		logger.Debug().Str("tool", t.Name).Msg("Required tool found")
	}

	if cfg.SetupDatabase {
		if err := c.probeDatabase(tool.Database); err != nil {
			return err
		}
	}

	return nil
}

// probeDatabase checks that the configured postgres server responds.
func (c *Checker) probeDatabase(db config.DatabaseConfig) error {
	logger := logging.GetLogger("prereq")

	stderr, err := c.Runner.Run(pipeline.Step{
		Name:    "database liveness probe",
		Command: "pg_isready",
		Args:    []string{"-h", db.Host, "-p", fmt.Sprint(db.Port)},
		Code:    errors.ErrServiceUnreachable,
	})
	if err != nil {
		logger.Debug().
			Str("host", db.Host).
			Int("port", db.Port).
			Str("stderr", stderr).
			Msg("Database liveness probe failed")
		return errors.Newf(errors.ErrServiceUnreachable,
			"PostgreSQL is not responding on %s:%d", db.Host, db.Port).
			WithDetail("hint", "https://www.postgresql.org/docs/current/server-start.html").
			WithStderr(stderr)
	}

	logger.Debug().Str("host", db.Host).Int("port", db.Port).Msg("Database is reachable")
	return nil
}
