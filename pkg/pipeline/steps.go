package pipeline

import (
	"fmt"
	"strings"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/errors"
)

// InstallSteps returns the dependency installation stage. It always runs.
func InstallSteps(dir string) []Step {
	return []Step{
		{
			Name:    "install dependencies",
			Command: "go",
			Args:    []string{"mod", "tidy"},
			Dir:     dir,
			Code:    errors.ErrDependencyInstall,
		},
	}
}

// DatabaseSteps returns the database provisioning stage: create the
// database, generate the initial migration, then apply it. An
// already-existing database is tolerated; an already-provisioned
// migration history is not.
func DatabaseSteps(dir string, cfg config.AppConfig, tool config.ToolConfig) []Step {
	db := tool.Database
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable",
		db.Host, db.Port, db.User, cfg.Name)

	return []Step{
		{
			Name:    "create database",
			Command: "createdb",
			Args:    []string{"-h", db.Host, "-p", fmt.Sprint(db.Port), "-U", db.User, cfg.Name},
			Dir:     dir,
			Code:    errors.ErrDatabaseSetup,
			TolerateStderr: func(stderr string) bool {
				return strings.Contains(stderr, "already exists")
			},
		},
		{
			Name:    "generate initial migration",
			Command: "goose",
			Args:    []string{"-dir", "migrations", "create", "initial_schema", "sql"},
			Dir:     dir,
			Code:    errors.ErrDatabaseSetup,
		},
		{
			Name:    "apply migrations",
			Command: "goose",
			Args:    []string{"-dir", "migrations", "up"},
			Dir:     dir,
			Env: []string{
				"GOOSE_DRIVER=postgres",
				"GOOSE_DBSTRING=" + dsn,
			},
			Code: errors.ErrDatabaseSetup,
		},
	}
}

// GitSteps returns the version-control stage: init the repository,
// install the commit hooks, format the tree, stage everything, and
// create the first commit.
func GitSteps(dir string) []Step {
	mk := func(name, command string, args ...string) Step {
		return Step{
			Name:    name,
			Command: command,
			Args:    args,
			Dir:     dir,
			Code:    errors.ErrVersionControl,
		}
	}

	return []Step{
		mk("initialize repository", "git", "init"),
		mk("install commit hooks", "lefthook", "install"),
		mk("format sources", "gofmt", "-l", "-w", "."),
		mk("stage files", "git", "add", "."),
		mk("create initial commit", "git", "commit", "-m", "Initial commit"),
	}
}

// Plan assembles the full ordered step list for a run: dependency
// install always, then database setup and git initialization as
// selected by the configuration.
func Plan(dir string, cfg config.AppConfig, tool config.ToolConfig) []Step {
	steps := InstallSteps(dir)
	if cfg.SetupDatabase {
		steps = append(steps, DatabaseSteps(dir, cfg, tool)...)
	}
	if cfg.InitializeGit {
		steps = append(steps, GitSteps(dir)...)
	}
	return steps
}
