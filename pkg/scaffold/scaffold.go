// Package scaffold orchestrates one generation run: prerequisite
// checks, template materialization, feature pruning, and the
// provisioning pipeline, with best-effort rollback on failure.
package scaffold

import (
	"os"
	"path/filepath"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/errors"
	"github.com/appforge/appforge/pkg/logging"
	"github.com/appforge/appforge/pkg/pipeline"
	"github.com/appforge/appforge/pkg/prereq"
	"github.com/appforge/appforge/pkg/prune"
	"github.com/appforge/appforge/pkg/template"
)

// Stage identifies one orchestrated phase for progress reporting.
type Stage string

const (
	StageTemplate Stage = "template"
	StageInstall  Stage = "install"
	StageDatabase Stage = "database"
	StageGit      Stage = "git"
)

// Observer receives progress notifications. Implementations drive
// spinner output; a nil observer is valid.
type Observer interface {
	StageStarted(stage Stage, message string)
	StageCompleted(stage Stage, message string)
}

type noopObserver struct{}

func (noopObserver) StageStarted(Stage, string)   {}
func (noopObserver) StageCompleted(Stage, string) {}

// Scaffolder owns one run. Collaborators are explicit fields so tests
// can substitute them; New wires the production set.
type Scaffolder struct {
	Checker  *prereq.Checker
	Runner   pipeline.Runner
	Tool     config.ToolConfig
	Observer Observer

	// Materialize and Prune default to the template and prune packages.
	Materialize func(config.AppConfig, string) error
	Prune       func(config.AppConfig, string) error

	// WorkDir is the directory the target is resolved against,
	// defaulting to the invocation working directory.
	WorkDir string
}

// New returns a Scaffolder wired to the real environment.
func New(tool config.ToolConfig) *Scaffolder {
	return &Scaffolder{
		Checker:     prereq.NewChecker(),
		Runner:      pipeline.ExecRunner{},
		Tool:        tool,
		Observer:    noopObserver{},
		Materialize: template.Materialize,
		Prune:       prune.Apply,
	}
}

// TargetDir resolves the directory a run with this name would create.
func (s *Scaffolder) TargetDir(name string) (string, error) {
	workDir := s.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to resolve working directory")
		}
		workDir = cwd
	}
	return filepath.Join(workDir, name), nil
}

// Run executes the full flow and returns the created directory. On any
// failure after the prerequisite stage the target directory is deleted
// (best effort) and the original error is returned. A directory
// conflict never triggers rollback: the conflicting directory is not
// ours to delete.
func (s *Scaffolder) Run(cfg config.AppConfig) (string, error) {
	logger := logging.GetLogger("scaffold")
	observer := s.Observer
	if observer == nil {
		observer = noopObserver{}
	}

	// The name was validated at construction, but it also decides the
	// rollback path; reject anything unsafe before resolving it.
	if err := config.ValidateName(cfg.Name); err != nil {
		return "", err
	}

	// Nothing has been created yet; prerequisite failures need no cleanup.
	if err := s.Checker.Check(cfg, s.Tool); err != nil {
		return "", err
	}

	dir, err := s.TargetDir(cfg.Name)
	if err != nil {
		return "", err
	}

	logger.Info().Str("app", cfg.Name).Str("dir", dir).Msg("Starting generation")

	observer.StageStarted(StageTemplate, "Copying template...")
	if err := s.Materialize(cfg, dir); err != nil {
		if !errors.IsErrorCode(err, errors.ErrDirectoryConflict) {
			s.rollback(dir)
		}
		return "", err
	}
	if err := s.Prune(cfg, dir); err != nil {
		s.rollback(dir)
		return "", err
	}
	observer.StageCompleted(StageTemplate, "Copied template")

	observer.StageStarted(StageInstall, "Installing dependencies...")
	if err := pipeline.Execute(s.Runner, pipeline.InstallSteps(dir)); err != nil {
		s.rollback(dir)
		return "", err
	}
	observer.StageCompleted(StageInstall, "Installed dependencies")

	if cfg.SetupDatabase {
		observer.StageStarted(StageDatabase, "Setting up database...")
		if err := pipeline.Execute(s.Runner, pipeline.DatabaseSteps(dir, cfg, s.Tool)); err != nil {
			s.rollback(dir)
			return "", err
		}
		observer.StageCompleted(StageDatabase, "Set up database")
	}

	if cfg.InitializeGit {
		observer.StageStarted(StageGit, "Initializing git repository...")
		if err := pipeline.Execute(s.Runner, pipeline.GitSteps(dir)); err != nil {
			s.rollback(dir)
			return "", err
		}
		observer.StageCompleted(StageGit, "Initialized git repository")
	}

	logger.Info().Str("dir", dir).Msg("Generation complete")
	return dir, nil
}

// rollback deletes the partially generated directory. Best effort: a
// deletion failure is logged and swallowed so the original error is
// what reaches the user. External side effects (installed dependency
// caches, a created database, commits) are never undone.
func (s *Scaffolder) rollback(dir string) {
	logger := logging.GetLogger("scaffold")
	if err := os.RemoveAll(dir); err != nil {
		logger.Debug().Err(err).Str("dir", dir).Msg("Rollback failed")
		return
	}
	logger.Debug().Str("dir", dir).Msg("Rolled back target directory")
}
