// Package pipeline executes the ordered external-process provisioning
// steps against a freshly generated application directory. Steps run
// strictly sequentially and the first failure aborts the whole run.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/appforge/appforge/pkg/errors"
	"github.com/appforge/appforge/pkg/logging"
)

// Step is one external-process invocation. Everything but the working
// directory is fixed at construction time.
type Step struct {
	// Name identifies the step in logs and spinner output.
	Name string
	// Command and Args form the process invocation.
	Command string
	Args    []string
	// Dir is the working directory, always the target directory.
	Dir string
	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	Env []string
	// Code is the error kind raised when the process exits non-zero.
	Code errors.ErrorCode
	// TolerateStderr, when set, is consulted on failure: if it returns
	// true for the captured stderr the failure is treated as success.
	TolerateStderr func(stderr string) bool
}

// Runner executes a single step and returns its captured stderr.
type Runner interface {
	Run(step Step) (stderr string, err error)
}

// ExecRunner runs steps as real subprocesses.
type ExecRunner struct{}

// Run executes the step with os/exec, capturing stdout and stderr.
func (ExecRunner) Run(step Step) (string, error) {
	logging.LogCommand(step.Command, step.Args)

	cmd := exec.Command(step.Command, step.Args...)
	cmd.Dir = step.Dir
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, step.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}

// Execute runs the steps in order, stopping at the first failure. The
// failing step's error kind wraps the underlying error and carries the
// captured stderr. No step is retried and no partial rollback happens
// here; that is the caller's responsibility.
func Execute(runner Runner, steps []Step) error {
	logger := logging.GetLogger("pipeline")

	for _, step := range steps {
		logger.Debug().
			Str("step", step.Name).
			Str("command", step.Command).
			Strs("args", step.Args).
			Str("dir", step.Dir).
			Msg("Running step")

		stderr, err := runner.Run(step)
		if err != nil {
			if step.TolerateStderr != nil && step.TolerateStderr(stderr) {
				logger.Debug().
					Str("step", step.Name).
					Str("stderr", stderr).
					Msg("Step failed with tolerated stderr, continuing")
				continue
			}
			logger.Error().
				Str("step", step.Name).
				Str("stderr", stderr).
				Err(err).
				Msg("Step failed")
			return errors.Wrapf(err, step.Code, "%s failed", step.Name).
				WithDetail("step", step.Name).
				WithDetail("command", fmt.Sprintf("%s %v", step.Command, step.Args)).
				WithStderr(stderr)
		}

		logger.Debug().Str("step", step.Name).Msg("Step completed")
	}

	return nil
}
