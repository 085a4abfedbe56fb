// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and stderr payload handling

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/appforge/appforge/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "prerequisite_missing",
			code:    errors.ErrPrerequisiteMissing,
			message: "git is not installed",
			wantStr: "[PREREQUISITE_MISSING] git is not installed",
		},
		{
			name:    "directory_conflict",
			code:    errors.ErrDirectoryConflict,
			message: "target directory is not empty",
			wantStr: "[DIRECTORY_CONFLICT] target directory is not empty",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "invalid app name",
			wantStr: "[INVALID_INPUT] invalid app name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPrerequisiteMissing, "%s is not installed", "goose")
	if err.Message != "goose is not installed" {
		t.Errorf("Newf() message = %q, want %q", err.Message, "goose is not installed")
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 1")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrDependencyInstall, "failed to install dependencies")

		if err.Code != errors.ErrDependencyInstall {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrDependencyInstall)
		}

		if !stderrors.Is(err, baseErr) {
			t.Error("Wrap() should preserve the wrapped error chain")
		}

		want := "[DEPENDENCY_INSTALL] failed to install dependencies: exit status 1"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("wrap_nil_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "ignored"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
	})
}

func TestStderrPayload(t *testing.T) {
	err := errors.New(errors.ErrDatabaseSetup, "failed to set up database").
		WithStderr("createdb: connection refused")

	if got := err.Stderr(); got != "createdb: connection refused" {
		t.Errorf("Stderr() = %q", got)
	}

	if got := errors.GetStderr(err); got != "createdb: connection refused" {
		t.Errorf("GetStderr() = %q", got)
	}

	if got := errors.GetStderr(stderrors.New("plain")); got != "" {
		t.Errorf("GetStderr(plain error) = %q, want empty", got)
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Wrapf(stderrors.New("boom"), errors.ErrTemplateCopy, "failed to copy template")

	if !errors.IsErrorCode(err, errors.ErrTemplateCopy) {
		t.Error("IsErrorCode should match the wrapped code")
	}
	if errors.IsErrorCode(err, errors.ErrVersionControl) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrTemplateCopy) {
		t.Error("IsErrorCode should not match a plain error")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := errors.GetErrorCode(errors.New(errors.ErrServiceUnreachable, "postgres down")); code != errors.ErrServiceUnreachable {
		t.Errorf("GetErrorCode() = %v, want %v", code, errors.ErrServiceUnreachable)
	}
	if code := errors.GetErrorCode(stderrors.New("plain")); code != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", code, errors.ErrUnknown)
	}
}
