// Package config holds the immutable per-run application configuration
// and the tool-level defaults loaded from the user's config file.
package config

import (
	"regexp"

	"github.com/appforge/appforge/pkg/errors"
)

// DefaultDescription is used when the user leaves the description blank.
const DefaultDescription = "A Go backend service"

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// goReservedWords are Go keywords and predeclared identifiers that cannot
// be used as an app name, since the name doubles as the module name.
var goReservedWords = map[string]bool{
	// keywords
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	// predeclared identifiers
	"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true, "uint16": true,
	"uint32": true, "uint64": true, "uintptr": true,
	"true": true, "false": true, "iota": true, "nil": true,
	"append": true, "cap": true, "clear": true, "close": true, "complex": true,
	"copy": true, "delete": true, "imag": true, "len": true, "make": true,
	"max": true, "min": true, "new": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true,
}

// AppConfig is the configuration for one generated application. It is
// constructed once from user input and read-only thereafter.
type AppConfig struct {
	Name        string
	DisplayName string
	Description string

	SetupDatabase bool
	InitializeGit bool

	EnableDocker        bool
	EnableAuth          bool
	EnableSoftDelete    bool
	EnableVPSDeployment bool
}

// Options carries the raw user answers into New.
type Options struct {
	Name        string
	DisplayName string
	Description string

	SetupDatabase bool
	InitializeGit bool

	EnableDocker        bool
	EnableAuth          bool
	EnableSoftDelete    bool
	EnableVPSDeployment bool
}

// New validates the options and builds a fully populated AppConfig.
// No partially populated config ever crosses a package boundary.
func New(opts Options) (AppConfig, error) {
	if err := ValidateName(opts.Name); err != nil {
		return AppConfig{}, err
	}
	if opts.DisplayName == "" {
		return AppConfig{}, errors.New(errors.ErrInvalidInput, "display name cannot be empty")
	}

	description := opts.Description
	if description == "" {
		description = DefaultDescription
	}

	return AppConfig{
		Name:                opts.Name,
		DisplayName:         opts.DisplayName,
		Description:         description,
		SetupDatabase:       opts.SetupDatabase,
		InitializeGit:       opts.InitializeGit,
		EnableDocker:        opts.EnableDocker,
		EnableAuth:          opts.EnableAuth,
		EnableSoftDelete:    opts.EnableSoftDelete,
		EnableVPSDeployment: opts.EnableVPSDeployment,
	}, nil
}

// ValidateName checks an app name against the naming rules: lowercase
// alphanumeric plus hyphens, starting with a letter, and not a Go
// reserved word.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "app name cannot be empty")
	}
	if goReservedWords[name] {
		return errors.Newf(errors.ErrInvalidInput, "%q is a reserved word and cannot be used as an app name", name)
	}
	if !namePattern.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput, "app name %q must only contain lowercase letters, numbers, and hyphens, and start with a letter", name)
	}
	return nil
}
