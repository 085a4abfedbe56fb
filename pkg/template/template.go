// Package template materializes the embedded application template into
// a target directory, substituting the configuration values into file
// contents and path names.
package template

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/errors"
	"github.com/appforge/appforge/pkg/logging"
	"github.com/appforge/appforge/templates"
)

// nameToken is the path placeholder replaced with the app name in
// directory and file names.
const nameToken = "__name__"

// templateExt marks files whose name collides with toolchain-sensitive
// names (go.mod, *.go); the extension is stripped on render.
const templateExt = ".tmpl"

// AppFS returns the embedded template tree.
func AppFS() fs.FS {
	sub, err := fs.Sub(templates.FS, "app")
	if err != nil {
		// The app directory is embedded at build time; this cannot fail
		// on a correctly built binary.
		panic(err)
	}
	return sub
}

// Materialize renders the embedded template tree into destDir. The
// destination must not exist or must be empty; otherwise the run is
// rejected with no mutation. On any render or I/O failure the error is
// wrapped as a template-copy failure and cleanup is left to the
// caller's rollback.
func Materialize(cfg config.AppConfig, destDir string) error {
	return MaterializeFS(AppFS(), cfg, destDir)
}

// MaterializeFS is Materialize over an explicit source tree.
func MaterializeFS(src fs.FS, cfg config.AppConfig, destDir string) error {
	logger := logging.GetLogger("template")

	if err := ensureAvailable(destDir); err != nil {
		return err
	}

	logger.Debug().Str("dest", destDir).Str("app", cfg.Name).Msg("Materializing template")

	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return os.MkdirAll(destDir, 0755)
		}

		target := filepath.Join(destDir, renderPath(path, cfg.Name))

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		content, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}

		rendered, err := render(path, string(content), cfg)
		if err != nil {
			return err
		}

		return os.WriteFile(target, []byte(rendered), fileMode(target))
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrTemplateCopy, "failed to copy template").
			WithDetail("dest", destDir)
	}

	logger.Debug().Str("dest", destDir).Msg("Template materialized")
	return nil
}

// ensureAvailable rejects a destination that exists and is not empty.
func ensureAvailable(destDir string) error {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrTemplateCopy, "failed to inspect %s", destDir)
	}
	if len(entries) > 0 {
		return errors.Newf(errors.ErrDirectoryConflict,
			"the directory %q already exists and is not empty", destDir)
	}
	return nil
}

// renderPath substitutes the name token in a relative path and strips
// the template extension.
func renderPath(path, name string) string {
	path = strings.ReplaceAll(path, nameToken, name)
	return strings.TrimSuffix(path, templateExt)
}

// render expands the template actions in a single file's contents.
func render(path, content string, cfg config.AppConfig) (string, error) {
	tmpl, err := texttemplate.New(path).Funcs(sprig.FuncMap()).Parse(content)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, cfg); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// fileMode keeps shell scripts executable; everything else is plain.
func fileMode(target string) os.FileMode {
	if strings.HasSuffix(target, ".sh") {
		return 0755
	}
	return 0644
}
