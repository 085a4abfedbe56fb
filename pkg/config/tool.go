package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/appforge/appforge/pkg/errors"
	"github.com/appforge/appforge/pkg/logging"
)

// DatabaseConfig holds the connection defaults used by the liveness
// probe and the database provisioning steps.
type DatabaseConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	User string `toml:"user"`
}

// ToolConfig holds tool-level defaults, overridable from
// $XDG_CONFIG_HOME/appforge/config.toml. Every key is optional.
type ToolConfig struct {
	Database DatabaseConfig `toml:"database"`
}

// DefaultToolConfig returns the shipped defaults.
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			User: "postgres",
		},
	}
}

// ToolConfigPath returns the location of the user's config file.
func ToolConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "appforge", "config.toml")
}

// LoadToolConfig reads the user's config file, layering it over the
// shipped defaults. A missing file is not an error.
func LoadToolConfig() (ToolConfig, error) {
	return loadToolConfig(ToolConfigPath())
}

func loadToolConfig(path string) (ToolConfig, error) {
	logger := logging.GetLogger("config")
	cfg := DefaultToolConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No config file found, using defaults")
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrInvalidInput, "failed to read config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultToolConfig(), errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse config file %s", path)
	}

	logger.Debug().Str("path", path).Msg("Loaded config file")
	return cfg, nil
}
