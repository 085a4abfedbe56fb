// Package prune removes generated files belonging to disabled optional
// features. The feature-to-paths mapping lives in one declarative
// manifest so the templates themselves carry no file-level conditionals.
package prune

import (
	_ "embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/logging"
)

//go:embed features.yaml
var manifestData []byte

// FeatureSet is the removal recipe for one disabled feature.
type FeatureSet struct {
	// Paths are deleted relative to the target directory. Absent paths
	// are tolerated.
	Paths []string `yaml:"paths"`
	// CleanupDirs are removed afterwards, innermost first, but only
	// when emptied by the path removals.
	CleanupDirs []string `yaml:"cleanup_dirs"`
}

type manifest struct {
	Features map[string]FeatureSet `yaml:"features"`
}

// Manifest returns the parsed feature manifest.
func Manifest() (map[string]FeatureSet, error) {
	var m manifest
	if err := yaml.Unmarshal(manifestData, &m); err != nil {
		return nil, err
	}
	return m.Features, nil
}

// disabledFeatures maps manifest keys to the configuration flags that
// keep them. A feature is pruned when its flag is off.
func disabledFeatures(cfg config.AppConfig) []string {
	var disabled []string
	if !cfg.EnableAuth {
		disabled = append(disabled, "auth")
	}
	if !cfg.EnableDocker {
		disabled = append(disabled, "docker")
	}
	if !cfg.EnableVPSDeployment {
		disabled = append(disabled, "vps_deployment")
	}
	if !cfg.EnableSoftDelete {
		disabled = append(disabled, "soft_delete")
	}
	return disabled
}

// Apply deletes the files of every disabled feature from dir. It runs
// after materialization and before any external process. Deletion is
// tolerant of paths that were never generated; unexpected I/O errors
// propagate and trigger rollback upstream.
func Apply(cfg config.AppConfig, dir string) error {
	logger := logging.GetLogger("prune")

	features, err := Manifest()
	if err != nil {
		return err
	}

	for _, name := range disabledFeatures(cfg) {
		set, ok := features[name]
		if !ok {
			continue
		}

		logger.Debug().Str("feature", name).Int("paths", len(set.Paths)).Msg("Pruning disabled feature")

		for _, rel := range set.Paths {
			target := filepath.Join(dir, rel)
			if err := os.Remove(target); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return err
			}
			logger.Debug().Str("path", rel).Msg("Removed")
		}

		for _, rel := range set.CleanupDirs {
			if err := removeIfEmpty(filepath.Join(dir, rel)); err != nil {
				return err
			}
		}
	}

	return nil
}

// removeIfEmpty deletes a directory only when it exists and holds no
// entries.
func removeIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	return os.Remove(dir)
}
