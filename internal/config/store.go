package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"phoebe/pkg/logging"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

const (
	// CurrentVersion is the configuration layout version written by this release.
	CurrentVersion = "0.40"

	configFileName       = "phoebe.yaml"
	legacyDirName        = ".phoebe"
	legacyConfigFileName = "phoebe.config"

	// BaseDirEnvVar overrides the directory under which configuration directories live.
	BaseDirEnvVar = "PHOEBE_CONFIG_BASE"
)

// SupportedVersions lists earlier releases whose configuration files can be
// imported as-is, newest first.
var SupportedVersions = []string{"0.32", "0.31", "0.30"}

// osUserHomeDir is a seam for tests.
var osUserHomeDir = os.UserHomeDir

// DefaultBaseDir returns $PHOEBE_CONFIG_BASE when set, the user's home directory otherwise.
func DefaultBaseDir() (string, error) {
	if base := os.Getenv(BaseDirEnvVar); base != "" {
		return base, nil
	}
	home, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user home directory: %w", err)
	}
	return home, nil
}

// Resolution is the result of a single store probe.
type Resolution struct {
	Outcome Outcome
	// Path is the file that was loaded or imported, or the directory created for NotFound.
	Path string
	// Err is set only for OutcomeError.
	Err error
}

// Resolver probes the configuration store once and applies what it finds to the registry.
type Resolver interface {
	Resolve(reg *Registry) Resolution
}

// Store is the on-disk configuration store. Each release keeps its file in
// <base>/.phoebe-<version>/phoebe.yaml; pre-0.30 releases used <base>/.phoebe/phoebe.config.
type Store struct {
	base string
}

// NewStore creates a store rooted at base.
func NewStore(base string) *Store {
	return &Store{base: base}
}

// Dir returns the configuration directory of this release.
func (s *Store) Dir() string {
	return versionDir(s.base, CurrentVersion)
}

// Path returns the configuration file of this release.
func (s *Store) Path() string {
	return filepath.Join(s.Dir(), configFileName)
}

func versionDir(base, version string) string {
	return filepath.Join(base, ".phoebe-"+version)
}

// Resolve looks for, in order: this release's file, the newest supported
// earlier file, the legacy file. When none exists the configuration
// directory is created. Imported values are not written back until Save.
func (s *Store) Resolve(reg *Registry) Resolution {
	current := s.Path()
	found, err := exists(current)
	if err != nil {
		return errorResolution(newConfigurationError(current, "current", "io", "cannot stat configuration file", err))
	}
	if found {
		if err := loadYAML(reg, current, "current"); err != nil {
			return errorResolution(err)
		}
		logging.Info("Config", "Loaded configuration from %s", current)
		return Resolution{Outcome: OutcomeCurrent, Path: current}
	}

	for _, v := range sortedSupported() {
		path := filepath.Join(versionDir(s.base, v), configFileName)
		found, err := exists(path)
		if err != nil {
			return errorResolution(newConfigurationError(path, "supported", "io", "cannot stat configuration file", err))
		}
		if !found {
			continue
		}
		if err := loadYAML(reg, path, "supported"); err != nil {
			return errorResolution(err)
		}
		logging.Info("Config", "Imported configuration of release %s from %s", v, path)
		return Resolution{Outcome: OutcomeImportedSupported, Path: path}
	}

	legacy := filepath.Join(s.base, legacyDirName, legacyConfigFileName)
	found, err = exists(legacy)
	if err != nil {
		return errorResolution(newConfigurationError(legacy, "legacy", "io", "cannot stat configuration file", err))
	}
	if found {
		if err := loadLegacy(reg, legacy); err != nil {
			return errorResolution(err)
		}
		logging.Info("Config", "Imported legacy configuration from %s", legacy)
		return Resolution{Outcome: OutcomeImportedLegacy, Path: legacy}
	}

	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return errorResolution(newConfigurationError(s.Dir(), "current", "io", "cannot create configuration directory", err))
	}
	logging.Info("Config", "No configuration found, created %s", s.Dir())
	return Resolution{Outcome: OutcomeNotFound, Path: s.Dir()}
}

// Save writes every registered option to this release's configuration file.
func (s *Store) Save(reg *Registry) error {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(reg.Values())
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	logging.Info("Config", "Saved configuration to %s", s.Path())
	return nil
}

func errorResolution(err *ConfigurationError) Resolution {
	logging.Error("Config", err, "Failed to resolve configuration")
	return Resolution{Outcome: OutcomeError, Path: err.FilePath, Err: err}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func sortedSupported() []string {
	return newestFirst(SupportedVersions)
}

// newestFirst orders release versions by their numeric components, newest
// first. Versions that do not parse keep their relative order at the end.
func newestFirst(versions []string) []string {
	sorted := append([]string(nil), versions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, errI := semver.NewVersion(sorted[i])
		vj, errJ := semver.NewVersion(sorted[j])
		switch {
		case errI != nil:
			return false
		case errJ != nil:
			return true
		default:
			return vi.GreaterThan(vj)
		}
	})
	return sorted
}

func loadYAML(reg *Registry, path, source string) *ConfigurationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return newConfigurationError(path, source, "io", "cannot read configuration file", err)
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return newConfigurationError(path, source, "parse", "malformed configuration file", err)
	}

	if err := applyValues(reg, values); err != nil {
		return newConfigurationError(path, source, "validation", err.Error(), err)
	}
	return nil
}

func loadLegacy(reg *Registry, path string) *ConfigurationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return newConfigurationError(path, "legacy", "io", "cannot read configuration file", err)
	}

	values, line, err := parseLegacy(data)
	if err != nil {
		ce := newConfigurationError(path, "legacy", "parse", err.Error(), err)
		ce.LineNumber = line
		return ce
	}

	converted := make(map[string]interface{}, len(values))
	for name, value := range values {
		converted[name] = value
	}
	if err := applyValues(reg, converted); err != nil {
		return newConfigurationError(path, "legacy", "validation", err.Error(), err)
	}
	return nil
}

// applyValues stores loaded values all-or-nothing. Keys this process never
// registered are skipped so that files written by newer builds still load.
func applyValues(reg *Registry, values map[string]interface{}) error {
	skipped, err := reg.Apply(values)
	for _, name := range skipped {
		logging.Debug("Config", "Skipping unknown option %s", name)
	}
	return err
}
