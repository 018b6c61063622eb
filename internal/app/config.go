package app

import (
	"io"
	"os"
	"strconv"

	"phoebe/internal/ui"
	"phoebe/pkg/logging"
)

// Environment variables read by NewConfigFromEnv. The configuration base and
// temp dir overrides are read by the config store and the engine themselves.
const (
	DebugEnvVar = "PHOEBE_DEBUG"
)

// Config holds the application configuration
type Config struct {
	// Debug enables debug logging
	Debug bool

	// LogLevel is the log threshold when Debug is off
	LogLevel logging.LogLevel

	// Headless skips the interactive host loop
	Headless bool

	// Interactive enables spinners; normally set when stdout is a terminal
	Interactive bool

	// ConfigBase is the directory holding the .phoebe-* configuration
	// directories. Empty means $PHOEBE_CONFIG_BASE or the home directory.
	ConfigBase string

	// TempDir is the parent of the engine's scratch directory (optional)
	TempDir string

	// WatchSessionFile reports on-disk changes to the loaded parameter file
	WatchSessionFile bool

	// Release information shown by --version
	Version     string
	ReleaseDate string

	// Standard streams; nil means the process streams
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// NewConfig creates a new application configuration
func NewConfig(debug, headless bool, configBase string) *Config {
	level := logging.LevelInfo
	if debug {
		level = logging.LevelDebug
	}
	return &Config{
		Debug:            debug,
		LogLevel:         level,
		Headless:         headless,
		ConfigBase:       configBase,
		WatchSessionFile: true,
	}
}

// NewConfigFromEnv creates a configuration from the PHOEBE_* environment.
// PHOEBE_DEBUG takes either a level name (debug, info, warn, error) or a
// boolean switching debug logging on.
func NewConfigFromEnv(version, releaseDate string) *Config {
	level, named := logging.ParseLevel(os.Getenv(DebugEnvVar))
	debug := envBool(DebugEnvVar)
	if named {
		debug = level == logging.LevelDebug
	}

	cfg := NewConfig(debug, envBool(ui.HeadlessEnvVar), "")
	if named {
		cfg.LogLevel = level
	}
	cfg.Interactive = ui.IsTerminal(os.Stdout)
	cfg.Version = version
	cfg.ReleaseDate = releaseDate
	return cfg
}

// envBool treats any value other than empty or a false-like literal as true.
func envBool(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}
