// Package logging provides subsystem-tagged structured logging for phoebe.
//
// It is a thin layer over log/slog. Every entry carries a "subsystem"
// attribute (Bootstrap, Config, ParamFile, Engine, Session, Console) so the
// startup sequence can be followed in one stream.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Bootstrap", "Loaded parameter file %s", path)
//	logging.Error("Config", err, "Failed to resolve configuration")
//
// Until InitForCLI is called all log calls are dropped. A nil writer selects
// os.Stderr; stdout is reserved for the usage and version text.
package logging
