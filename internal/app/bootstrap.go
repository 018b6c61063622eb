package app

import (
	"context"
	"fmt"
	"os"

	"phoebe/internal/cli"
	"phoebe/internal/config"
	"phoebe/internal/engine"
	"phoebe/internal/paramfile"
	"phoebe/internal/session"
	"phoebe/internal/ui"
	"phoebe/pkg/logging"
)

// Application wires the real collaborators of the startup controller.
//
// Example usage:
//
//	cfg := app.NewConfigFromEnv(version, releaseDate)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	os.Exit(application.Run(ctx, args))
type Application struct {
	config     *Config
	store      *config.Store
	controller *Controller
}

// NewApplication configures logging and builds the host, engine, loader,
// configuration store and session for one run.
//
// Logs always go to stderr so that stdout carries only the usage and
// version screens.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := cfg.LogLevel
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	stdout, stderr := cfg.Stdout, cfg.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logging.InitForCLI(appLogLevel, stderr)

	base := cfg.ConfigBase
	if base == "" {
		var err error
		base, err = config.DefaultBaseDir()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to determine configuration base directory")
			return nil, fmt.Errorf("failed to determine configuration base directory: %w", err)
		}
	}

	store := config.NewStore(base)
	registry := config.NewRegistry()
	eng := engine.New(cfg.TempDir)
	sess := session.New()

	host := ui.NewConsole(ui.ConsoleOptions{
		Out:         stdout,
		In:          cfg.Stdin,
		Headless:    cfg.Headless,
		Interactive: cfg.Interactive,
		Parameters:  eng,
		Registry:    registry,
		Store:       store,
		Session:     sess,
	})

	controller, err := NewController(Deps{
		Host:             host,
		Engine:           eng,
		Loader:           paramfile.NewLoader(),
		Registry:         registry,
		Resolver:         store,
		Session:          sess,
		Release:          cli.NewRelease(cfg.Version, cfg.ReleaseDate),
		Stdout:           stdout,
		Stderr:           stderr,
		WatchSessionFile: cfg.WatchSessionFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create startup controller: %w", err)
	}

	logging.Debug("Bootstrap", "Configuration directory %s, session %s", store.Dir(), sess.ID())
	return &Application{
		config:     cfg,
		store:      store,
		controller: controller,
	}, nil
}

// Run executes the startup sequence with args (without the program name)
// and returns the process exit code.
func (a *Application) Run(ctx context.Context, args []string) int {
	return runWithSignals(ctx, a.controller, args).ExitCode
}
