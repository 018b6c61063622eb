package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"phoebe/internal/cli"
	"phoebe/internal/config"
	"phoebe/internal/paramfile"
	"phoebe/internal/session"
	"phoebe/internal/ui"
	"phoebe/pkg/logging"
)

// Exit codes returned by the startup sequence.
const (
	// ExitCodeSuccess indicates a normal run, including help and version.
	ExitCodeSuccess = 0
	// ExitCodeFatal indicates the bootstrap could not bring up the engine or host.
	ExitCodeFatal = 1
)

// Engine is the scientific engine as the startup sequence uses it.
type Engine interface {
	Init() error
	Options() []config.Definition
	// Configure applies the resolved option values.
	Configure(reg *config.Registry) error
	Apply(b *paramfile.Bundle) error
	ScratchDir() string
	Teardown()
}

// ParameterLoader opens session parameter files.
type ParameterLoader interface {
	Open(path string) (*paramfile.Bundle, error)
}

// Deps are the collaborators of the startup controller.
type Deps struct {
	Host     ui.Host
	Engine   Engine
	Loader   ParameterLoader
	Registry *config.Registry
	Resolver config.Resolver
	Session  *session.Session
	Release  cli.Release

	// Stdout receives the help and version screens; Stderr fatal diagnostics.
	Stdout io.Writer
	Stderr io.Writer

	// WatchSessionFile reports on-disk changes of the loaded file during the host loop.
	WatchSessionFile bool
}

// Result summarizes one pass through the startup sequence.
type Result struct {
	ExitCode int
	// Exited is true when a help or version switch ended startup early.
	Exited   bool
	Status   config.Status
	Decision Decision
	// Diagnostics are the messages sent to the host's output channel.
	Diagnostics []string
}

// sessionWatcher reports changes to the loaded parameter file.
type sessionWatcher interface {
	Start(ctx context.Context) error
	Stop()
}

// newSessionWatcher is a seam for tests.
var newSessionWatcher = func(path string, onChange func(path string, kind session.ChangeKind)) sessionWatcher {
	return session.NewWatcher(path, 0, onChange)
}

// Controller runs the startup sequence once.
type Controller struct {
	deps Deps
}

// NewController validates deps and creates a controller.
func NewController(deps Deps) (*Controller, error) {
	switch {
	case deps.Host == nil:
		return nil, errors.New("startup controller requires a host")
	case deps.Engine == nil:
		return nil, errors.New("startup controller requires an engine")
	case deps.Loader == nil:
		return nil, errors.New("startup controller requires a parameter loader")
	case deps.Registry == nil:
		return nil, errors.New("startup controller requires an option registry")
	case deps.Resolver == nil:
		return nil, errors.New("startup controller requires a configuration resolver")
	case deps.Session == nil:
		return nil, errors.New("startup controller requires a session")
	}
	if deps.Stdout == nil {
		deps.Stdout = io.Discard
	}
	if deps.Stderr == nil {
		deps.Stderr = io.Discard
	}
	return &Controller{deps: deps}, nil
}

// Run executes the bootstrap sequence for the given arguments (without the
// program name) and returns once the host loop has exited, or earlier for
// help, version or a fatal bootstrap failure.
//
// Steps, strictly in order: host and engine init; option registration and
// configuration resolution; argument processing; notice and settings
// dialog; host loop; stop the file watcher; teardown of engine then host.
func (c *Controller) Run(ctx context.Context, args []string) Result {
	d := c.deps
	res := Result{ExitCode: ExitCodeSuccess}

	if err := d.Host.Init(); err != nil {
		return c.fatal(res, err)
	}
	if err := d.Engine.Init(); err != nil {
		return c.fatal(res, err)
	}
	logging.Debug("Bootstrap", "Engine scratch directory %s", d.Engine.ScratchDir())
	defer func() {
		d.Engine.Teardown()
		d.Host.Teardown()
	}()

	defs := append(append([]config.Definition(nil), config.GUIOptions...), d.Engine.Options()...)
	cfgResult, regErr := config.Initialize(d.Registry, d.Resolver, defs...)
	res.Status = cfgResult.Status
	logging.Info("Bootstrap", "Configuration status: %s", res.Status)
	engineErr := d.Engine.Configure(d.Registry)

	for _, action := range cli.ParseArgs(args) {
		if action.Terminates() {
			logging.Debug("Bootstrap", "%s ends startup", action.Token)
		}
		switch action.Kind {
		case cli.ActionHelp:
			return c.exitWith(res, cli.RenderUsage)
		case cli.ActionVersion:
			return c.exitWith(res, cli.RenderVersion)
		case cli.ActionParamFile:
			if err := c.loadParameterFile(action.Path()); err != nil {
				res.Diagnostics = append(res.Diagnostics, c.report(err))
			}
		case cli.ActionUnrecognized:
			logging.Debug("Bootstrap", "Ignoring unrecognized switch %s", action.Token)
		}
	}

	// Configuration problems are only surfaced once the arguments had a chance to exit.
	if regErr != nil {
		res.Diagnostics = append(res.Diagnostics, c.report(regErr))
	}
	if cfgResult.Resolution.Err != nil {
		res.Diagnostics = append(res.Diagnostics, c.report(cfgResult.Resolution.Err))
	}
	if engineErr != nil {
		res.Diagnostics = append(res.Diagnostics, c.report(engineErr))
	}

	res.Decision = Decide(res.Status)
	if notice, ok := res.Decision.Notice(); ok {
		d.Host.Notice(notice.Title, notice.Body)
	}
	if res.Decision.OpenSettingsDialog {
		d.Host.OpenSettingsDialog()
	}

	if stop := c.watchSessionFile(ctx); stop != nil {
		defer stop()
	}

	logging.Info("Bootstrap", "Handing control to the host loop (session %s)", d.Session.ID())
	if err := d.Host.Run(ctx); err != nil {
		logging.Error("Bootstrap", err, "Host loop exited with an error")
		res.Diagnostics = append(res.Diagnostics, err.Error())
	}
	return res
}

// loadParameterFile reads path completely and only then touches the engine
// and the session, so a failure leaves both exactly as they were.
func (c *Controller) loadParameterFile(path string) error {
	d := c.deps

	done := d.Host.Busy(fmt.Sprintf("Loading %s...", path))
	bundle, err := d.Loader.Open(path)
	done()
	if err != nil {
		return err
	}
	if err := d.Engine.Apply(bundle); err != nil {
		return fmt.Errorf("cannot apply parameter file %s: %w", path, err)
	}

	d.Session.MarkLoaded(path)
	if name, ok := bundle.Lookup("phoebe_name"); ok {
		logging.Info("Bootstrap", "Loaded model %q from %s (%d parameters)", name, path, bundle.Len())
	} else {
		logging.Info("Bootstrap", "Loaded parameter file %s (%d parameters)", path, bundle.Len())
	}
	d.Host.RefreshTreeviews()
	d.Host.SyncWidgetValues()
	return nil
}

func (c *Controller) watchSessionFile(ctx context.Context) func() {
	state := c.deps.Session.State()
	if !c.deps.WatchSessionFile || !state.FileFlag {
		return nil
	}

	w := newSessionWatcher(state.FileName, func(path string, kind session.ChangeKind) {
		c.deps.Host.Output("%s was %s on disk; reopen it to pick up the changes.", path, kind)
	})
	if err := w.Start(ctx); err != nil {
		logging.Warn("Bootstrap", "Not watching %s: %v", state.FileName, err)
		return nil
	}
	return w.Stop
}

// report sends err to the host's output channel. Configuration errors are
// shown with their file, type and line.
func (c *Controller) report(err error) string {
	msg := err.Error()
	var ce *config.ConfigurationError
	if errors.As(err, &ce) {
		msg = ce.DetailedError()
	}
	logging.Warn("Bootstrap", "%s", msg)
	c.deps.Host.Output("%s", msg)
	return msg
}

func (c *Controller) exitWith(res Result, render func(cli.Release) (string, error)) Result {
	out, err := render(c.deps.Release)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to render screen")
	}
	fmt.Fprint(c.deps.Stdout, out)
	res.Exited = true
	res.ExitCode = ExitCodeSuccess
	return res
}

// fatal ends startup before anything is shown. Nothing is torn down: the
// failing collaborator never came up.
func (c *Controller) fatal(res Result, err error) Result {
	logging.Error("Bootstrap", err, "Fatal bootstrap failure")
	fmt.Fprintf(c.deps.Stderr, "%v\n", err)
	res.ExitCode = ExitCodeFatal
	res.Diagnostics = append(res.Diagnostics, err.Error())
	return res
}
