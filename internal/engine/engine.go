package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"phoebe/internal/config"
	"phoebe/internal/paramfile"
	"phoebe/pkg/logging"
)

// TempDirEnvVar overrides the parent directory of the engine's scratch directory.
const TempDirEnvVar = "PHOEBE_TEMP_DIR"

// OptionTempDir is the configuration option for the scratch directory
// parent. The environment variable of the same name takes precedence.
const OptionTempDir = "PHOEBE_TEMP_DIR"

// osMkdirTemp is a seam for tests.
var osMkdirTemp = os.MkdirTemp

// InitError reports a failed engine initialization. It is fatal for startup.
type InitError struct {
	Reason string
	Err    error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine initialization failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("engine initialization failed: %s", e.Reason)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Engine is the scientific engine as seen by the front end: a scratch
// directory for intermediate files and the parameter table of the model
// currently loaded.
type Engine struct {
	mu         sync.RWMutex
	tempParent string
	// pinned is set when tempParent came from New or the environment, so
	// the configuration option does not move the scratch directory.
	pinned     bool
	scratch    string
	params     map[string]string
	source     string
	ready      bool
}

// New creates an engine whose scratch directory will live under tempParent.
// An empty tempParent means $PHOEBE_TEMP_DIR, or the system temp dir.
func New(tempParent string) *Engine {
	if tempParent == "" {
		tempParent = os.Getenv(TempDirEnvVar)
	}
	return &Engine{tempParent: tempParent, pinned: tempParent != ""}
}

// Options returns the option definitions the engine needs registered before
// the configuration store is read.
func (e *Engine) Options() []config.Definition {
	return []config.Definition{
		{Type: config.TypeString, Name: OptionTempDir, Default: os.TempDir()},
	}
}

// Init prepares the engine. Calling Init on an initialized engine is a no-op.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready {
		return nil
	}

	scratch, err := makeScratch(e.tempParent)
	if err != nil {
		return err
	}

	e.scratch = scratch
	e.params = make(map[string]string)
	e.ready = true
	logging.Debug("Engine", "Engine initialized, scratch directory %s", scratch)
	return nil
}

// Configure applies the resolved configuration. When the scratch directory
// parent was not given explicitly, a PHOEBE_TEMP_DIR option that names a
// different directory moves the scratch directory there. On error the
// current scratch directory stays in use.
func (e *Engine) Configure(reg *config.Registry) error {
	dir, err := reg.String(OptionTempDir)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", OptionTempDir, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return fmt.Errorf("engine is not initialized")
	}
	if e.pinned {
		logging.Debug("Engine", "Temporary directory %s set explicitly, ignoring option %s=%s", e.tempParent, OptionTempDir, dir)
		return nil
	}
	if dir == "" || filepath.Clean(dir) == filepath.Clean(filepath.Dir(e.scratch)) {
		return nil
	}

	scratch, err := makeScratch(dir)
	if err != nil {
		return fmt.Errorf("cannot use %s from configuration: %w", OptionTempDir, err)
	}
	if err := os.RemoveAll(e.scratch); err != nil {
		logging.Warn("Engine", "Failed to remove scratch directory %s: %v", e.scratch, err)
	}
	e.tempParent = dir
	e.scratch = scratch
	logging.Info("Engine", "Scratch directory moved to %s", scratch)
	return nil
}

// makeScratch creates a private scratch directory under parent, or under the
// system temp dir when parent is empty.
func makeScratch(parent string) (string, error) {
	if parent != "" {
		info, err := os.Stat(parent)
		if err != nil {
			return "", &InitError{Reason: fmt.Sprintf("temporary directory %s is not accessible", parent), Err: err}
		}
		if !info.IsDir() {
			return "", &InitError{Reason: fmt.Sprintf("temporary directory %s is not a directory", parent)}
		}
	}

	scratch, err := osMkdirTemp(parent, "phoebe-")
	if err != nil {
		return "", &InitError{Reason: "cannot create scratch directory", Err: err}
	}
	return scratch, nil
}

// ScratchDir returns the engine's scratch directory, empty before Init.
func (e *Engine) ScratchDir() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scratch
}

// Apply replaces the parameter table with the bundle's parameters. The
// previous table is kept when Apply fails.
func (e *Engine) Apply(b *paramfile.Bundle) error {
	if b.Len() == 0 {
		return fmt.Errorf("cannot apply an empty parameter bundle")
	}

	next := make(map[string]string, b.Len())
	for _, p := range b.Parameters {
		next[p.Qualifier] = p.Value
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return fmt.Errorf("engine is not initialized")
	}
	e.params = next
	e.source = b.Source
	logging.Info("Engine", "Applied %d parameters from %s", len(next), b.Source)
	return nil
}

// Parameters returns the parameter table sorted by qualifier.
func (e *Engine) Parameters() []paramfile.Parameter {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]paramfile.Parameter, 0, len(e.params))
	for q, v := range e.params {
		out = append(out, paramfile.Parameter{Qualifier: q, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Qualifier < out[j].Qualifier })
	return out
}

// Source returns the path of the last applied bundle.
func (e *Engine) Source() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.source
}

// Teardown releases the scratch directory. It is safe to call more than once.
func (e *Engine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return
	}
	if err := os.RemoveAll(e.scratch); err != nil {
		logging.Warn("Engine", "Failed to remove scratch directory %s: %v", e.scratch, err)
	}
	e.ready = false
	e.scratch = ""
	e.params = nil
	logging.Debug("Engine", "Engine torn down")
}
