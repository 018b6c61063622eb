package config

import (
	"fmt"

	"phoebe/pkg/logging"
)

const (
	// OptionConfirmOnOverwrite asks before a save overwrites an existing file.
	OptionConfirmOnOverwrite = "GUI_CONFIRM_ON_OVERWRITE"
	// OptionBeepAfterPlotAndFit beeps when a plot or fit finishes.
	OptionBeepAfterPlotAndFit = "GUI_BEEP_AFTER_PLOT_AND_FIT"
)

// GUIOptions are the front-end options every run registers.
var GUIOptions = []Definition{
	{Type: TypeBool, Name: OptionConfirmOnOverwrite, Default: true},
	{Type: TypeBool, Name: OptionBeepAfterPlotAndFit, Default: false},
}

// Result is what Initialize hands back to the startup sequence.
type Result struct {
	Status     Status
	Resolution Resolution
}

// Initialize registers defs and only then resolves the store, so options
// introduced by this release get their defaults even on a first run. A
// registration failure is returned as an error but resolution still happens.
func Initialize(reg *Registry, resolver Resolver, defs ...Definition) (Result, error) {
	regErr := reg.RegisterAll(defs...)
	if regErr != nil {
		logging.Error("Config", regErr, "Failed to register configuration options")
		regErr = fmt.Errorf("failed to register configuration options: %w", regErr)
	}

	res := resolver.Resolve(reg)
	status := Classify(res.Outcome)
	logging.Debug("Config", "Configuration outcome %s classified as %s", res.Outcome, status)

	return Result{Status: status, Resolution: res}, regErr
}
