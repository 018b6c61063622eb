// Package config provides the option registry and the on-disk configuration
// store for phoebe.
//
// # Options
//
// Subsystems declare their options in a Registry before the store is read.
// Registration is idempotent for an identical type and default, so every
// run can register its options unconditionally:
//
//	reg := config.NewRegistry()
//	res, err := config.Initialize(reg, config.NewStore(base), config.GUIOptions...)
//
// # Store layout
//
// Every release keeps its configuration under its own directory:
//
//	~/.phoebe-0.40/phoebe.yaml   this release
//	~/.phoebe-0.32/phoebe.yaml   earlier, fully supported releases
//	~/.phoebe/phoebe.config      pre-0.30 releases (KEY VALUE lines)
//
// Resolve probes these once, newest first, and returns an Outcome. Classify
// folds the outcome into one of the four Status values; OutcomeError leaves
// the defaults in effect and classifies as StatusCurrent.
//
// Imported files are never rewritten in place. Values only reach this
// release's file when Store.Save is called.
package config
