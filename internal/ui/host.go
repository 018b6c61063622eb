package ui

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
)

// Host is the user-facing surface the startup sequence talks to. A desktop
// toolkit or the terminal Console can stand behind it.
type Host interface {
	// Init brings up the toolkit. It runs before anything is shown.
	Init() error
	// Notice shows a one-time informational message.
	Notice(title, body string)
	// OpenSettingsDialog takes the user to the settings window.
	OpenSettingsDialog()
	// RefreshTreeviews repopulates views that list model parameters.
	RefreshTreeviews()
	// SyncWidgetValues pushes the session state into the widgets.
	SyncWidgetValues()
	// Output writes to the message channel, used for non-fatal errors.
	Output(format string, args ...interface{})
	// Busy shows a progress indicator until the returned function is called.
	Busy(label string) (done func())
	// Run hosts the event loop and blocks until it exits.
	Run(ctx context.Context) error
	// Teardown releases the toolkit.
	Teardown()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
