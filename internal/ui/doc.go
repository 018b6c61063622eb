// Package ui defines the Host surface the startup sequence drives and a
// terminal implementation of it.
//
// The Console prints notices and tables with go-pretty, shows a spinner
// while long operations run on a terminal and hosts a small command loop:
//
//	phoebe> params
//	phoebe> set GUI_BEEP_AFTER_PLOT_AND_FIT true
//	phoebe> save
//	phoebe> quit
//
// With PHOEBE_HEADLESS set the loop is skipped and Run returns at once.
package ui
