package config

import (
	"fmt"
	"strings"
)

// ConfigurationError is a structured error raised while probing, importing
// or saving the configuration store.
type ConfigurationError struct {
	FilePath   string // Full path to the file that caused the error
	Source     string // "current", "supported" or "legacy"
	ErrorType  string // Type of error (io, parse, validation)
	Message    string // Human-readable error message
	LineNumber int    // Line number where the error occurred (if available)
	Err        error  // Underlying cause
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.LineNumber > 0 {
		return fmt.Sprintf("[%s] %s:%d: %s", ce.Source, ce.FilePath, ce.LineNumber, ce.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", ce.Source, ce.FilePath, ce.Message)
}

// Unwrap returns the underlying cause.
func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// DetailedError returns a detailed error message with all context
func (ce *ConfigurationError) DetailedError() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Configuration Error in %s file", ce.Source))
	parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))
	if ce.LineNumber > 0 {
		parts = append(parts, fmt.Sprintf("  Line: %d", ce.LineNumber))
	}
	parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))
	if ce.Err != nil {
		parts = append(parts, fmt.Sprintf("  Cause: %v", ce.Err))
	}

	return strings.Join(parts, "\n")
}

func newConfigurationError(path, source, errorType, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		FilePath:  path,
		Source:    source,
		ErrorType: errorType,
		Message:   message,
		Err:       err,
	}
}

// OptionConflictError is returned when an option is registered twice with a
// different type or default.
type OptionConflictError struct {
	Name            string
	ExistingType    OptionType
	ExistingDefault interface{}
	Type            OptionType
	Default         interface{}
}

func (e *OptionConflictError) Error() string {
	return fmt.Sprintf("option %s already registered as %s (default %v), cannot re-register as %s (default %v)",
		e.Name, e.ExistingType, e.ExistingDefault, e.Type, e.Default)
}
