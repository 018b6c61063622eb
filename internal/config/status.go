package config

// Outcome is the raw result of probing the configuration store.
type Outcome int

const (
	OutcomeCurrent Outcome = iota
	OutcomeImportedSupported
	OutcomeImportedLegacy
	OutcomeNotFound
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCurrent:
		return "current"
	case OutcomeImportedSupported:
		return "imported-supported"
	case OutcomeImportedLegacy:
		return "imported-legacy"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeError:
		return "other-error"
	default:
		return "unknown"
	}
}

// Status classifies the configuration store at startup. It is produced once
// per process and does not change afterwards.
type Status int

const (
	// StatusCurrent means a configuration file of this release was loaded.
	StatusCurrent Status = iota
	// StatusImportedSupported means a file of a recent, fully supported release was imported.
	StatusImportedSupported
	// StatusImportedLegacy means a pre-0.30 file was imported.
	StatusImportedLegacy
	// StatusNotFound means no configuration existed and a fresh directory was created.
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "Current"
	case StatusImportedSupported:
		return "ImportedSupported"
	case StatusImportedLegacy:
		return "ImportedLegacy"
	case StatusNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// NeedsReview reports whether the user should be taken to the settings window.
func (s Status) NeedsReview() bool {
	return s != StatusCurrent
}

// Classify maps a probe outcome onto a Status. Store errors leave the
// defaults in effect and classify as StatusCurrent; the error itself is
// reported separately by the caller.
func Classify(o Outcome) Status {
	switch o {
	case OutcomeImportedSupported:
		return StatusImportedSupported
	case OutcomeImportedLegacy:
		return StatusImportedLegacy
	case OutcomeNotFound:
		return StatusNotFound
	default:
		return StatusCurrent
	}
}
