package app

import "phoebe/internal/config"

// DecisionKind is the one-time notice chosen for this start.
type DecisionKind int

const (
	DecisionNormal DecisionKind = iota
	DecisionShowWelcome
	DecisionShowLegacyImportNotice
	DecisionShowSupportedImportNotice
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionNormal:
		return "Normal"
	case DecisionShowWelcome:
		return "ShowWelcome"
	case DecisionShowLegacyImportNotice:
		return "ShowLegacyImportNotice"
	case DecisionShowSupportedImportNotice:
		return "ShowSupportedImportNotice"
	default:
		return "Unknown"
	}
}

// Decision is what the user sees once startup is done.
type Decision struct {
	Kind DecisionKind
	// OpenSettingsDialog is true whenever the configuration status is not Current.
	OpenSettingsDialog bool
}

// Notice is the title and body of a one-time message.
type Notice struct {
	Title string
	Body  string
}

var notices = map[DecisionKind]Notice{
	DecisionShowWelcome: {
		Title: "Welcome to PHOEBE!",
		Body:  "PHOEBE will create a configuration directory and take you to the Settings window.",
	},
	DecisionShowLegacyImportNotice: {
		Title: "Importing legacy configuration file",
		Body:  "PHOEBE imported a legacy (pre-0.30) configuration file. Please review your settings and click on Save to store them permanently.",
	},
	DecisionShowSupportedImportNotice: {
		Title: "Importing recent configuration file",
		Body:  "PHOEBE imported your previous configuration file. Please review your settings and click on Save to store them permanently.",
	},
}

// Decide maps a configuration status to a startup decision.
func Decide(status config.Status) Decision {
	var kind DecisionKind
	switch status {
	case config.StatusNotFound:
		kind = DecisionShowWelcome
	case config.StatusImportedLegacy:
		kind = DecisionShowLegacyImportNotice
	case config.StatusImportedSupported:
		kind = DecisionShowSupportedImportNotice
	default:
		kind = DecisionNormal
	}
	return Decision{Kind: kind, OpenSettingsDialog: status.NeedsReview()}
}

// Notice returns the message to show for this decision, if any.
func (d Decision) Notice() (Notice, bool) {
	n, ok := notices[d.Kind]
	return n, ok
}
