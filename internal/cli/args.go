package cli

import "strings"

// ActionKind identifies what a single command-line token asks for.
type ActionKind int

const (
	// ActionParamFile loads the token as a session parameter file.
	ActionParamFile ActionKind = iota
	// ActionHelp prints the usage text and exits.
	ActionHelp
	// ActionVersion prints the release name and date and exits.
	ActionVersion
	// ActionUnrecognized is an option token nobody claims. It is tolerated.
	ActionUnrecognized
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionParamFile:
		return "param-file"
	case ActionHelp:
		return "help"
	case ActionVersion:
		return "version"
	case ActionUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Action is the parsed form of one command-line token.
type Action struct {
	Kind ActionKind
	// Token is the raw argument as given on the command line.
	Token string
}

// Path returns the parameter file path for ActionParamFile actions and the
// empty string for every other kind.
func (a Action) Path() string {
	if a.Kind != ActionParamFile {
		return ""
	}
	return a.Token
}

// Terminates reports whether processing this action ends the process.
func (a Action) Terminates() bool {
	return a.Kind == ActionHelp || a.Kind == ActionVersion
}

var (
	helpTokens    = map[string]bool{"-h": true, "-?": true, "--help": true}
	versionTokens = map[string]bool{"-v": true, "--version": true}
)

// ParseArgs maps the process arguments (without the program name) to one
// Action per token, in input order. It has no side effects; interpreting the
// actions is up to the caller.
func ParseArgs(tokens []string) []Action {
	actions := make([]Action, 0, len(tokens))
	for _, tok := range tokens {
		actions = append(actions, classify(tok))
	}
	return actions
}

func classify(tok string) Action {
	switch {
	case helpTokens[tok]:
		return Action{Kind: ActionHelp, Token: tok}
	case versionTokens[tok]:
		return Action{Kind: ActionVersion, Token: tok}
	case strings.HasPrefix(tok, "-"):
		return Action{Kind: ActionUnrecognized, Token: tok}
	default:
		return Action{Kind: ActionParamFile, Token: tok}
	}
}
