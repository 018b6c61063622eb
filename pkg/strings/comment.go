package strings

import (
	"strings"
)

// StripComment removes a trailing '#' comment from line and trims the
// result. A '#' between double quotes is part of the value, not a comment.
//
// Examples:
//
//	StripComment(`phoebe_name = "V1031 Ori" # target`) // `phoebe_name = "V1031 Ori"`
//	StripComment(`PHOEBE_LABEL "run #3"`)             // `PHOEBE_LABEL "run #3"`
func StripComment(line string) string {
	inQuotes := false
	for i, r := range line {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return strings.TrimSpace(line)
}
