package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	pkgstrings "phoebe/pkg/strings"
)

// parseLegacy reads the pre-0.30 configuration format: one "KEY VALUE" or
// "KEY = VALUE" pair per line, '#' outside double quotes starts a comment.
func parseLegacy(data []byte) (map[string]string, int, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := pkgstrings.StripComment(scanner.Text())
		if line == "" {
			continue
		}

		var key, value string
		if k, v, ok := strings.Cut(line, "="); ok {
			key, value = strings.TrimSpace(k), strings.TrimSpace(v)
		} else if fields := strings.Fields(line); len(fields) >= 2 {
			key, value = fields[0], strings.Join(fields[1:], " ")
		} else {
			return nil, lineNo, fmt.Errorf("expected KEY VALUE, got %q", line)
		}
		if key == "" {
			return nil, lineNo, fmt.Errorf("missing key in %q", line)
		}
		values[key] = unquote(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, lineNo, err
	}
	return values, 0, nil
}
