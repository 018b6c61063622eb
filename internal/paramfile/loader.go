package paramfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"phoebe/pkg/logging"
	pkgstrings "phoebe/pkg/strings"

	"sigs.k8s.io/yaml"
)

// qualifierPattern accepts plain qualifiers and indexed ones like phoebe_lc_filename[2].
var qualifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*(\[[0-9]+\])?$`)

// Loader opens parameter files. The zero value is ready to use.
type Loader struct {
	// MaxSize rejects files larger than this many bytes; zero means no limit.
	MaxSize int64
}

// NewLoader creates a loader with the default size limit.
func NewLoader() *Loader {
	return &Loader{MaxSize: 16 << 20}
}

// Open reads and parses the parameter file at path. Files ending in .yaml,
// .yml or .json are read as a qualifier map; anything else uses the keyword
// format ("qualifier = value" lines, '#' comments).
//
// The whole file is parsed before Open returns, so a caller applying the
// bundle never sees a partially read file. Errors are *LoadError.
func (l *Loader) Open(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Path: path, Reason: "file not found", Err: err}
		}
		return nil, &LoadError{Path: path, Reason: "cannot access file", Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Reason: "is a directory"}
	}
	if l.MaxSize > 0 && info.Size() > l.MaxSize {
		return nil, &LoadError{Path: path, Reason: fmt.Sprintf("file exceeds %d bytes", l.MaxSize)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot read file", Err: err}
	}

	var bundle *Bundle
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		bundle, err = parseStructured(path, data)
	default:
		bundle, err = parseKeyword(path, data)
	}
	if err != nil {
		return nil, err
	}
	if bundle.Len() == 0 {
		return nil, &LoadError{Path: path, Reason: "file contains no parameters"}
	}

	logging.Debug("ParamFile", "Parsed %d parameters from %s", bundle.Len(), path)
	return bundle, nil
}

func parseKeyword(path string, data []byte) (*Bundle, error) {
	bundle := &Bundle{Source: path}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := pkgstrings.StripComment(scanner.Text())
		if line == "" {
			continue
		}

		qualifier, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &LoadError{Path: path, Line: lineNo, Reason: fmt.Sprintf("expected 'qualifier = value', got %q", line)}
		}
		qualifier = strings.TrimSpace(qualifier)
		if !qualifierPattern.MatchString(qualifier) {
			return nil, &LoadError{Path: path, Line: lineNo, Reason: fmt.Sprintf("invalid qualifier %q", qualifier)}
		}
		value, err := unquote(strings.TrimSpace(value))
		if err != nil {
			return nil, &LoadError{Path: path, Line: lineNo, Reason: err.Error()}
		}
		bundle.set(qualifier, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Line: lineNo, Reason: "cannot read file", Err: err}
	}
	return bundle, nil
}

func unquote(v string) (string, error) {
	if !strings.HasPrefix(v, `"`) {
		return v, nil
	}
	if len(v) < 2 || !strings.HasSuffix(v, `"`) {
		return "", fmt.Errorf("unterminated string %s", v)
	}
	return v[1 : len(v)-1], nil
}

func parseStructured(path string, data []byte) (*Bundle, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Path: path, Reason: "malformed file", Err: err}
	}

	qualifiers := make([]string, 0, len(raw))
	for q := range raw {
		qualifiers = append(qualifiers, q)
	}
	sort.Strings(qualifiers)

	bundle := &Bundle{Source: path}
	for _, q := range qualifiers {
		if !qualifierPattern.MatchString(q) {
			return nil, &LoadError{Path: path, Reason: fmt.Sprintf("invalid qualifier %q", q)}
		}
		switch v := raw[q].(type) {
		case []interface{}:
			// Arrays map onto one-based indexed qualifiers.
			for i, elem := range v {
				s, err := scalar(elem)
				if err != nil {
					return nil, &LoadError{Path: path, Reason: fmt.Sprintf("%s[%d]: %v", q, i+1, err)}
				}
				bundle.set(fmt.Sprintf("%s[%d]", q, i+1), s)
			}
		default:
			s, err := scalar(v)
			if err != nil {
				return nil, &LoadError{Path: path, Reason: fmt.Sprintf("%s: %v", q, err)}
			}
			bundle.set(q, s)
		}
	}
	return bundle, nil
}

func scalar(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool, float64, int64, int:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
