package paramfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParamFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_OpenKeyword(t *testing.T) {
	path := writeParamFile(t, "model.phoebe", `# PHOEBE parameter file
phoebe_name           = "V1031 Ori"
phoebe_lc_filename[1] = "lc_v.dat"   # visual light curve
phoebe_incl           = 82.5

phoebe_note = "contains # inside quotes"
phoebe_incl = 83.0
`)

	bundle, err := NewLoader().Open(path)
	require.NoError(t, err)

	assert.Equal(t, path, bundle.Source)
	assert.Equal(t, []Parameter{
		{Qualifier: "phoebe_name", Value: "V1031 Ori"},
		{Qualifier: "phoebe_lc_filename[1]", Value: "lc_v.dat"},
		{Qualifier: "phoebe_incl", Value: "83.0"},
		{Qualifier: "phoebe_note", Value: "contains # inside quotes"},
	}, bundle.Parameters, "repeated qualifiers keep their first position and take the last value")
}

func TestLoader_OpenStructured(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "yaml",
			file:    "model.yaml",
			content: "phoebe_name: V1031 Ori\nphoebe_incl: 82.5\nphoebe_lc_filename:\n  - lc_v.dat\n  - lc_b.dat\n",
		},
		{
			name:    "json",
			file:    "model.json",
			content: `{"phoebe_name": "V1031 Ori", "phoebe_incl": 82.5, "phoebe_lc_filename": ["lc_v.dat", "lc_b.dat"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := NewLoader().Open(writeParamFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 4, bundle.Len())
			v, ok := bundle.Lookup("phoebe_incl")
			assert.True(t, ok)
			assert.Equal(t, "82.5", v)
			v, _ = bundle.Lookup("phoebe_lc_filename[2]")
			assert.Equal(t, "lc_b.dat", v)
			v, _ = bundle.Lookup("phoebe_name")
			assert.Equal(t, "V1031 Ori", v)
		})
	}
}

func TestLoader_OpenErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   func(t *testing.T) string
		line   int
		reason string
	}{
		{
			name:   "missing file",
			path:   func(t *testing.T) string { return filepath.Join(dir, "badpath.phoebe") },
			reason: "file not found",
		},
		{
			name:   "directory",
			path:   func(t *testing.T) string { return dir },
			reason: "is a directory",
		},
		{
			name:   "empty file",
			path:   func(t *testing.T) string { return writeParamFile(t, "empty.phoebe", "# nothing here\n\n") },
			reason: "no parameters",
		},
		{
			name:   "missing equals",
			path:   func(t *testing.T) string { return writeParamFile(t, "bad.phoebe", "phoebe_name = ok\nphoebe_incl 82\n") },
			line:   2,
			reason: "expected 'qualifier = value'",
		},
		{
			name:   "bad qualifier",
			path:   func(t *testing.T) string { return writeParamFile(t, "bad.phoebe", "1st = value\n") },
			line:   1,
			reason: "invalid qualifier",
		},
		{
			name:   "unterminated string",
			path:   func(t *testing.T) string { return writeParamFile(t, "bad.phoebe", "phoebe_name = \"V1031\n") },
			line:   1,
			reason: "unterminated string",
		},
		{
			name:   "malformed yaml",
			path:   func(t *testing.T) string { return writeParamFile(t, "bad.yaml", "phoebe_name: [x\n") },
			reason: "malformed file",
		},
		{
			name:   "nested map",
			path:   func(t *testing.T) string { return writeParamFile(t, "bad.yaml", "phoebe_star:\n  mass: 1\n") },
			reason: "unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			bundle, err := NewLoader().Open(path)

			assert.Nil(t, bundle)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, path, loadErr.Path)
			assert.Equal(t, tt.line, loadErr.Line)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestLoader_MaxSize(t *testing.T) {
	path := writeParamFile(t, "big.phoebe", "phoebe_name = \"a rather long value\"\n")

	_, err := (&Loader{MaxSize: 8}).Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 8 bytes")

	bundle, err := (&Loader{}).Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, bundle.Len())
}

func TestBundle_NilSafe(t *testing.T) {
	var b *Bundle
	assert.Equal(t, 0, b.Len())
	_, ok := b.Lookup("phoebe_name")
	assert.False(t, ok)
}

func TestLoadError_Unwrap(t *testing.T) {
	_, err := NewLoader().Open(filepath.Join(t.TempDir(), "nope.phoebe"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
