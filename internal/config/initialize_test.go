package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingResolver captures what was registered at the moment Resolve ran.
type recordingResolver struct {
	outcome       Outcome
	seenAtResolve []string
	calls         int
}

func (r *recordingResolver) Resolve(reg *Registry) Resolution {
	r.calls++
	r.seenAtResolve = reg.Names()
	return Resolution{Outcome: r.outcome}
}

func TestInitialize_RegistersBeforeResolving(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeCurrent, OutcomeImportedSupported, OutcomeImportedLegacy, OutcomeNotFound, OutcomeError} {
		t.Run(outcome.String(), func(t *testing.T) {
			resolver := &recordingResolver{outcome: outcome}
			res, err := Initialize(NewRegistry(), resolver, GUIOptions...)

			require.NoError(t, err)
			assert.Equal(t, 1, resolver.calls, "the store is probed exactly once")
			assert.Contains(t, resolver.seenAtResolve, OptionConfirmOnOverwrite)
			assert.Contains(t, resolver.seenAtResolve, OptionBeepAfterPlotAndFit)
			assert.Equal(t, Classify(outcome), res.Status)
		})
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	reg := NewRegistry()
	resolver := &recordingResolver{outcome: OutcomeCurrent}

	_, err := Initialize(reg, resolver, GUIOptions...)
	require.NoError(t, err)
	_, err = Initialize(reg, resolver, GUIOptions...)
	require.NoError(t, err, "re-registering the same defaults must not error")

	confirm, _ := reg.Bool(OptionConfirmOnOverwrite)
	beep, _ := reg.Bool(OptionBeepAfterPlotAndFit)
	assert.True(t, confirm)
	assert.False(t, beep)
}

func TestInitialize_ConflictStillResolves(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(TypeString, OptionConfirmOnOverwrite, "yes"))
	resolver := &recordingResolver{outcome: OutcomeNotFound}

	res, err := Initialize(reg, resolver, GUIOptions...)

	assert.Error(t, err)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestInitialize_WithStore(t *testing.T) {
	store := NewStore(t.TempDir())
	res, err := Initialize(NewRegistry(), store, GUIOptions...)

	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, store.Dir(), res.Resolution.Path)
}
