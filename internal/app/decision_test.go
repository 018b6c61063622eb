package app

import (
	"testing"

	"phoebe/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		status     config.Status
		want       DecisionKind
		wantDialog bool
	}{
		{config.StatusCurrent, DecisionNormal, false},
		{config.StatusImportedSupported, DecisionShowSupportedImportNotice, true},
		{config.StatusImportedLegacy, DecisionShowLegacyImportNotice, true},
		{config.StatusNotFound, DecisionShowWelcome, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			d := Decide(tt.status)
			assert.Equal(t, tt.want, d.Kind)
			assert.Equal(t, tt.wantDialog, d.OpenSettingsDialog)
		})
	}
}

// Every outcome the store can report maps to a decision, and the dialog
// opens exactly when the status is not Current.
func TestDecide_TotalOverOutcomes(t *testing.T) {
	outcomes := []config.Outcome{
		config.OutcomeCurrent,
		config.OutcomeImportedSupported,
		config.OutcomeImportedLegacy,
		config.OutcomeNotFound,
		config.OutcomeError,
	}

	for _, o := range outcomes {
		status := config.Classify(o)
		d := Decide(status)
		assert.Equal(t, status != config.StatusCurrent, d.OpenSettingsDialog, o.String())
	}
}

func TestDecision_Notice(t *testing.T) {
	n, ok := Decide(config.StatusNotFound).Notice()
	assert.True(t, ok)
	assert.Equal(t, "Welcome to PHOEBE!", n.Title)
	assert.Equal(t, "PHOEBE will create a configuration directory and take you to the Settings window.", n.Body)

	n, ok = Decide(config.StatusImportedLegacy).Notice()
	assert.True(t, ok)
	assert.Contains(t, n.Body, "legacy (pre-0.30)")

	n, ok = Decide(config.StatusImportedSupported).Notice()
	assert.True(t, ok)
	assert.Contains(t, n.Body, "imported your previous configuration file")

	_, ok = Decide(config.StatusCurrent).Notice()
	assert.False(t, ok)
}

func TestDecisionKind_String(t *testing.T) {
	assert.Equal(t, "Normal", DecisionNormal.String())
	assert.Equal(t, "ShowWelcome", DecisionShowWelcome.String())
	assert.Equal(t, "ShowLegacyImportNotice", DecisionShowLegacyImportNotice.String())
	assert.Equal(t, "ShowSupportedImportNotice", DecisionShowSupportedImportNotice.String())
	assert.Equal(t, "Unknown", DecisionKind(42).String())
}
