package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)
	assert.NotEqual(t, s.ID(), New().ID())
	assert.False(t, s.Started().IsZero())

	assert.Equal(t, FileState{}, s.State())
	assert.True(t, s.LoadedAt().IsZero())
}

func TestSession_MarkLoaded(t *testing.T) {
	s := New()

	s.MarkLoaded("first.phoebe")
	s.MarkLoaded("model.phoebe")

	assert.Equal(t, FileState{FileFlag: true, FileName: "model.phoebe"}, s.State())
	assert.False(t, s.LoadedAt().IsZero())
}
