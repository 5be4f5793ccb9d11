package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggle(t *testing.T) {
	s := NewSelection()

	s.Toggle("i1")
	assert.True(t, s.Has("i1"))
	assert.Equal(t, 1, s.Len())

	s.Toggle("i1")
	assert.False(t, s.Has("i1"))
	assert.Zero(t, s.Len())
}

func TestSelectionIDsStableOrder(t *testing.T) {
	s := NewSelection()
	s.Toggle("i3")
	s.Toggle("i1")
	s.Toggle("i2")

	assert.Equal(t, []string{"i1", "i2", "i3"}, s.IDs())
}

func TestSelectionPruneDropsHidden(t *testing.T) {
	s := NewSelection()
	s.Toggle("i1")
	s.Toggle("i2")

	s.Prune(map[string]struct{}{"i2": {}})

	assert.False(t, s.Has("i1"))
	assert.True(t, s.Has("i2"))
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection()
	s.Toggle("i1")
	s.Clear()
	assert.Zero(t, s.Len())
}
