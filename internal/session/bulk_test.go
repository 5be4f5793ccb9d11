package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulkOpAccounting(t *testing.T) {
	op := NewBulkOp("Updated", 7, 3)

	assert.NotEmpty(t, op.ID)
	assert.False(t, op.Finished())

	op.Record(nil)
	op.Record(errors.New("boom"))
	assert.False(t, op.Finished())

	op.Record(nil)
	assert.True(t, op.Finished())
	assert.Equal(t, 1, op.Failed)
}

func TestBulkOpSummary(t *testing.T) {
	clean := NewBulkOp("Archived", 1, 4)
	for i := 0; i < 4; i++ {
		clean.Record(nil)
	}
	assert.Equal(t, "Archived 4 issues", clean.Summary())

	partial := NewBulkOp("Updated", 1, 4)
	partial.Record(nil)
	partial.Record(nil)
	partial.Record(nil)
	partial.Record(errors.New("boom"))
	assert.Equal(t, "Updated 3/4 issues (1 failed)", partial.Summary())
}

func TestBulkOpIDsAreUnique(t *testing.T) {
	a := NewBulkOp("Updated", 1, 1)
	b := NewBulkOp("Updated", 1, 1)
	assert.NotEqual(t, a.ID, b.ID)
}
