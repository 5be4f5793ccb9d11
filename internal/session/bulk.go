package session

import (
	"fmt"

	"github.com/google/uuid"
)

// BulkAction is an entry in the bulk menu.
type BulkAction int

const (
	BulkSetStatus BulkAction = iota
	BulkSetPriority
	BulkSetAssignee
	BulkMoveProject
	BulkArchive
	bulkActionCount
)

// BulkActionLabels lists the bulk menu entries in order.
var BulkActionLabels = []string{
	"Set status",
	"Set priority",
	"Set assignee",
	"Move to project",
	"Archive",
}

// BulkOp tracks one bulk operation: a fan-out of per-issue effects sharing
// a BulkID. Individual failures never abort the remaining issues; they are
// counted and reported in the final summary.
type BulkOp struct {
	ID      string
	Verb    string // past tense for the summary, e.g. "Updated"
	NotifID int
	Total   int
	Done    int
	Failed  int
}

// NewBulkOp starts accounting for a bulk fan-out of total effects.
func NewBulkOp(verb string, notifID, total int) *BulkOp {
	return &BulkOp{
		ID:      uuid.NewString(),
		Verb:    verb,
		NotifID: notifID,
		Total:   total,
	}
}

// Record counts one per-issue completion.
func (b *BulkOp) Record(err error) {
	b.Done++
	if err != nil {
		b.Failed++
	}
}

// Finished reports whether every per-issue effect completed.
func (b *BulkOp) Finished() bool {
	return b.Done >= b.Total
}

// Summary is the final notification message.
func (b *BulkOp) Summary() string {
	succeeded := b.Total - b.Failed
	if b.Failed == 0 {
		return fmt.Sprintf("%s %d issues", b.Verb, b.Total)
	}
	return fmt.Sprintf("%s %d/%d issues (%d failed)", b.Verb, succeeded, b.Total, b.Failed)
}
