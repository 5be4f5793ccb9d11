package session

import (
	"time"
)

// NotificationKind classifies a notification for styling and expiry.
type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifySuccess
	NotifyError
	NotifyLoading
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyError:
		return "error"
	case NotifyLoading:
		return "loading"
	default:
		return "info"
	}
}

// Notification is one toast. Loading notifications stick around until they
// are replaced; Success and Info expire after DisplayDuration; Error stays
// until dismissed.
type Notification struct {
	ID        int
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
}

// MaxVisible is the number of notifications shown at once.
const MaxVisible = 3

// DisplayDuration is how long Success and Info notifications live.
const DisplayDuration = 5 * time.Second

// Notifications manages the toast queue. IDs are monotonically increasing
// and never reused within a session.
type Notifications struct {
	items  []Notification
	nextID int
	now    func() time.Time
}

// NewNotifications creates an empty manager using the wall clock.
func NewNotifications() *Notifications {
	return &Notifications{nextID: 1, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (n *Notifications) SetClock(now func() time.Time) { n.now = now }

// Notify adds a notification and returns its id. When the queue is full
// the oldest notification is evicted regardless of kind.
func (n *Notifications) Notify(kind NotificationKind, message string) int {
	id := n.nextID
	n.nextID++

	n.items = append(n.items, Notification{
		ID:        id,
		Kind:      kind,
		Message:   message,
		CreatedAt: n.now(),
	})

	if len(n.items) > MaxVisible {
		n.items = n.items[len(n.items)-MaxVisible:]
	}

	return id
}

// Replace swaps the kind and message of an existing notification in place,
// restarting its expiry window. Returns false when the id is gone (evicted
// or expired), in which case the caller may Notify instead.
func (n *Notifications) Replace(id int, kind NotificationKind, message string) bool {
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Kind = kind
			n.items[i].Message = message
			n.items[i].CreatedAt = n.now()
			return true
		}
	}
	return false
}

// Resolve replaces the notification when it still exists and creates a new
// one otherwise, so a completion is never silently lost.
func (n *Notifications) Resolve(id int, kind NotificationKind, message string) int {
	if id != 0 && n.Replace(id, kind, message) {
		return id
	}
	return n.Notify(kind, message)
}

// Dismiss removes the oldest notification, error or not.
func (n *Notifications) Dismiss() {
	if len(n.items) > 0 {
		n.items = n.items[1:]
	}
}

// DismissID removes a specific notification.
func (n *Notifications) DismissID(id int) {
	for i := range n.items {
		if n.items[i].ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Tick removes Success and Info notifications older than DisplayDuration.
// Loading and Error notifications never expire on their own.
func (n *Notifications) Tick(now time.Time) {
	kept := n.items[:0]
	for _, item := range n.items {
		expires := item.Kind == NotifySuccess || item.Kind == NotifyInfo
		if expires && now.Sub(item.CreatedAt) >= DisplayDuration {
			continue
		}
		kept = append(kept, item)
	}
	n.items = kept
}

// Visible returns the notifications to render, oldest first.
func (n *Notifications) Visible() []Notification {
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Remaining returns how long a Success or Info notification has left, used
// for the countdown in the toast. Zero for other kinds.
func (n *Notifications) Remaining(item Notification) time.Duration {
	if item.Kind != NotifySuccess && item.Kind != NotifyInfo {
		return 0
	}
	left := DisplayDuration - n.now().Sub(item.CreatedAt)
	if left < 0 {
		return 0
	}
	return left
}
