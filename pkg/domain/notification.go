package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the presentation category of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Kinds lists every valid kind in display order.
var Kinds = []Kind{KindSuccess, KindWarning, KindError, KindInfo}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Action is the single optional user action attached to a notification.
// Invoke runs when the action is activated; it never removes the notification.
type Action struct {
	Label  string
	Invoke func()
}

// Spec describes a notification to add. The store assigns the ID.
type Spec struct {
	Kind     Kind
	Title    string
	Message  string
	Duration time.Duration // 0 = no auto-dismiss
	Action   *Action
}

// Notification is a transient alert currently held by the store.
type Notification struct {
	ID        uuid.UUID     `json:"id"`
	Kind      Kind          `json:"kind"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration,omitempty"`
	Action    *Action       `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// HasAction reports whether the notification carries an invokable action.
func (n Notification) HasAction() bool {
	return n.Action != nil && n.Action.Invoke != nil
}

// AutoDismiss reports whether the notification removes itself after Duration.
func (n Notification) AutoDismiss() bool {
	return n.Duration > 0
}
