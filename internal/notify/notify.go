package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/nudge/pkg/domain"
)

// NotifyOption customises a notification raised through Notify.
type NotifyOption func(*domain.Spec)

// WithDuration auto-dismisses the notification after d. Zero keeps it until
// closed.
func WithDuration(d time.Duration) NotifyOption {
	return func(s *domain.Spec) { s.Duration = d }
}

// WithAction attaches the notification's single action. A later WithAction
// replaces an earlier one.
func WithAction(label string, invoke func()) NotifyOption {
	return func(s *domain.Spec) {
		s.Action = &domain.Action{Label: label, Invoke: invoke}
	}
}

// Notify is the add-notification entry point used by UI collaborators.
func (s *Store) Notify(kind domain.Kind, title, message string, opts ...NotifyOption) uuid.UUID {
	spec := domain.Spec{Kind: kind, Title: title, Message: message}
	for _, opt := range opts {
		opt(&spec)
	}
	return s.Add(spec)
}
