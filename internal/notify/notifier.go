// Package notify delivers reminder messages to team members.
package notify

import "context"

// Notifier sends a message to a recipient address. Implementations
// must return transmission failures to the caller rather than
// swallowing them; the reminder engine depends on that to report
// per-task delivery outcomes.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
