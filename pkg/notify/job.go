// Package notify defines the queue payload for user notifications and the
// publisher contract the services use to emit them. The notification
// worker consumes these jobs, persists them and optionally emails them.
package notify

import "context"

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Job is one queued notification for one user.
type Job struct {
	UserID  string         `json:"user_id"`
	Email   string         `json:"email,omitempty"`
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
