package messaging

import (
	"time"
)

// Message is a single direct message between two actors. Everything except
// IsRead is immutable after creation, and IsRead only ever moves from
// false to true.
type Message struct {
	ID         string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	ThreadID   string    `json:"thread_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Actor is the slice of a user the messaging engine cares about. The
// identity itself comes from the auth layer; the directory only resolves
// counterparts.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Stats are the per-actor message counters, derived from the store on
// demand. Total is always Sent + Received against the same read.
type Stats struct {
	Unread   int64 `json:"unread_messages"`
	Sent     int64 `json:"sent_messages"`
	Received int64 `json:"received_messages"`
	Total    int64 `json:"total_messages"`
}
