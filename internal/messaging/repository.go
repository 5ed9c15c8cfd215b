package messaging

import (
	"context"
	"errors"
)

// ErrMessageNotFound is returned by repositories when no message matches
// the given id. Store implementations map their own not-found errors onto
// this so the service can distinguish absence from store failure.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepository is the durable message store. Listings are returned
// newest first, ties broken by creation order; limit bounds the result
// and is always positive by the time it reaches the repository.
type MessageRepository interface {
	Save(ctx context.Context, msg *Message) error
	ByID(ctx context.Context, id string) (*Message, error)
	ByReceiver(ctx context.Context, receiverID string, limit int) ([]*Message, error)
	BySender(ctx context.Context, senderID string, limit int) ([]*Message, error)
	ByThread(ctx context.Context, threadID string, limit int) ([]*Message, error)

	// MarkRead flips a single message to read. Idempotent.
	MarkRead(ctx context.Context, id string) error

	// MarkThreadRead flips every unread message in the thread addressed to
	// receiverID. Returns the number of messages transitioned.
	MarkThreadRead(ctx context.Context, threadID, receiverID string) (int64, error)

	CountBySender(ctx context.Context, senderID string) (int64, error)
	CountByReceiver(ctx context.Context, receiverID string) (int64, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}

// ActorDirectory resolves counterpart actors. Returns (nil, nil) when no
// active actor has the given id; errors are store failures only.
type ActorDirectory interface {
	ActorByID(ctx context.Context, id string) (*Actor, error)
}
