package messaging

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chaitanyakotagiri27/SecureShift/internal/config"
)

// MaxContentLength is the maximum message length in characters, counted
// after trimming surrounding whitespace.
const MaxContentLength = 1000

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Service is the messaging engine exposed to the handler layer. All
// business rules live here; handlers only translate HTTP and the
// repositories only touch storage.
type Service interface {
	Send(ctx context.Context, senderID, senderRole, receiverID, content string) (*Message, error)
	Inbox(ctx context.Context, actorID string, limit int) ([]*Message, int64, error)
	Sent(ctx context.Context, actorID string, limit int) ([]*Message, error)
	Conversation(ctx context.Context, actorID, otherID string, limit int) ([]*Message, *Actor, error)
	MarkRead(ctx context.Context, actorID, messageID string) (*Message, error)
	Stats(ctx context.Context, actorID string) (*Stats, error)
}

type service struct {
	repo      MessageRepository
	directory ActorDirectory
	policy    RolePolicy

	defaultPage int
	maxPage     int
}

// NewService wires the messaging engine. A nil policy means AllowAll.
func NewService(cfg *config.Config, repo MessageRepository, directory ActorDirectory, policy RolePolicy) Service {
	s := &service{
		repo:        repo,
		directory:   directory,
		policy:      policy,
		defaultPage: defaultPageSize,
		maxPage:     maxPageSize,
	}
	if policy == nil {
		s.policy = AllowAll
	}
	if cfg != nil && cfg.Messaging.DefaultPageSize > 0 {
		s.defaultPage = cfg.Messaging.DefaultPageSize
	}
	if cfg != nil && cfg.Messaging.MaxPageSize > 0 {
		s.maxPage = cfg.Messaging.MaxPageSize
	}
	return s
}

// Send validates and persists a new message. The sender identity comes
// from the auth layer and is trusted as-is; the receiver is looked up so
// a message can never be addressed to a missing or deactivated account.
func (s *service) Send(ctx context.Context, senderID, senderRole, receiverID, content string) (*Message, error) {
	if senderID == receiverID {
		return nil, status.Error(codes.InvalidArgument, "cannot send message to yourself")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, status.Error(codes.InvalidArgument, "message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, status.Error(codes.InvalidArgument, "message content cannot exceed 1000 characters")
	}

	receiver, err := s.directory.ActorByID(ctx, receiverID)
	if err != nil {
		return nil, storeError(err)
	}
	if receiver == nil {
		return nil, status.Error(codes.NotFound, "receiver not found")
	}

	if !s.policy(senderRole, receiver.Role) {
		return nil, status.Error(codes.PermissionDenied, "messages can only be sent between guards and employers")
	}

	msg := &Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		ThreadID:   ThreadID(senderID, receiverID),
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, storeError(err)
	}

	return msg, nil
}

// Inbox returns the newest messages addressed to the actor along with the
// actor's unread count.
func (s *service) Inbox(ctx context.Context, actorID string, limit int) ([]*Message, int64, error) {
	msgs, err := s.repo.ByReceiver(ctx, actorID, s.clampLimit(limit))
	if err != nil {
		return nil, 0, storeError(err)
	}

	unread, err := s.repo.CountUnread(ctx, actorID)
	if err != nil {
		return nil, 0, storeError(err)
	}

	return msgs, unread, nil
}

// Sent returns the newest messages the actor has sent.
func (s *service) Sent(ctx context.Context, actorID string, limit int) ([]*Message, error) {
	msgs, err := s.repo.BySender(ctx, actorID, s.clampLimit(limit))
	if err != nil {
		return nil, storeError(err)
	}
	return msgs, nil
}

// Conversation returns the thread between the actor and the counterpart
// in chronological order, marking every message addressed to the actor as
// read first so the returned page reflects the new state. Repeating the
// call never un-reads anything, and the counterpart's received messages
// are untouched.
func (s *service) Conversation(ctx context.Context, actorID, otherID string, limit int) ([]*Message, *Actor, error) {
	other, err := s.directory.ActorByID(ctx, otherID)
	if err != nil {
		return nil, nil, storeError(err)
	}
	if other == nil {
		return nil, nil, status.Error(codes.NotFound, "user not found")
	}

	threadID := ThreadID(actorID, otherID)

	if _, err := s.repo.MarkThreadRead(ctx, threadID, actorID); err != nil {
		return nil, nil, storeError(err)
	}

	msgs, err := s.repo.ByThread(ctx, threadID, s.clampLimit(limit))
	if err != nil {
		return nil, nil, storeError(err)
	}

	// Fetched newest first; reverse so callers read oldest first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, other, nil
}

// MarkRead flips a single message to read. Only the receiver may do this;
// marking an already-read message again succeeds and returns the record
// unchanged.
func (s *service) MarkRead(ctx context.Context, actorID, messageID string) (*Message, error) {
	msg, err := s.repo.ByID(ctx, messageID)
	if errors.Is(err, ErrMessageNotFound) {
		return nil, status.Error(codes.NotFound, "message not found")
	}
	if err != nil {
		return nil, storeError(err)
	}

	if msg.ReceiverID != actorID {
		return nil, status.Error(codes.PermissionDenied, "only the receiver can mark this message as read")
	}

	if msg.IsRead {
		return msg, nil
	}

	if err := s.repo.MarkRead(ctx, messageID); err != nil {
		return nil, storeError(err)
	}

	msg.IsRead = true
	return msg, nil
}

// Stats derives the actor's counters from the store. Total is computed
// from the sent and received reads so the total == sent + received
// relation holds for whatever data was actually read.
func (s *service) Stats(ctx context.Context, actorID string) (*Stats, error) {
	sent, err := s.repo.CountBySender(ctx, actorID)
	if err != nil {
		return nil, storeError(err)
	}

	received, err := s.repo.CountByReceiver(ctx, actorID)
	if err != nil {
		return nil, storeError(err)
	}

	unread, err := s.repo.CountUnread(ctx, actorID)
	if err != nil {
		return nil, storeError(err)
	}

	return &Stats{
		Unread:   unread,
		Sent:     sent,
		Received: received,
		Total:    sent + received,
	}, nil
}

// clampLimit bounds a caller-supplied page size: non-positive falls back
// to the default, oversized is clamped to the maximum.
func (s *service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultPage
	}
	if limit > s.maxPage {
		return s.maxPage
	}
	return limit
}

func storeError(err error) error {
	return status.Errorf(codes.Unavailable, "message store unavailable: %v", err)
}
