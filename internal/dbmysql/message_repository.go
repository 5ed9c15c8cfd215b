package dbmysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns the MySQL-backed message store.
func NewMessageRepository(db *gorm.DB) messaging.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Save(ctx context.Context, msg *messaging.Message) error {
	row := newMessageRow(msg)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (r *messageRepository) ByID(ctx context.Context, id string) (*messaging.Message, error) {
	var row Message
	err := r.db.WithContext(ctx).Where("message_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, messaging.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return row.toDomain(), nil
}

func (r *messageRepository) ByReceiver(ctx context.Context, receiverID string, limit int) ([]*messaging.Message, error) {
	return r.list(ctx, "receiver_id = ?", receiverID, limit)
}

func (r *messageRepository) BySender(ctx context.Context, senderID string, limit int) ([]*messaging.Message, error) {
	return r.list(ctx, "sender_id = ?", senderID, limit)
}

func (r *messageRepository) ByThread(ctx context.Context, threadID string, limit int) ([]*messaging.Message, error) {
	return r.list(ctx, "thread_id = ?", threadID, limit)
}

func (r *messageRepository) list(ctx context.Context, cond, arg string, limit int) ([]*messaging.Message, error) {
	var rows []*Message
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC, seq DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	msgs := make([]*messaging.Message, len(rows))
	for i, row := range rows {
		msgs[i] = row.toDomain()
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("message_id = ? AND is_read = ?", id, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, threadID, receiverID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("thread_id = ? AND receiver_id = ? AND is_read = ?", threadID, receiverID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *messageRepository) CountBySender(ctx context.Context, senderID string) (int64, error) {
	return r.count(ctx, "sender_id = ?", senderID)
}

func (r *messageRepository) CountByReceiver(ctx context.Context, receiverID string) (int64, error) {
	return r.count(ctx, "receiver_id = ?", receiverID)
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

func (r *messageRepository) count(ctx context.Context, cond, arg string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where(cond, arg).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}
