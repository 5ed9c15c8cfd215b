package dbmysql

import (
	"time"

	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
)

// Message is the MySQL row for a direct message. Seq is the insertion
// sequence used as the stable tiebreak when two messages share a
// created_at. The composite indexes back the four store access patterns:
// by-receiver, by-sender, by-thread and the unread counter.
type Message struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement;column:seq"`
	MessageID  string    `gorm:"column:message_id;uniqueIndex;size:36;not null"`
	SenderID   string    `gorm:"column:sender_id;size:36;not null;index:idx_sender_created,priority:1"`
	ReceiverID string    `gorm:"column:receiver_id;size:36;not null;index:idx_receiver_created,priority:1;index:idx_receiver_read,priority:1"`
	ThreadID   string    `gorm:"column:thread_id;size:73;not null;index:idx_thread_created,priority:1"`
	Content    string    `gorm:"column:content;size:1000;not null"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false;index:idx_receiver_read,priority:2"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_receiver_created,priority:2;index:idx_sender_created,priority:2;index:idx_thread_created,priority:2"`
}

func newMessageRow(msg *messaging.Message) *Message {
	return &Message{
		MessageID:  msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ThreadID:   msg.ThreadID,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *Message) toDomain() *messaging.Message {
	return &messaging.Message{
		ID:         m.MessageID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		ThreadID:   m.ThreadID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
