package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
)

const messagesCollection = "messages"

// messageDoc is the Mongo document for a direct message. The ObjectID
// doubles as the creation-order tiebreak when two messages share a
// created_at.
type messageDoc struct {
	OID        primitive.ObjectID `bson:"_id,omitempty"`
	MessageID  string             `bson:"message_id"`
	SenderID   string             `bson:"sender_id"`
	ReceiverID string             `bson:"receiver_id"`
	ThreadID   string             `bson:"thread_id"`
	Content    string             `bson:"content"`
	IsRead     bool               `bson:"is_read"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *messageDoc) toDomain() *messaging.Message {
	return &messaging.Message{
		ID:         d.MessageID,
		SenderID:   d.SenderID,
		ReceiverID: d.ReceiverID,
		ThreadID:   d.ThreadID,
		Content:    d.Content,
		IsRead:     d.IsRead,
		CreatedAt:  d.CreatedAt,
	}
}

type messageStore struct {
	coll *mongo.Collection
}

// NewMessageStore returns the MongoDB-backed message store.
func NewMessageStore(mc *MongoClient) messaging.MessageRepository {
	return &messageStore{coll: mc.Database.Collection(messagesCollection)}
}

// EnsureMessageIndexes creates the compound indexes backing the store's
// four access patterns. Safe to call on every startup.
func EnsureMessageIndexes(ctx context.Context, mc *MongoClient) error {
	coll := mc.Database.Collection(messagesCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "message_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "thread_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

func (s *messageStore) Save(ctx context.Context, msg *messaging.Message) error {
	doc := &messageDoc{
		MessageID:  msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ThreadID:   msg.ThreadID,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *messageStore) ByID(ctx context.Context, id string) (*messaging.Message, error) {
	var doc messageDoc
	err := s.coll.FindOne(ctx, bson.M{"message_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, messaging.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *messageStore) ByReceiver(ctx context.Context, receiverID string, limit int) ([]*messaging.Message, error) {
	return s.list(ctx, bson.M{"receiver_id": receiverID}, limit)
}

func (s *messageStore) BySender(ctx context.Context, senderID string, limit int) ([]*messaging.Message, error) {
	return s.list(ctx, bson.M{"sender_id": senderID}, limit)
}

func (s *messageStore) ByThread(ctx context.Context, threadID string, limit int) ([]*messaging.Message, error) {
	return s.list(ctx, bson.M{"thread_id": threadID}, limit)
}

func (s *messageStore) list(ctx context.Context, filter bson.M, limit int) ([]*messaging.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	msgs := make([]*messaging.Message, len(docs))
	for i, doc := range docs {
		msgs[i] = doc.toDomain()
	}
	return msgs, nil
}

func (s *messageStore) MarkRead(ctx context.Context, id string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"message_id": id, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (s *messageStore) MarkThreadRead(ctx context.Context, threadID, receiverID string) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"thread_id": threadID, "receiver_id": receiverID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}
	return result.ModifiedCount, nil
}

func (s *messageStore) CountBySender(ctx context.Context, senderID string) (int64, error) {
	return s.count(ctx, bson.M{"sender_id": senderID})
}

func (s *messageStore) CountByReceiver(ctx context.Context, receiverID string) (int64, error) {
	return s.count(ctx, bson.M{"receiver_id": receiverID})
}

func (s *messageStore) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	return s.count(ctx, bson.M{"receiver_id": receiverID, "is_read": false})
}

func (s *messageStore) count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}
