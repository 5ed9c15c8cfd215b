package dbmysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func messageColumns() []string {
	return []string{"seq", "message_id", "sender_id", "receiver_id", "thread_id", "content", "is_read", "created_at"}
}

func TestMessageRepository_Save(t *testing.T) {
	tests := []struct {
		name        string
		message     *messaging.Message
		mockSetup   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful save",
			message: &messaging.Message{
				ID:         "msg-123",
				SenderID:   "alice",
				ReceiverID: "bob",
				ThreadID:   "alice_bob",
				Content:    "Hello, world!",
				CreatedAt:  time.Now().UTC(),
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO `messages` (`message_id`,`sender_id`,`receiver_id`,`thread_id`,`content`,`is_read`,`created_at`) VALUES (?,?,?,?,?,?,?)")).
					WithArgs("msg-123", "alice", "bob", "alice_bob", "Hello, world!", false, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectError: false,
		},
		{
			name: "database error",
			message: &messaging.Message{
				ID:         "msg-123",
				SenderID:   "alice",
				ReceiverID: "bob",
				ThreadID:   "alice_bob",
				Content:    "Hello, world!",
				CreatedAt:  time.Now().UTC(),
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `messages`").
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewMessageRepository(db)
			err := repo.Save(context.Background(), tt.message)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMessageRepository_ByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()

		rows := sqlmock.NewRows(messageColumns()).
			AddRow(1, "msg-123", "alice", "bob", "alice_bob", "Hello", false, time.Now())
		mock.ExpectQuery("SELECT \\* FROM `messages` WHERE message_id = ").
			WillReturnRows(rows)

		repo := NewMessageRepository(db)
		msg, err := repo.ByID(context.Background(), "msg-123")

		require.NoError(t, err)
		assert.Equal(t, "msg-123", msg.ID)
		assert.Equal(t, "alice", msg.SenderID)
		assert.Equal(t, "bob", msg.ReceiverID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT \\* FROM `messages` WHERE message_id = ").
			WillReturnRows(sqlmock.NewRows(messageColumns()))

		repo := NewMessageRepository(db)
		_, err := repo.ByID(context.Background(), "missing")

		assert.ErrorIs(t, err, messaging.ErrMessageNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMessageRepository_ByThread(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(messageColumns()).
		AddRow(2, "msg-2", "bob", "alice", "alice_bob", "Hi there!", false, now).
		AddRow(1, "msg-1", "alice", "bob", "alice_bob", "Hello", true, now.Add(-time.Minute))
	mock.ExpectQuery("SELECT \\* FROM `messages` WHERE thread_id = (.+) ORDER BY created_at DESC, seq DESC").
		WillReturnRows(rows)

	repo := NewMessageRepository(db)
	msgs, err := repo.ByThread(context.Background(), "alice_bob", 50)

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "msg-2", msgs[0].ID)
	assert.Equal(t, "msg-1", msgs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkThreadRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `messages` SET `is_read`=").
		WithArgs(true, "alice_bob", "bob", false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	repo := NewMessageRepository(db)
	n, err := repo.MarkThreadRead(context.Background(), "alice_bob", "bob")

	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `messages` SET `is_read`=").
		WithArgs(true, "msg-123", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewMessageRepository(db)
	err := repo.MarkRead(context.Background(), "msg-123")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Counts(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `messages` WHERE sender_id = ").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `messages` WHERE receiver_id = ").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `messages` WHERE receiver_id = (.+) AND is_read = ").
		WithArgs("alice", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	repo := NewMessageRepository(db)
	ctx := context.Background()

	sent, err := repo.CountBySender(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 4, sent)

	received, err := repo.CountByReceiver(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 7, received)

	unread, err := repo.CountUnread(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	assert.NoError(t, mock.ExpectationsWereMet())
}
