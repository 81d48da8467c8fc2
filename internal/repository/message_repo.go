package repository

import (
	"context"
	"fmt"

	"chatboard/internal/model"
)

// MessageRepository defines operations for message data. Messages are
// append-only: there is no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindConversation(ctx context.Context, userA, userB int) ([]model.Message, error)
}

type messageRepository struct {
	db DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message into the database
func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	sql := `INSERT INTO messages (sender_id, receiver_id, text, created_at)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, m.SenderID, m.ReceiverID, m.Text, m.CreatedAt).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindConversation retrieves all messages exchanged between two users
// in either direction, oldest first. The id tiebreak keeps the order
// total, so swapping the arguments yields the identical slice.
func (r *messageRepository) FindConversation(ctx context.Context, userA, userB int) ([]model.Message, error) {
	sql := `SELECT id, sender_id, receiver_id, text, created_at
            FROM messages
            WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
            ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, sql, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}
