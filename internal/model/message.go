package model

import "time"

// MaxMessageLength is the storage bound on message text.
const MaxMessageLength = 10000

// Message represents one direct message between two users. Messages
// are append-only: never updated or deleted.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendMessageRequest is the chat form payload
type SendMessageRequest struct {
	Text string `form:"message" binding:"required"`
}
