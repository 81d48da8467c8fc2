package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatboard/internal/model"
	"chatboard/internal/repository"
)

var (
	ErrMessageEmpty   = errors.New("message text must not be empty")
	ErrMessageTooLong = errors.New("message text exceeds maximum length")
)

// ChatService provides direct messaging between two users
type ChatService interface {
	Send(ctx context.Context, senderID, receiverID int, text string) (*model.Message, error)
	// Conversation returns every message exchanged between the two
	// users in either direction, oldest first. Symmetric in its
	// arguments.
	Conversation(ctx context.Context, userA, userB int) ([]model.Message, error)
	Partner(ctx context.Context, userID int) (*model.User, error)
}

type chatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewChatService creates a new ChatService
func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) ChatService {
	return &chatService{messageRepo: messageRepo, userRepo: userRepo}
}

// Send appends one message. Text is bounded by the storage limit;
// the receiver is not re-validated here (the chat page already checked
// the partner exists on load).
func (s *chatService) Send(ctx context.Context, senderID, receiverID int, text string) (*model.Message, error) {
	if text == "" {
		return nil, ErrMessageEmpty
	}
	if len(text) > model.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message in repo: %w", err)
	}
	return message, nil
}

// Conversation returns the ordered two-way message history
func (s *chatService) Conversation(ctx context.Context, userA, userB int) ([]model.Message, error) {
	messages, err := s.messageRepo.FindConversation(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return messages, nil
}

// Partner loads the chat peer's profile
func (s *chatService) Partner(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find chat partner: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
