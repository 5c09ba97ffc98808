package messaging

import (
	"context"
	"errors"
	"strings"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	messages MessageRepository
	users    UserReader
	hub      *Hub
}

func NewService(messages MessageRepository, users UserReader, hub *Hub) *Service {
	return &Service{messages: messages, users: users, hub: hub}
}

func (s *Service) SendMessage(ctx context.Context, actor domain.Principal, req SendMessageRequest) (*domain.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || req.RecipientID == actor.UserID {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	visibility := domain.MessageVisibility(req.Visibility)
	if visibility != domain.VisibilityShared {
		visibility = domain.VisibilityPrivate
	}

	m := &domain.Message{
		SenderID:    actor.UserID,
		RecipientID: req.RecipientID,
		Content:     content,
		Visibility:  visibility,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	if s.hub != nil {
		_ = s.hub.SendToUser(req.RecipientID, WSEvent{Type: "message", Message: m})
	}
	return m, nil
}

func (s *Service) ListConversation(ctx context.Context, actor domain.Principal, otherID int64) ([]domain.Message, error) {
	if otherID <= 0 || otherID == actor.UserID {
		return nil, ErrValidation
	}
	return s.messages.ListConversation(ctx, actor.UserID, otherID)
}

// MarkRead flags every unread message from sender to the actor as read and
// returns the number flipped.
func (s *Service) MarkRead(ctx context.Context, actor domain.Principal, senderID int64) (int64, error) {
	if senderID <= 0 {
		return 0, ErrValidation
	}
	return s.messages.MarkRead(ctx, actor.UserID, senderID)
}

func (s *Service) UnreadCount(ctx context.Context, actor domain.Principal) (int64, error) {
	return s.messages.CountUnread(ctx, actor.UserID)
}
