package messaging

import (
	"context"

	"kbtassist/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error)
	MarkRead(ctx context.Context, recipientID, senderID int64) (int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
