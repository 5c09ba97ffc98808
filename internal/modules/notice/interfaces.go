package notice

import (
	"context"

	"kbtassist/internal/domain"
)

type NoticeRepository interface {
	Create(ctx context.Context, n *domain.Notice) error
	GetByID(ctx context.Context, id int64) (*domain.Notice, error)
	UpdateStatus(ctx context.Context, noticeID int64, status domain.NoticeStatus) error
	ListForUser(ctx context.Context, userID int64) ([]domain.Notice, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.Notice, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	TenantIDs(ctx context.Context, propertyID int64) ([]int64, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
