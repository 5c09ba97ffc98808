package property

import (
	"context"

	"kbtassist/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	ListForUser(ctx context.Context, userID int64) ([]domain.Property, error)
	AddTenant(ctx context.Context, propertyID, tenantID int64) error
	TenantIDs(ctx context.Context, propertyID int64) ([]int64, error)
	ListTenants(ctx context.Context, propertyID int64) ([]domain.User, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id int64) error
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.InventoryItem, error)
}
