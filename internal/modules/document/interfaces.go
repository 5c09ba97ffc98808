package document

import (
	"context"
	"io"

	"kbtassist/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	Delete(ctx context.Context, id int64) error
	ListByProperty(ctx context.Context, propertyID int64, complianceOnly bool) ([]domain.Document, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Document, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	TenantIDs(ctx context.Context, propertyID int64) ([]int64, error)
}

// BlobStore abstracts where file bytes live; see internal/pkg/blob.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}
