package billing

import (
	"context"
	"time"

	"kbtassist/internal/domain"
	"kbtassist/internal/pkg/checkout"
)

type InvoiceRepository interface {
	Create(ctx context.Context, i *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, invoiceID int64, status domain.InvoiceStatus) error
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.Invoice, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Invoice, error)
}

type RentPaymentRepository interface {
	CreateIdempotent(ctx context.Context, p *domain.RentPayment) (bool, error)
	GetByInvoice(ctx context.Context, invoiceID int64) (*domain.RentPayment, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.RentPayment, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.RentPayment, error)
}

type CheckoutSessionRepository interface {
	Create(ctx context.Context, s *domain.CheckoutSession) error
	GetByReference(ctx context.Context, reference string) (*domain.CheckoutSession, error)
	MarkPaidIdempotent(ctx context.Context, reference string, paidAt time.Time) (bool, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	TenantIDs(ctx context.Context, propertyID int64) ([]int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Provider is the external checkout processor; see internal/pkg/checkout.
type Provider = checkout.Provider
