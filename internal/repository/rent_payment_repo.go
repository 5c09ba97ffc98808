package repository

import (
	"context"
	"errors"

	"kbtassist/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RentPaymentRepository struct {
	db *gorm.DB
}

func NewRentPaymentRepository(db *gorm.DB) *RentPaymentRepository {
	return &RentPaymentRepository{db: db}
}

// CreateIdempotent records the payment for an invoice and flips the invoice
// to paid, exactly once. Returns (false, nil) when the invoice was already
// settled, whether we lose the race at the row lock or at the unique index
// on invoice_id.
func (r *RentPaymentRepository) CreateIdempotent(ctx context.Context, p *domain.RentPayment) (bool, error) {
	recorded := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv invoiceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, p.InvoiceID).Error; err != nil {
			return err
		}
		if inv.Status == string(domain.InvoicePaid) {
			return nil
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if err := tx.Model(&invoiceModel{}).
			Where("id = ?", p.InvoiceID).
			Update("status", string(domain.InvoicePaid)).Error; err != nil {
			return err
		}
		recorded = true
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return recorded, nil
}

func (r *RentPaymentRepository) GetByInvoice(ctx context.Context, invoiceID int64) (*domain.RentPayment, error) {
	var p domain.RentPayment
	tx := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *RentPaymentRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.RentPayment, error) {
	var payments []domain.RentPayment
	tx := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC").
		Find(&payments)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return payments, nil
}

func (r *RentPaymentRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.RentPayment, error) {
	var payments []domain.RentPayment
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("payment_date DESC").
		Find(&payments)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return payments, nil
}

// isUniqueViolation matches postgres duplicate-key errors (SQLSTATE 23505)
// as well as gorm's portable sentinel, which the sqlite driver surfaces.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
