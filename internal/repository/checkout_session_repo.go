package repository

import (
	"context"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutSessionRepository struct {
	db *gorm.DB
}

func NewCheckoutSessionRepository(db *gorm.DB) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{db: db}
}

func (r *CheckoutSessionRepository) Create(ctx context.Context, s *domain.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CheckoutSessionRepository) GetByReference(ctx context.Context, reference string) (*domain.CheckoutSession, error) {
	var s domain.CheckoutSession
	tx := r.db.WithContext(ctx).Where("reference = ?", reference).First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *CheckoutSessionRepository) GetByInvoice(ctx context.Context, invoiceID int64) (*domain.CheckoutSession, error) {
	var s domain.CheckoutSession
	tx := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC").
		First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

// MarkPaidIdempotent flips a session from created to paid under a row lock.
// Returns (false, nil) when the session was already paid, so a replayed
// confirmation callback is a no-op.
func (r *CheckoutSessionRepository) MarkPaidIdempotent(ctx context.Context, reference string, paidAt time.Time) (bool, error) {
	flipped := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.CheckoutSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).
			First(&s).Error; err != nil {
			return err
		}
		if s.Status == domain.CheckoutPaid {
			return nil
		}
		if err := tx.Model(&domain.CheckoutSession{}).
			Where("id = ?", s.ID).
			Updates(map[string]any{
				"status":  string(domain.CheckoutPaid),
				"paid_at": paidAt,
			}).Error; err != nil {
			return err
		}
		flipped = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return flipped, nil
}

func (r *CheckoutSessionRepository) MarkExpired(ctx context.Context, reference string) error {
	res := r.db.WithContext(ctx).Model(&domain.CheckoutSession{}).
		Where("reference = ? AND status = ?", reference, string(domain.CheckoutCreated)).
		Update("status", string(domain.CheckoutExpired))
	return res.Error
}
