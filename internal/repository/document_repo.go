package repository

import (
	"context"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var d domain.Document
	tx := r.db.WithContext(ctx).First(&d, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &d, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DocumentRepository) ListByProperty(ctx context.Context, propertyID int64, complianceOnly bool) ([]domain.Document, error) {
	q := r.db.WithContext(ctx).Where("property_id = ?", propertyID)
	if complianceOnly {
		q = q.Where("compliance = ?", true)
	}

	var docs []domain.Document
	tx := q.Order("uploaded_at DESC").Find(&docs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return docs, nil
}

// ListForUser returns documents the user uploaded plus documents on
// properties the user manages or rents.
func (r *DocumentRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Document, error) {
	managed := r.db.Table("properties").Select("id").Where("added_by_id = ? OR landlord_id = ?", userID, userID)
	rented := r.db.Table("property_tenants").Select("property_id").Where("tenant_id = ?", userID)

	var docs []domain.Document
	tx := r.db.WithContext(ctx).
		Where("uploaded_by_id = ? OR property_id IN (?) OR property_id IN (?)", userID, managed, rented).
		Order("uploaded_at DESC").
		Find(&docs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return docs, nil
}
