package repository

import (
	"context"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	tx := r.db.WithContext(ctx).First(&item, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	res := r.db.WithContext(ctx).Model(&domain.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":     item.Name,
			"quantity": item.Quantity,
			"unit":     item.Unit,
			"location": item.Location,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.InventoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InventoryRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&items)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return items, nil
}
