package repository

import (
	"context"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name"`
	Address    string    `gorm:"column:address"`
	Postcode   string    `gorm:"column:postcode"`
	RentAmount float64   `gorm:"column:rent_amount"`
	Bedrooms   int       `gorm:"column:bedrooms"`
	Bathrooms  int       `gorm:"column:bathrooms"`
	LandlordID int64     `gorm:"column:landlord_id;index"`
	AddedByID  int64     `gorm:"column:added_by_id;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	return &domain.Property{
		ID:         m.ID,
		Name:       m.Name,
		Address:    m.Address,
		Postcode:   m.Postcode,
		RentAmount: m.RentAmount,
		Bedrooms:   m.Bedrooms,
		Bathrooms:  m.Bathrooms,
		LandlordID: m.LandlordID,
		AddedByID:  m.AddedByID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	return propertyModel{
		ID:         p.ID,
		Name:       p.Name,
		Address:    p.Address,
		Postcode:   p.Postcode,
		RentAmount: p.RentAmount,
		Bedrooms:   p.Bedrooms,
		Bathrooms:  p.Bathrooms,
		LandlordID: p.LandlordID,
		AddedByID:  p.AddedByID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Model(&propertyModel{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"address":     p.Address,
		"postcode":    p.Postcode,
		"rent_amount": p.RentAmount,
		"bedrooms":    p.Bedrooms,
		"bathrooms":   p.Bathrooms,
	}).Error
}

// ListForUser returns properties the user added, owns as landlord, or lives at.
func (r *PropertyRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Property, error) {
	var models []propertyModel
	tenancy := r.db.Table("property_tenants").Select("property_id").Where("tenant_id = ?", userID)
	tx := r.db.WithContext(ctx).
		Where("added_by_id = ? OR landlord_id = ? OR id IN (?)", userID, userID, tenancy).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Property, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

func (r *PropertyRepository) AddTenant(ctx context.Context, propertyID, tenantID int64) error {
	return r.db.WithContext(ctx).Create(&domain.PropertyTenant{
		PropertyID: propertyID,
		TenantID:   tenantID,
	}).Error
}

// TenantIDs returns the ids of the property's current tenants. Used by the
// access predicates; returns an empty slice, never nil on success.
func (r *PropertyRepository) TenantIDs(ctx context.Context, propertyID int64) ([]int64, error) {
	ids := make([]int64, 0)
	tx := r.db.WithContext(ctx).
		Table("property_tenants").
		Where("property_id = ?", propertyID).
		Pluck("tenant_id", &ids)
	return ids, tx.Error
}

func (r *PropertyRepository) ListTenants(ctx context.Context, propertyID int64) ([]domain.User, error) {
	var models []userModel
	tx := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN property_tenants pt ON pt.tenant_id = users.id").
		Where("pt.property_id = ?", propertyID).
		Scan(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		u := toDomainUser(m)
		u.PasswordHash = ""
		out = append(out, *u)
	}
	return out, nil
}
