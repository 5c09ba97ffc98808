package repository

import (
	"context"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type invoiceModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	PropertyID  int64     `gorm:"column:property_id;index"`
	TenantID    int64     `gorm:"column:tenant_id;index"`
	Amount      float64   `gorm:"column:amount"`
	DueDate     time.Time `gorm:"column:due_date"`
	Description *string   `gorm:"column:description"`
	Status      string    `gorm:"column:status;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (invoiceModel) TableName() string { return "invoices" }

func toDomainInvoice(m invoiceModel) *domain.Invoice {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Invoice{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		TenantID:    m.TenantID,
		Amount:      m.Amount,
		DueDate:     m.DueDate,
		Description: desc,
		Status:      domain.InvoiceStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toInvoiceModel(i *domain.Invoice) invoiceModel {
	var desc *string
	if i.Description != "" {
		v := i.Description
		desc = &v
	}
	return invoiceModel{
		ID:          i.ID,
		PropertyID:  i.PropertyID,
		TenantID:    i.TenantID,
		Amount:      i.Amount,
		DueDate:     i.DueDate,
		Description: desc,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, i *domain.Invoice) error {
	m := toInvoiceModel(i)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*i = *toDomainInvoice(m)
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var m invoiceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainInvoice(m), nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, invoiceID int64, status domain.InvoiceStatus) error {
	res := r.db.WithContext(ctx).Model(&invoiceModel{}).Where("id = ?", invoiceID).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InvoiceRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Invoice, error) {
	var models []invoiceModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("due_date DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainInvoices(models), nil
}

func (r *InvoiceRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	managed := r.db.Table("properties").Select("id").Where("added_by_id = ? OR landlord_id = ?", userID, userID)

	var models []invoiceModel
	tx := r.db.WithContext(ctx).
		Where("tenant_id = ? OR property_id IN (?)", userID, managed).
		Order("due_date DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainInvoices(models), nil
}

func toDomainInvoices(models []invoiceModel) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainInvoice(m))
	}
	return out
}
