package repository

import (
	"context"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

type noticeModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	PropertyID    int64     `gorm:"column:property_id;index"`
	IssuedByID    int64     `gorm:"column:issued_by_id;index"`
	IssuedToID    int64     `gorm:"column:issued_to_id;index"`
	Title         string    `gorm:"column:title"`
	Content       string    `gorm:"column:content;type:text"`
	NoticeType    string    `gorm:"column:notice_type;type:varchar(40)"`
	IssuedDate    time.Time `gorm:"column:issued_date"`
	EffectiveDate time.Time `gorm:"column:effective_date"`
	Status        string    `gorm:"column:status;type:varchar(20);index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (noticeModel) TableName() string { return "notices" }

func toDomainNotice(m noticeModel) *domain.Notice {
	return &domain.Notice{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		IssuedByID:    m.IssuedByID,
		IssuedToID:    m.IssuedToID,
		Title:         m.Title,
		Content:       m.Content,
		NoticeType:    m.NoticeType,
		IssuedDate:    m.IssuedDate,
		EffectiveDate: m.EffectiveDate,
		Status:        domain.NoticeStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toNoticeModel(n *domain.Notice) noticeModel {
	return noticeModel{
		ID:            n.ID,
		PropertyID:    n.PropertyID,
		IssuedByID:    n.IssuedByID,
		IssuedToID:    n.IssuedToID,
		Title:         n.Title,
		Content:       n.Content,
		NoticeType:    n.NoticeType,
		IssuedDate:    n.IssuedDate,
		EffectiveDate: n.EffectiveDate,
		Status:        string(n.Status),
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func (r *NoticeRepository) Create(ctx context.Context, n *domain.Notice) error {
	m := toNoticeModel(n)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = *toDomainNotice(m)
	return nil
}

func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*domain.Notice, error) {
	var m noticeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainNotice(m), nil
}

func (r *NoticeRepository) UpdateStatus(ctx context.Context, noticeID int64, status domain.NoticeStatus) error {
	res := r.db.WithContext(ctx).Model(&noticeModel{}).
		Where("id = ?", noticeID).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns notices the user issued, received, or that belong to
// a property the user manages or rents.
func (r *NoticeRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Notice, error) {
	managed := r.db.Table("properties").Select("id").Where("added_by_id = ? OR landlord_id = ?", userID, userID)
	rented := r.db.Table("property_tenants").Select("property_id").Where("tenant_id = ?", userID)

	var models []noticeModel
	tx := r.db.WithContext(ctx).
		Where("issued_by_id = ? OR issued_to_id = ? OR property_id IN (?) OR property_id IN (?)", userID, userID, managed, rented).
		Order("issued_date DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	notices := make([]domain.Notice, 0, len(models))
	for _, m := range models {
		notices = append(notices, *toDomainNotice(m))
	}
	return notices, nil
}

func (r *NoticeRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Notice, error) {
	var models []noticeModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("issued_date DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	notices := make([]domain.Notice, 0, len(models))
	for _, m := range models {
		notices = append(notices, *toDomainNotice(m))
	}
	return notices, nil
}
