package repository

import (
	"context"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type ContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

func (r *ContractorRepository) CreateProfile(ctx context.Context, p *domain.ContractorProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ContractorRepository) GetProfileByUser(ctx context.Context, userID int64) (*domain.ContractorProfile, error) {
	var p domain.ContractorProfile
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ContractorRepository) GetProfile(ctx context.Context, id int64) (*domain.ContractorProfile, error) {
	var p domain.ContractorProfile
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// Search filters the contractor marketplace. Empty filters match everything;
// specialty matches exactly, location with a case-insensitive prefix.
func (r *ContractorRepository) Search(ctx context.Context, specialty, location string) ([]domain.ContractorProfile, error) {
	q := r.db.WithContext(ctx).Model(&domain.ContractorProfile{})
	if specialty != "" {
		q = q.Where("specialty = ?", specialty)
	}
	if location != "" {
		q = q.Where("LOWER(location) LIKE LOWER(?)", location+"%")
	}

	var profiles []domain.ContractorProfile
	tx := q.Order("name ASC").Find(&profiles)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return profiles, nil
}

func (r *ContractorRepository) ListByAdder(ctx context.Context, addedByID int64) ([]domain.ContractorProfile, error) {
	var profiles []domain.ContractorProfile
	tx := r.db.WithContext(ctx).
		Where("added_by_id = ?", addedByID).
		Order("name ASC").
		Find(&profiles)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return profiles, nil
}

// HasOpenInvitation reports whether a pending or accepted invitation already
// exists for the inviter/contractor pair.
func (r *ContractorRepository) HasOpenInvitation(ctx context.Context, inviterID, contractorID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.ContractorInvitation{}).
		Where("inviter_id = ? AND contractor_id = ? AND status IN ?",
			inviterID, contractorID,
			[]string{string(domain.InvitationPending), string(domain.InvitationAccepted)}).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *ContractorRepository) CreateInvitation(ctx context.Context, inv *domain.ContractorInvitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *ContractorRepository) GetInvitation(ctx context.Context, id int64) (*domain.ContractorInvitation, error) {
	var inv domain.ContractorInvitation
	tx := r.db.WithContext(ctx).First(&inv, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &inv, nil
}

func (r *ContractorRepository) UpdateInvitationStatus(ctx context.Context, id int64, status domain.InvitationStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.ContractorInvitation{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractorRepository) ListInvitationsForContractor(ctx context.Context, contractorID int64) ([]domain.ContractorInvitation, error) {
	var invs []domain.ContractorInvitation
	tx := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&invs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return invs, nil
}
