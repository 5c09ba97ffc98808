package contractor

import (
	"context"

	"kbtassist/internal/domain"
)

type ContractorRepository interface {
	CreateProfile(ctx context.Context, p *domain.ContractorProfile) error
	GetProfile(ctx context.Context, id int64) (*domain.ContractorProfile, error)
	GetProfileByUser(ctx context.Context, userID int64) (*domain.ContractorProfile, error)
	Search(ctx context.Context, specialty, location string) ([]domain.ContractorProfile, error)
	ListByAdder(ctx context.Context, addedByID int64) ([]domain.ContractorProfile, error)
	HasOpenInvitation(ctx context.Context, inviterID, contractorID int64) (bool, error)
	CreateInvitation(ctx context.Context, inv *domain.ContractorInvitation) error
	GetInvitation(ctx context.Context, id int64) (*domain.ContractorInvitation, error)
	UpdateInvitationStatus(ctx context.Context, id int64, status domain.InvitationStatus) error
	ListInvitationsForContractor(ctx context.Context, contractorID int64) ([]domain.ContractorInvitation, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type JobReader interface {
	ListByAssignee(ctx context.Context, contractorID int64) ([]domain.MaintenanceJob, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
