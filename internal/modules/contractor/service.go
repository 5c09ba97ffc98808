package contractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kbtassist/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	contractors ContractorRepository
	users       UserRepository
	jobs        JobReader
	mailer      Mailer
}

func NewService(contractors ContractorRepository, users UserRepository, jobs JobReader, mailer Mailer) *Service {
	return &Service{contractors: contractors, users: users, jobs: jobs, mailer: mailer}
}

// AddContractor creates a contractor account plus their marketplace profile.
// The account gets a random password; the contractor resets it from the
// welcome email.
func (s *Service) AddContractor(ctx context.Context, actor domain.Principal, req AddContractorRequest) (*domain.ContractorProfile, error) {
	if !domain.IsManagerRole(actor.Role) {
		return nil, ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleContractor,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &domain.ContractorProfile{
		UserID:    user.ID,
		Name:      req.Name,
		Email:     email,
		Phone:     req.Phone,
		Specialty: strings.ToLower(strings.TrimSpace(req.Specialty)),
		Location:  req.Location,
		AddedByID: actor.UserID,
	}
	if err := s.contractors.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		body := fmt.Sprintf("<p>Hi %s,</p><p>You have been added as a contractor. Reset your password to get started.</p>", req.Name)
		_ = s.mailer.Send(ctx, email, "Welcome aboard", body)
	}
	return profile, nil
}

// Marketplace lists contractor profiles, optionally filtered by specialty
// and location. Any authenticated user may browse.
func (s *Service) Marketplace(ctx context.Context, specialty, location string) ([]domain.ContractorProfile, error) {
	return s.contractors.Search(ctx, strings.ToLower(strings.TrimSpace(specialty)), strings.TrimSpace(location))
}

func (s *Service) GetProfile(ctx context.Context, profileID int64) (*domain.ContractorProfile, error) {
	p, err := s.contractors.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListMyContractors(ctx context.Context, actor domain.Principal) ([]domain.ContractorProfile, error) {
	if !domain.IsManagerRole(actor.Role) {
		return nil, ErrForbidden
	}
	return s.contractors.ListByAdder(ctx, actor.UserID)
}

// Invite opens an invitation to a contractor. At most one pending or accepted
// invitation may exist per inviter/contractor pair.
func (s *Service) Invite(ctx context.Context, actor domain.Principal, contractorUserID int64) (*domain.ContractorInvitation, error) {
	if !domain.IsManagerRole(actor.Role) {
		return nil, ErrForbidden
	}

	target, err := s.users.GetByID(ctx, contractorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if target.Role != domain.RoleContractor {
		return nil, ErrValidation
	}

	open, err := s.contractors.HasOpenInvitation(ctx, actor.UserID, contractorUserID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrAlreadyInvited
	}

	inv := &domain.ContractorInvitation{
		InviterID:    actor.UserID,
		ContractorID: contractorUserID,
		Status:       domain.InvitationPending,
	}
	if err := s.contractors.CreateInvitation(ctx, inv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyInvited
		}
		return nil, err
	}

	if s.mailer != nil {
		body := fmt.Sprintf("<p>Hi %s,</p><p>You have a new work invitation.</p>", target.Name)
		_ = s.mailer.Send(ctx, target.Email, "New invitation", body)
	}
	return inv, nil
}

// RespondToInvitation lets the invited contractor accept or decline. Only a
// pending invitation addressed to the actor can be answered.
func (s *Service) RespondToInvitation(ctx context.Context, actor domain.Principal, invitationID int64, accept bool) (*domain.ContractorInvitation, error) {
	inv, err := s.contractors.GetInvitation(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if inv.ContractorID != actor.UserID {
		return nil, ErrForbidden
	}
	if inv.Status != domain.InvitationPending {
		return nil, ErrValidation
	}

	status := domain.InvitationDeclined
	if accept {
		status = domain.InvitationAccepted
	}
	if err := s.contractors.UpdateInvitationStatus(ctx, invitationID, status); err != nil {
		return nil, err
	}
	inv.Status = status
	return inv, nil
}

func (s *Service) ListInvitations(ctx context.Context, actor domain.Principal) ([]domain.ContractorInvitation, error) {
	if actor.Role != domain.RoleContractor {
		return nil, ErrForbidden
	}
	return s.contractors.ListInvitationsForContractor(ctx, actor.UserID)
}

// ListJobsForContractor returns the maintenance jobs assigned to the actor.
func (s *Service) ListJobsForContractor(ctx context.Context, actor domain.Principal) ([]domain.MaintenanceJob, error) {
	if actor.Role != domain.RoleContractor {
		return nil, ErrForbidden
	}
	return s.jobs.ListByAssignee(ctx, actor.UserID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
