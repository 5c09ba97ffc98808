package contractor

import (
	"context"
	"testing"

	"kbtassist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) CreateProfile(ctx context.Context, p *domain.ContractorProfile) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 700
	}
	return args.Error(0)
}

func (m *MockContractorRepository) GetProfile(ctx context.Context, id int64) (*domain.ContractorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractorProfile), args.Error(1)
}

func (m *MockContractorRepository) GetProfileByUser(ctx context.Context, userID int64) (*domain.ContractorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractorProfile), args.Error(1)
}

func (m *MockContractorRepository) Search(ctx context.Context, specialty, location string) ([]domain.ContractorProfile, error) {
	args := m.Called(ctx, specialty, location)
	return args.Get(0).([]domain.ContractorProfile), args.Error(1)
}

func (m *MockContractorRepository) ListByAdder(ctx context.Context, addedByID int64) ([]domain.ContractorProfile, error) {
	args := m.Called(ctx, addedByID)
	return args.Get(0).([]domain.ContractorProfile), args.Error(1)
}

func (m *MockContractorRepository) HasOpenInvitation(ctx context.Context, inviterID, contractorID int64) (bool, error) {
	args := m.Called(ctx, inviterID, contractorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractorRepository) CreateInvitation(ctx context.Context, inv *domain.ContractorInvitation) error {
	args := m.Called(ctx, inv)
	if inv != nil {
		inv.ID = 800
	}
	return args.Error(0)
}

func (m *MockContractorRepository) GetInvitation(ctx context.Context, id int64) (*domain.ContractorInvitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractorInvitation), args.Error(1)
}

func (m *MockContractorRepository) UpdateInvitationStatus(ctx context.Context, id int64, status domain.InvitationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockContractorRepository) ListInvitationsForContractor(ctx context.Context, contractorID int64) ([]domain.ContractorInvitation, error) {
	args := m.Called(ctx, contractorID)
	return args.Get(0).([]domain.ContractorInvitation), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 20
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockJobReader struct {
	mock.Mock
}

func (m *MockJobReader) ListByAssignee(ctx context.Context, contractorID int64) ([]domain.MaintenanceJob, error) {
	args := m.Called(ctx, contractorID)
	return args.Get(0).([]domain.MaintenanceJob), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func newTestService() (*Service, *MockContractorRepository, *MockUserRepository, *MockJobReader, *MockMailer) {
	contractors := new(MockContractorRepository)
	users := new(MockUserRepository)
	jobs := new(MockJobReader)
	mailer := new(MockMailer)
	return NewService(contractors, users, jobs, mailer), contractors, users, jobs, mailer
}

func TestService_AddContractor_CreatesAccountAndProfile(t *testing.T) {
	svc, contractors, users, _, mailer := newTestService()

	users.On("ExistsByEmail", mock.Anything, "bob@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleContractor && u.PasswordHash != ""
	})).Return(nil)
	contractors.On("CreateProfile", mock.Anything, mock.AnythingOfType("*domain.ContractorProfile")).Return(nil)
	mailer.On("Send", mock.Anything, "bob@example.com", mock.Anything, mock.Anything).Return(nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	profile, err := svc.AddContractor(context.Background(), agent, AddContractorRequest{
		Name:      "Bob",
		Email:     "Bob@Example.com",
		Specialty: "Plumbing",
		Location:  "Leeds",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(20), profile.UserID)
	assert.Equal(t, "plumbing", profile.Specialty)
	assert.Equal(t, int64(2), profile.AddedByID)
}

func TestService_AddContractor_TenantForbidden(t *testing.T) {
	svc, _, users, _, _ := newTestService()

	tenant := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	_, err := svc.AddContractor(context.Background(), tenant, AddContractorRequest{
		Name: "Bob", Email: "bob@example.com", Specialty: "plumbing",
	})

	assert.ErrorIs(t, err, ErrForbidden)
	users.AssertNotCalled(t, "Create")
}

func TestService_AddContractor_DuplicateEmail(t *testing.T) {
	svc, _, users, _, _ := newTestService()

	users.On("ExistsByEmail", mock.Anything, "bob@example.com").Return(true, nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.AddContractor(context.Background(), agent, AddContractorRequest{
		Name: "Bob", Email: "bob@example.com", Specialty: "plumbing",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestService_Invite_OneLiveInvitationPerPair(t *testing.T) {
	svc, contractors, users, _, mailer := newTestService()

	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{
		ID: 20, Name: "Bob", Email: "bob@example.com", Role: domain.RoleContractor,
	}, nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}

	contractors.On("HasOpenInvitation", mock.Anything, int64(2), int64(20)).Return(true, nil).Once()
	_, err := svc.Invite(context.Background(), agent, 20)
	assert.ErrorIs(t, err, ErrAlreadyInvited)

	contractors.On("HasOpenInvitation", mock.Anything, int64(2), int64(20)).Return(false, nil).Once()
	contractors.On("CreateInvitation", mock.Anything, mock.AnythingOfType("*domain.ContractorInvitation")).Return(nil)
	mailer.On("Send", mock.Anything, "bob@example.com", mock.Anything, mock.Anything).Return(nil)

	inv, err := svc.Invite(context.Background(), agent, 20)
	assert.NoError(t, err)
	assert.Equal(t, domain.InvitationPending, inv.Status)
}

func TestService_Invite_UniqueViolationMapsToAlreadyInvited(t *testing.T) {
	svc, contractors, users, _, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{
		ID: 20, Name: "Bob", Email: "bob@example.com", Role: domain.RoleContractor,
	}, nil)

	// A racing invite can slip past the pre-check; the live-invitation unique
	// index is the backstop and its violation reads as "already invited".
	contractors.On("HasOpenInvitation", mock.Anything, int64(2), int64(20)).Return(false, nil)
	contractors.On("CreateInvitation", mock.Anything, mock.AnythingOfType("*domain.ContractorInvitation")).
		Return(gorm.ErrDuplicatedKey)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.Invite(context.Background(), agent, 20)
	assert.ErrorIs(t, err, ErrAlreadyInvited)
}

func TestService_Invite_TargetMustBeContractor(t *testing.T) {
	svc, contractors, users, _, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleTenant}, nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.Invite(context.Background(), agent, 7)

	assert.ErrorIs(t, err, ErrValidation)
	contractors.AssertNotCalled(t, "CreateInvitation")
}

func TestService_RespondToInvitation(t *testing.T) {
	svc, contractors, _, _, _ := newTestService()

	contractors.On("GetInvitation", mock.Anything, int64(800)).Return(&domain.ContractorInvitation{
		ID: 800, InviterID: 2, ContractorID: 20, Status: domain.InvitationPending,
	}, nil)

	stranger := domain.Principal{UserID: 21, Role: domain.RoleContractor}
	_, err := svc.RespondToInvitation(context.Background(), stranger, 800, true)
	assert.ErrorIs(t, err, ErrForbidden)

	contractors.On("UpdateInvitationStatus", mock.Anything, int64(800), domain.InvitationAccepted).Return(nil)

	invited := domain.Principal{UserID: 20, Role: domain.RoleContractor}
	inv, err := svc.RespondToInvitation(context.Background(), invited, 800, true)
	assert.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, inv.Status)
}

func TestService_RespondToInvitation_AlreadyAnswered(t *testing.T) {
	svc, contractors, _, _, _ := newTestService()

	contractors.On("GetInvitation", mock.Anything, int64(800)).Return(&domain.ContractorInvitation{
		ID: 800, InviterID: 2, ContractorID: 20, Status: domain.InvitationDeclined,
	}, nil)

	invited := domain.Principal{UserID: 20, Role: domain.RoleContractor}
	_, err := svc.RespondToInvitation(context.Background(), invited, 800, true)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ListJobsForContractor(t *testing.T) {
	svc, _, _, jobs, _ := newTestService()

	jobs.On("ListByAssignee", mock.Anything, int64(20)).Return([]domain.MaintenanceJob{
		{ID: 1, Status: domain.JobPendingQuote},
	}, nil)

	contractorP := domain.Principal{UserID: 20, Role: domain.RoleContractor}
	list, err := svc.ListJobsForContractor(context.Background(), contractorP)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err = svc.ListJobsForContractor(context.Background(), agent)
	assert.ErrorIs(t, err, ErrForbidden)
}
