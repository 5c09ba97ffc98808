package notice

import (
	"context"
	"testing"

	"kbtassist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNoticeRepository struct {
	mock.Mock
}

func (m *MockNoticeRepository) Create(ctx context.Context, n *domain.Notice) error {
	args := m.Called(ctx, n)
	if n != nil {
		n.ID = 600
	}
	return args.Error(0)
}

func (m *MockNoticeRepository) GetByID(ctx context.Context, id int64) (*domain.Notice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *MockNoticeRepository) UpdateStatus(ctx context.Context, noticeID int64, status domain.NoticeStatus) error {
	args := m.Called(ctx, noticeID, status)
	return args.Error(0)
}

func (m *MockNoticeRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Notice, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notice), args.Error(1)
}

func (m *MockNoticeRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Notice, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Notice), args.Error(1)
}

type MockPropertyReader struct {
	mock.Mock
}

func (m *MockPropertyReader) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyReader) TenantIDs(ctx context.Context, propertyID int64) ([]int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]int64), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func newTestService() (*Service, *MockNoticeRepository, *MockPropertyReader, *MockUserReader, *MockMailer) {
	notices := new(MockNoticeRepository)
	props := new(MockPropertyReader)
	users := new(MockUserReader)
	mailer := new(MockMailer)
	return NewService(notices, props, users, mailer), notices, props, users, mailer
}

func fixtureProperty(props *MockPropertyReader) {
	props.On("GetByID", mock.Anything, int64(10)).Return(&domain.Property{ID: 10, AddedByID: 2, LandlordID: 3}, nil)
	props.On("TenantIDs", mock.Anything, int64(10)).Return([]int64{7}, nil)
}

func TestService_CreateNotice_StartsSent(t *testing.T) {
	svc, notices, props, users, mailer := newTestService()
	fixtureProperty(props)

	notices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notice")).Return(nil)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Name: "Tina", Email: "t@example.com"}, nil)
	mailer.On("Send", mock.Anything, "t@example.com", mock.Anything, mock.Anything).Return(nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	n, err := svc.CreateNotice(context.Background(), agent, CreateNoticeRequest{
		PropertyID: 10,
		IssuedToID: 7,
		Title:      "Inspection due",
		Content:    "Annual gas safety inspection on the 14th.",
		NoticeType: "inspection",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.NoticeSent, n.Status)
	assert.Equal(t, int64(2), n.IssuedByID)
	mailer.AssertExpectations(t)
}

func TestService_CreateNotice_RecipientOutsideCircle(t *testing.T) {
	svc, notices, props, _, _ := newTestService()
	fixtureProperty(props)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.CreateNotice(context.Background(), agent, CreateNoticeRequest{
		PropertyID: 10,
		IssuedToID: 99,
		Title:      "Hello",
		Content:    "...",
	})

	assert.ErrorIs(t, err, ErrValidation)
	notices.AssertNotCalled(t, "Create")
}

func TestService_CreateNotice_TenantForbidden(t *testing.T) {
	svc, _, props, _, _ := newTestService()
	fixtureProperty(props)

	tenant := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	_, err := svc.CreateNotice(context.Background(), tenant, CreateNoticeRequest{
		PropertyID: 10,
		IssuedToID: 3,
		Title:      "Complaint",
		Content:    "...",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateStatus_FollowsTable(t *testing.T) {
	svc, notices, props, _, _ := newTestService()
	fixtureProperty(props)

	notices.On("GetByID", mock.Anything, int64(600)).Return(&domain.Notice{
		ID: 600, PropertyID: 10, IssuedByID: 2, IssuedToID: 7, Status: domain.NoticeSent,
	}, nil)

	recipient := domain.Principal{UserID: 7, Role: domain.RoleTenant}

	_, err := svc.UpdateStatus(context.Background(), recipient, 600, domain.NoticeResolved)
	assert.ErrorIs(t, err, ErrInvalidTransition, "sent cannot jump to resolved")

	notices.On("UpdateStatus", mock.Anything, int64(600), domain.NoticeDelivered).Return(nil)
	n, err := svc.UpdateStatus(context.Background(), recipient, 600, domain.NoticeDelivered)
	assert.NoError(t, err)
	assert.Equal(t, domain.NoticeDelivered, n.Status)
}

func TestService_UpdateStatus_StrangerForbidden(t *testing.T) {
	svc, notices, props, _, _ := newTestService()
	fixtureProperty(props)

	notices.On("GetByID", mock.Anything, int64(600)).Return(&domain.Notice{
		ID: 600, PropertyID: 10, IssuedByID: 2, IssuedToID: 7, Status: domain.NoticeSent,
	}, nil)

	stranger := domain.Principal{UserID: 99, Role: domain.RoleTenant}
	_, err := svc.UpdateStatus(context.Background(), stranger, 600, domain.NoticeDelivered)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateStatus_ResolvedIsTerminal(t *testing.T) {
	svc, notices, props, _, _ := newTestService()
	fixtureProperty(props)

	notices.On("GetByID", mock.Anything, int64(600)).Return(&domain.Notice{
		ID: 600, PropertyID: 10, IssuedByID: 2, IssuedToID: 7, Status: domain.NoticeResolved,
	}, nil)

	recipient := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	_, err := svc.UpdateStatus(context.Background(), recipient, 600, domain.NoticeViewed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	notices.AssertNotCalled(t, "UpdateStatus")
}
