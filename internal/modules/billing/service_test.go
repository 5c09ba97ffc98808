package billing

import (
	"context"
	"testing"
	"time"

	"kbtassist/internal/domain"
	"kbtassist/internal/pkg/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, i *domain.Invoice) error {
	args := m.Called(ctx, i)
	if i != nil {
		i.ID = 500
	}
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, invoiceID int64, status domain.InvoiceStatus) error {
	args := m.Called(ctx, invoiceID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

type MockRentPaymentRepository struct {
	mock.Mock
}

func (m *MockRentPaymentRepository) CreateIdempotent(ctx context.Context, p *domain.RentPayment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentPaymentRepository) GetByInvoice(ctx context.Context, invoiceID int64) (*domain.RentPayment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.RentPayment, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.RentPayment, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.RentPayment), args.Error(1)
}

type MockCheckoutSessionRepository struct {
	mock.Mock
}

func (m *MockCheckoutSessionRepository) Create(ctx context.Context, s *domain.CheckoutSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockCheckoutSessionRepository) GetByReference(ctx context.Context, reference string) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutSessionRepository) MarkPaidIdempotent(ctx context.Context, reference string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, reference, paidAt)
	return args.Bool(0), args.Error(1)
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

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context, item checkout.LineItem, successURL, cancelURL string, metadata map[string]string) (*checkout.Session, error) {
	args := m.Called(ctx, item, successURL, cancelURL, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockProvider) RetrieveSession(ctx context.Context, id string) (*checkout.SessionStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.SessionStatus), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

type billingMocks struct {
	invoices *MockInvoiceRepository
	payments *MockRentPaymentRepository
	sessions *MockCheckoutSessionRepository
	props    *MockPropertyReader
	users    *MockUserReader
	provider *MockProvider
	mailer   *MockMailer
}

func newTestService() (*Service, billingMocks) {
	m := billingMocks{
		invoices: new(MockInvoiceRepository),
		payments: new(MockRentPaymentRepository),
		sessions: new(MockCheckoutSessionRepository),
		props:    new(MockPropertyReader),
		users:    new(MockUserReader),
		provider: new(MockProvider),
		mailer:   new(MockMailer),
	}
	svc := NewService(m.invoices, m.payments, m.sessions, m.props, m.users, m.provider, m.mailer, "http://app.local")
	return svc, m
}

func TestService_CreateInvoice_SendsReminder(t *testing.T) {
	svc, m := newTestService()

	m.props.On("GetByID", mock.Anything, int64(10)).Return(&domain.Property{ID: 10, AddedByID: 2, Address: "12 Elm Road"}, nil)
	m.props.On("TenantIDs", mock.Anything, int64(10)).Return([]int64{7}, nil)
	m.invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Name: "Tina", Email: "t@example.com"}, nil)
	m.mailer.On("Send", mock.Anything, "t@example.com", mock.Anything, mock.Anything).Return(nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	inv, err := svc.CreateInvoice(context.Background(), agent, CreateInvoiceRequest{
		PropertyID: 10,
		TenantID:   7,
		Amount:     950,
		DueDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.InvoicePending, inv.Status)
	m.mailer.AssertExpectations(t)
}

func TestService_CreateInvoice_RejectsNonPositiveAmount(t *testing.T) {
	svc, m := newTestService()

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.CreateInvoice(context.Background(), agent, CreateInvoiceRequest{
		PropertyID: 10, TenantID: 7, Amount: 0,
	})

	assert.ErrorIs(t, err, ErrValidation)
	m.invoices.AssertNotCalled(t, "Create")
}

func TestService_CreateInvoice_RejectsNonTenantOfProperty(t *testing.T) {
	svc, m := newTestService()

	m.props.On("GetByID", mock.Anything, int64(10)).Return(&domain.Property{ID: 10, AddedByID: 2}, nil)
	m.props.On("TenantIDs", mock.Anything, int64(10)).Return([]int64{7}, nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.CreateInvoice(context.Background(), agent, CreateInvoiceRequest{
		PropertyID: 10, TenantID: 99, Amount: 950,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_InitiateCheckout_TenantOnly(t *testing.T) {
	svc, m := newTestService()

	m.invoices.On("GetByID", mock.Anything, int64(500)).Return(&domain.Invoice{
		ID: 500, PropertyID: 10, TenantID: 7, Amount: 950, Status: domain.InvoicePending,
	}, nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	_, err := svc.InitiateCheckout(context.Background(), agent, 500)
	assert.ErrorIs(t, err, ErrForbidden)

	otherTenant := domain.Principal{UserID: 8, Role: domain.RoleTenant}
	_, err = svc.InitiateCheckout(context.Background(), otherTenant, 500)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_InitiateCheckout_AlreadyPaid(t *testing.T) {
	svc, m := newTestService()

	m.invoices.On("GetByID", mock.Anything, int64(500)).Return(&domain.Invoice{
		ID: 500, TenantID: 7, Status: domain.InvoicePaid,
	}, nil)

	tenant := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	_, err := svc.InitiateCheckout(context.Background(), tenant, 500)

	assert.ErrorIs(t, err, ErrAlreadyPaid)
	m.provider.AssertNotCalled(t, "CreateSession")
}

func TestService_InitiateCheckout_PersistsSession(t *testing.T) {
	svc, m := newTestService()

	m.invoices.On("GetByID", mock.Anything, int64(500)).Return(&domain.Invoice{
		ID: 500, PropertyID: 10, TenantID: 7, Amount: 950, Status: domain.InvoicePending,
	}, nil)
	m.provider.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&checkout.Session{ID: "cs_123", URL: "https://pay.example/cs_123"}, nil)
	m.sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.CheckoutSession) bool {
		return s.InvoiceID == 500 && s.ProviderID == "cs_123" && s.Status == domain.CheckoutCreated
	})).Return(nil)

	tenant := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	res, err := svc.InitiateCheckout(context.Background(), tenant, 500)

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
	assert.Equal(t, "https://pay.example/cs_123", res.RedirectURL)
	m.sessions.AssertExpectations(t)
}

func TestService_ConfirmPayment_FirstDeliveryRecords(t *testing.T) {
	svc, m := newTestService()

	m.sessions.On("GetByReference", mock.Anything, "ref-1").Return(&domain.CheckoutSession{
		Reference: "ref-1", InvoiceID: 500, TenantID: 7, ProviderID: "cs_123", Status: domain.CheckoutCreated,
	}, nil)
	m.provider.On("RetrieveSession", mock.Anything, "cs_123").Return(&checkout.SessionStatus{
		ID: "cs_123", PaymentStatus: "paid", AmountTotal: 950, PaymentMethod: "card",
	}, nil)
	m.invoices.On("GetByID", mock.Anything, int64(500)).Return(&domain.Invoice{
		ID: 500, PropertyID: 10, TenantID: 7, Amount: 950, Status: domain.InvoicePending,
	}, nil)
	m.payments.On("CreateIdempotent", mock.Anything, mock.AnythingOfType("*domain.RentPayment")).Return(true, nil)
	m.sessions.On("MarkPaidIdempotent", mock.Anything, "ref-1", mock.AnythingOfType("time.Time")).Return(true, nil)

	res, err := svc.ConfirmPayment(context.Background(), "ref-1")

	assert.NoError(t, err)
	assert.False(t, res.AlreadyPaid)
	assert.Equal(t, string(domain.InvoicePaid), res.Status)
}

// A replayed confirmation callback must succeed without writing a second
// payment row.
func TestService_ConfirmPayment_RedeliveryIsNoop(t *testing.T) {
	svc, m := newTestService()

	m.sessions.On("GetByReference", mock.Anything, "ref-1").Return(&domain.CheckoutSession{
		Reference: "ref-1", InvoiceID: 500, TenantID: 7, ProviderID: "cs_123", Status: domain.CheckoutPaid,
	}, nil)
	m.provider.On("RetrieveSession", mock.Anything, "cs_123").Return(&checkout.SessionStatus{
		ID: "cs_123", PaymentStatus: "paid", AmountTotal: 950,
	}, nil)
	m.invoices.On("GetByID", mock.Anything, int64(500)).Return(&domain.Invoice{
		ID: 500, PropertyID: 10, TenantID: 7, Status: domain.InvoicePaid,
	}, nil)
	m.payments.On("CreateIdempotent", mock.Anything, mock.AnythingOfType("*domain.RentPayment")).Return(false, nil)
	m.sessions.On("MarkPaidIdempotent", mock.Anything, "ref-1", mock.AnythingOfType("time.Time")).Return(false, nil)

	res, err := svc.ConfirmPayment(context.Background(), "ref-1")

	assert.NoError(t, err)
	assert.True(t, res.AlreadyPaid)
	m.payments.AssertNumberOfCalls(t, "CreateIdempotent", 1)
}

func TestService_ConfirmPayment_UnpaidSession(t *testing.T) {
	svc, m := newTestService()

	m.sessions.On("GetByReference", mock.Anything, "ref-2").Return(&domain.CheckoutSession{
		Reference: "ref-2", InvoiceID: 500, ProviderID: "cs_456", Status: domain.CheckoutCreated,
	}, nil)
	m.provider.On("RetrieveSession", mock.Anything, "cs_456").Return(&checkout.SessionStatus{
		ID: "cs_456", PaymentStatus: "unpaid",
	}, nil)

	_, err := svc.ConfirmPayment(context.Background(), "ref-2")

	assert.ErrorIs(t, err, ErrNotPaid)
	m.payments.AssertNotCalled(t, "CreateIdempotent")
}

func TestService_ConfirmPayment_UnknownReference(t *testing.T) {
	svc, m := newTestService()

	m.sessions.On("GetByReference", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ConfirmPayment(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_MarkAsPaid_ManagerOverride(t *testing.T) {
	svc, m := newTestService()

	m.invoices.On("GetByID", mock.Anything, int64(500)).Return(&domain.Invoice{
		ID: 500, PropertyID: 10, TenantID: 7, Amount: 950, Status: domain.InvoicePending,
	}, nil)
	m.props.On("GetByID", mock.Anything, int64(10)).Return(&domain.Property{ID: 10, AddedByID: 2}, nil)

	tenant := domain.Principal{UserID: 7, Role: domain.RoleTenant}
	_, err := svc.MarkAsPaid(context.Background(), tenant, 500, "bank_transfer")
	assert.ErrorIs(t, err, ErrForbidden)

	m.payments.On("CreateIdempotent", mock.Anything, mock.MatchedBy(func(p *domain.RentPayment) bool {
		return p.InvoiceID == 500 && p.PaymentMethod == "bank_transfer"
	})).Return(true, nil)

	agent := domain.Principal{UserID: 2, Role: domain.RoleAgent}
	res, err := svc.MarkAsPaid(context.Background(), agent, 500, "bank_transfer")
	assert.NoError(t, err)
	assert.False(t, res.AlreadyPaid)
}
