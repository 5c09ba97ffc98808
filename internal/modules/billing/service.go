package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"kbtassist/internal/domain"
	"kbtassist/internal/pkg/checkout"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	invoices   InvoiceRepository
	payments   RentPaymentRepository
	sessions   CheckoutSessionRepository
	properties PropertyReader
	users      UserReader
	provider   Provider
	mailer     Mailer
	baseURL    string
}

func NewService(
	invoices InvoiceRepository,
	payments RentPaymentRepository,
	sessions CheckoutSessionRepository,
	properties PropertyReader,
	users UserReader,
	provider Provider,
	mailer Mailer,
	baseURL string,
) *Service {
	return &Service{
		invoices:   invoices,
		payments:   payments,
		sessions:   sessions,
		properties: properties,
		users:      users,
		provider:   provider,
		mailer:     mailer,
		baseURL:    baseURL,
	}
}

// CreateInvoice raises a pending invoice against a tenant. Only a manager of
// the property may do it; the tenant gets an email reminder.
func (s *Service) CreateInvoice(ctx context.Context, actor domain.Principal, req CreateInvoiceRequest) (*domain.Invoice, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}

	property, tenantIDs, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProperty(actor, property) {
		return nil, ErrForbidden
	}

	isTenant := false
	for _, id := range tenantIDs {
		if id == req.TenantID {
			isTenant = true
			break
		}
	}
	if !isTenant {
		return nil, ErrValidation
	}

	inv := &domain.Invoice{
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Description: req.Description,
		Status:      domain.InvoicePending,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if tenant, err := s.users.GetByID(ctx, req.TenantID); err == nil {
			subject := fmt.Sprintf("Rent invoice for %s", property.Address)
			body := fmt.Sprintf(
				"<p>Hi %s,</p><p>A rent invoice of %.2f is due on %s.</p>",
				tenant.Name, inv.Amount, inv.DueDate.Format("2 January 2006"),
			)
			_ = s.mailer.Send(ctx, tenant.Email, subject, body)
		}
	}
	return inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, actor domain.Principal, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.checkInvoiceAccess(ctx, actor, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) ListInvoices(ctx context.Context, actor domain.Principal) ([]domain.Invoice, error) {
	return s.invoices.ListForUser(ctx, actor.UserID)
}

// InitiateCheckout opens an external payment session for a pending invoice.
// Only the invoiced tenant may start one.
func (s *Service) InitiateCheckout(ctx context.Context, actor domain.Principal, invoiceID int64) (*CheckoutResponse, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.Role != domain.RoleTenant || actor.UserID != inv.TenantID {
		return nil, ErrForbidden
	}
	if inv.Status == domain.InvoicePaid {
		return nil, ErrAlreadyPaid
	}

	reference := uuid.NewString()
	item := checkout.LineItem{
		Name:        "Rent payment",
		Description: inv.Description,
		Amount:      inv.Amount,
		Currency:    "gbp",
	}
	metadata := map[string]string{
		"invoice_id": strconv.FormatInt(inv.ID, 10),
		"tenant_id":  strconv.FormatInt(inv.TenantID, 10),
		"reference":  reference,
	}
	successURL := fmt.Sprintf("%s/payments/success?reference=%s", s.baseURL, reference)
	cancelURL := fmt.Sprintf("%s/payments/cancelled?reference=%s", s.baseURL, reference)

	session, err := s.provider.CreateSession(ctx, item, successURL, cancelURL, metadata)
	if err != nil {
		return nil, ErrExternalService
	}

	record := &domain.CheckoutSession{
		Reference:   reference,
		InvoiceID:   inv.ID,
		TenantID:    inv.TenantID,
		Amount:      inv.Amount,
		ProviderID:  session.ID,
		RedirectURL: session.URL,
		Status:      domain.CheckoutCreated,
	}
	if err := s.sessions.Create(ctx, record); err != nil {
		return nil, err
	}

	return &CheckoutResponse{Reference: reference, RedirectURL: session.URL}, nil
}

// ConfirmPayment settles an invoice from a completed checkout session. Safe
// to call any number of times with the same reference: the first call writes
// the payment row and flips the invoice, later calls report AlreadyPaid.
func (s *Service) ConfirmPayment(ctx context.Context, reference string) (*ConfirmPaymentResponse, error) {
	record, err := s.sessions.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	status, err := s.provider.RetrieveSession(ctx, record.ProviderID)
	if err != nil {
		return nil, ErrExternalService
	}
	if status.PaymentStatus != checkout.StatusPaid {
		return nil, ErrNotPaid
	}

	inv, err := s.invoices.GetByID(ctx, record.InvoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &domain.RentPayment{
		InvoiceID:     inv.ID,
		TenantID:      inv.TenantID,
		PropertyID:    inv.PropertyID,
		Amount:        status.AmountTotal,
		PaymentDate:   now,
		PaymentMethod: paymentMethodOrDefault(status.PaymentMethod),
	}
	recorded, err := s.payments.CreateIdempotent(ctx, payment)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.MarkPaidIdempotent(ctx, reference, now); err != nil {
		return nil, err
	}

	return &ConfirmPaymentResponse{
		InvoiceID:     inv.ID,
		Status:        string(domain.InvoicePaid),
		AlreadyPaid:   !recorded,
		PaymentMethod: payment.PaymentMethod,
	}, nil
}

// MarkAsPaid is the manual override for cash or bank-transfer rent. Manager
// roles only; idempotent the same way ConfirmPayment is.
func (s *Service) MarkAsPaid(ctx context.Context, actor domain.Principal, invoiceID int64, method string) (*ConfirmPaymentResponse, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, inv.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProperty(actor, property) {
		return nil, ErrForbidden
	}

	payment := &domain.RentPayment{
		InvoiceID:     inv.ID,
		TenantID:      inv.TenantID,
		PropertyID:    inv.PropertyID,
		Amount:        inv.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: paymentMethodOrDefault(method),
	}
	recorded, err := s.payments.CreateIdempotent(ctx, payment)
	if err != nil {
		return nil, err
	}

	return &ConfirmPaymentResponse{
		InvoiceID:   inv.ID,
		Status:      string(domain.InvoicePaid),
		AlreadyPaid: !recorded,
	}, nil
}

func (s *Service) ListPaymentsForTenant(ctx context.Context, actor domain.Principal) ([]domain.RentPayment, error) {
	return s.payments.ListByTenant(ctx, actor.UserID)
}

func (s *Service) ListPaymentsByProperty(ctx context.Context, actor domain.Principal, propertyID int64) ([]domain.RentPayment, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !domain.CanManageProperty(actor, property) {
		return nil, ErrForbidden
	}
	return s.payments.ListByProperty(ctx, propertyID)
}

func (s *Service) checkInvoiceAccess(ctx context.Context, actor domain.Principal, inv *domain.Invoice) error {
	if actor.UserID == inv.TenantID {
		return nil
	}
	property, err := s.properties.GetByID(ctx, inv.PropertyID)
	if err != nil {
		return err
	}
	if !domain.CanManageProperty(actor, property) {
		return ErrForbidden
	}
	return nil
}

func (s *Service) loadProperty(ctx context.Context, propertyID int64) (*domain.Property, []int64, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	tenantIDs, err := s.properties.TenantIDs(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	return property, tenantIDs, nil
}

func paymentMethodOrDefault(method string) string {
	if method == "" {
		return "card"
	}
	return method
}
