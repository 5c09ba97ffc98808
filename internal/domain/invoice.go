package domain

import "time"

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

type Invoice struct {
	ID          int64         `json:"id"`
	PropertyID  int64         `json:"property_id" validate:"required"`
	TenantID    int64         `json:"tenant_id" validate:"required"`
	Amount      float64       `json:"amount" validate:"required,gt=0"`
	DueDate     time.Time     `json:"due_date"`
	Description string        `json:"description,omitempty"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RentPayment settles an invoice. The unique index on invoice_id is the
// backstop for confirmation idempotency: at most one payment row is ever
// written per confirmed invoice.
type RentPayment struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	InvoiceID     int64     `gorm:"uniqueIndex;not null" json:"invoice_id"`
	TenantID      int64     `gorm:"index;not null" json:"tenant_id"`
	PropertyID    int64     `gorm:"index;not null" json:"property_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `gorm:"type:varchar(32)" json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

func (RentPayment) TableName() string { return "rent_payments" }

type CheckoutStatus string

const (
	CheckoutCreated CheckoutStatus = "created"
	CheckoutPaid    CheckoutStatus = "paid"
	CheckoutExpired CheckoutStatus = "expired"
)

// CheckoutSession is the persisted record of an external payment-processor
// session for an invoice. Reference is our opaque handle; ProviderID is the
// processor's session id.
type CheckoutSession struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Reference   string         `gorm:"uniqueIndex;type:varchar(64);not null" json:"reference"`
	InvoiceID   int64          `gorm:"index;not null" json:"invoice_id"`
	TenantID    int64          `gorm:"index;not null" json:"tenant_id"`
	Amount      float64        `json:"amount"`
	ProviderID  string         `gorm:"index;type:varchar(128)" json:"provider_id"`
	RedirectURL string         `gorm:"type:text" json:"redirect_url"`
	Status      CheckoutStatus `gorm:"type:varchar(20);default:'created';index" json:"status"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (CheckoutSession) TableName() string { return "checkout_sessions" }
