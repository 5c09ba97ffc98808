package billing

import "time"

type CreateInvoiceRequest struct {
	PropertyID  int64     `json:"property_id" binding:"required"`
	TenantID    int64     `json:"tenant_id" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Description string    `json:"description"`
}

type InitiateCheckoutRequest struct {
	InvoiceID int64 `json:"invoice_id" binding:"required"`
}

type CheckoutResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

type ConfirmPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

type ConfirmPaymentResponse struct {
	InvoiceID     int64  `json:"invoice_id"`
	Status        string `json:"status"`
	AlreadyPaid   bool   `json:"already_paid"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type MarkAsPaidRequest struct {
	PaymentMethod string `json:"payment_method"`
}
