package checkout

import "context"

// LineItem describes the single payable item of a checkout session.
type LineItem struct {
	Name        string
	Description string
	Amount      float64
	Currency    string
}

// Session is the processor's redirect handle for a created checkout.
type Session struct {
	ID  string
	URL string
}

// SessionStatus is the processor's view of a session at retrieval time.
// PaymentStatus is "paid" once the customer has completed payment.
type SessionStatus struct {
	ID            string
	PaymentStatus string
	AmountTotal   float64
	PaymentMethod string
	Metadata      map[string]string
}

const StatusPaid = "paid"

// Provider is the external payment-processor contract. The billing service
// trusts RetrieveSession as the source of truth for confirmation; redelivery
// of the same session id must be safe for callers.
type Provider interface {
	CreateSession(ctx context.Context, item LineItem, successURL, cancelURL string, metadata map[string]string) (*Session, error)
	RetrieveSession(ctx context.Context, id string) (*SessionStatus, error)
}
