package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultStripeBaseURL = "https://api.stripe.com/v1"

// StripeProvider talks to the Stripe Checkout Sessions API over HTTP.
// Configuration comes from the environment, the way the rest of the service
// reads its gateway settings.
type StripeProvider struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeProvider() *StripeProvider {
	base := os.Getenv("STRIPE_BASE_URL")
	if base == "" {
		base = defaultStripeBaseURL
	}
	return &StripeProvider{
		secretKey: os.Getenv("STRIPE_SECRET_KEY"),
		baseURL:   strings.TrimRight(base, "/"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type stripeSession struct {
	ID                 string            `json:"id"`
	URL                string            `json:"url"`
	PaymentStatus      string            `json:"payment_status"`
	AmountTotal        int64             `json:"amount_total"`
	Metadata           map[string]string `json:"metadata"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
}

func (p *StripeProvider) CreateSession(ctx context.Context, item LineItem, successURL, cancelURL string, metadata map[string]string) (*Session, error) {
	if p.secretKey == "" {
		return nil, fmt.Errorf("stripe credentials are not configured")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", item.Currency)
	form.Set("line_items[0][price_data][product_data][name]", item.Name)
	if item.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", item.Description)
	}
	// Stripe wants the amount in the currency's minor unit.
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(math.Round(item.Amount*100)), 10))
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	s, err := p.do(ctx, http.MethodPost, "/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, id string) (*SessionStatus, error) {
	if p.secretKey == "" {
		return nil, fmt.Errorf("stripe credentials are not configured")
	}

	s, err := p.do(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	method := "card"
	if len(s.PaymentMethodTypes) > 0 {
		method = s.PaymentMethodTypes[0]
	}
	return &SessionStatus{
		ID:            s.ID,
		PaymentStatus: s.PaymentStatus,
		AmountTotal:   float64(s.AmountTotal) / 100,
		PaymentMethod: method,
		Metadata:      s.Metadata,
	}, nil
}

func (p *StripeProvider) do(ctx context.Context, method, path string, body io.Reader) (*stripeSession, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("stripe request failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var s stripeSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("stripe response decode failed: %w", err)
	}
	return &s, nil
}
