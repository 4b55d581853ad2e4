// Package nowpayments is the adapter for the NOWPayments REST API and its
// IPN webhook contract.
package nowpayments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// CreatePaymentRequest mirrors POST /v1/payment.
type CreatePaymentRequest struct {
	PriceAmount      json.Number `json:"price_amount"`
	PriceCurrency    string      `json:"price_currency"`
	PayCurrency      string      `json:"pay_currency,omitempty"`
	OrderID          string      `json:"order_id"`
	OrderDescription string      `json:"order_description"`
	IPNCallbackURL   string      `json:"ipn_callback_url"`
	SuccessURL       string      `json:"success_url,omitempty"`
	CancelURL        string      `json:"cancel_url,omitempty"`
}

// PaymentRef is a processor identifier. /v1/payment reports payment_id as a
// JSON number while the invoice endpoints use strings, so it decodes both.
type PaymentRef string

func (r *PaymentRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = PaymentRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = PaymentRef(n.String())
	return nil
}

func (r PaymentRef) String() string { return string(r) }

// Payment is the subset of the processor's response the service needs.
type Payment struct {
	PaymentID     PaymentRef  `json:"payment_id"`
	PaymentStatus string      `json:"payment_status"`
	PayAddress    string      `json:"pay_address"`
	PayAmount     json.Number `json:"pay_amount"`
	PayCurrency   string      `json:"pay_currency"`
	InvoiceURL    string      `json:"invoice_url"`
	PaymentURL    string      `json:"payment_url"`
}

// URL returns whichever redirect URL the processor provided.
func (p *Payment) URL() string {
	if p.InvoiceURL != "" {
		return p.InvoiceURL
	}
	return p.PaymentURL
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: c}
}

// CreatePayment asks the processor to open a payment. Any transport error or
// non-2xx answer is returned as-is; the caller decides how to surface it.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	var out Payment
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/payment")
	if err != nil {
		return nil, fmt.Errorf("nowpayments: create payment: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("nowpayments: create payment: status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.PaymentID.String() == "" {
		return nil, fmt.Errorf("nowpayments: create payment: empty payment_id in response")
	}
	return &out, nil
}
