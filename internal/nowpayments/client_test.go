package nowpayments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatePayment(t *testing.T) {
	var gotReq CreatePaymentRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payment" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"payment_id": 5077125706,
			"payment_status": "waiting",
			"pay_address": "TNDFkiSmBQorNFacb3735q8MnT29sn8BLn",
			"pay_amount": 99.87,
			"pay_currency": "usdttrc20",
			"invoice_url": "https://nowpayments.io/payment/?iid=abc"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "api-key-123")
	p, err := c.CreatePayment(context.Background(), CreatePaymentRequest{
		PriceAmount:    json.Number("100"),
		PriceCurrency:  "usd",
		PayCurrency:    "usdttrc20",
		OrderID:        "luckyjet-1700000000000",
		IPNCallbackURL: "https://shop.example/api/ipn",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if gotKey != "api-key-123" {
		t.Fatalf("x-api-key %q", gotKey)
	}
	if gotReq.OrderID != "luckyjet-1700000000000" || gotReq.PriceAmount.String() != "100" {
		t.Fatalf("request not forwarded: %+v", gotReq)
	}
	if p.PaymentID.String() != "5077125706" || p.PaymentStatus != "waiting" {
		t.Fatalf("unexpected payment: %+v", p)
	}
	if p.URL() != "https://nowpayments.io/payment/?iid=abc" {
		t.Fatalf("url %q", p.URL())
	}
}

func TestCreatePaymentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"INVALID_API_KEY"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	if _, err := c.CreatePayment(context.Background(), CreatePaymentRequest{}); err == nil {
		t.Fatalf("expected error on 403 response")
	}
}

func TestCreatePaymentEmptyPaymentID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if _, err := c.CreatePayment(context.Background(), CreatePaymentRequest{}); err == nil {
		t.Fatalf("expected error when response lacks payment_id")
	}
}

func TestPaymentURLFallback(t *testing.T) {
	p := &Payment{PaymentURL: "https://pay.example/p"}
	if p.URL() != "https://pay.example/p" {
		t.Fatalf("payment_url fallback broken")
	}
	p.InvoiceURL = "https://pay.example/i"
	if p.URL() != "https://pay.example/i" {
		t.Fatalf("invoice_url should win")
	}
}
