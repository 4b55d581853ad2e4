// Package payments orchestrates the purchase flow: open a payment with the
// processor, apply verified notifications, and hand out download grants.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mehedi6898/payments/internal/download"
	"github.com/Mehedi6898/payments/internal/metrics"
	"github.com/Mehedi6898/payments/internal/nowpayments"
	"github.com/Mehedi6898/payments/internal/orders"
	"github.com/Mehedi6898/payments/internal/products"
)

// Processor is the slice of the NOWPayments client the service needs; tests
// inject a fake.
type Processor interface {
	CreatePayment(ctx context.Context, req nowpayments.CreatePaymentRequest) (*nowpayments.Payment, error)
}

// defaultPayCurrency matches the original storefront's settlement default.
const defaultPayCurrency = "usdttrc20"

type Service struct {
	Catalog   *products.Catalog
	Ledger    orders.Ledger
	Tokens    *download.Store
	Processor Processor
	Log       *slog.Logger

	FilesDir    string
	CallbackURL string
	SuccessURL  string
	CancelURL   string

	OrderRetention time.Duration

	now func() time.Time
}

func NewService(catalog *products.Catalog, ledger orders.Ledger, tokens *download.Store, proc Processor, log *slog.Logger) *Service {
	return &Service{
		Catalog:   catalog,
		Ledger:    ledger,
		Tokens:    tokens,
		Processor: proc,
		Log:       log,
		now:       time.Now,
	}
}

// CreatePaymentResult is what the storefront gets back after a payment is
// opened: whichever of the processor's pointers exist.
type CreatePaymentResult struct {
	PaymentID     string `json:"paymentId"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentURL    string `json:"paymentUrl,omitempty"`
	PayAddress    string `json:"payAddress,omitempty"`
	PayAmount     string `json:"payAmount,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// CreatePayment validates the product, opens a payment with the processor
// and records the order. No ledger state exists until the upstream call has
// succeeded, and no ledger lock is held while it is in flight.
func (s *Service) CreatePayment(ctx context.Context, productID, payCurrency string) (CreatePaymentResult, error) {
	p, ok := s.Catalog.Get(productID)
	if !ok {
		return CreatePaymentResult{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	if payCurrency == "" {
		payCurrency = defaultPayCurrency
	}

	orderRef := fmt.Sprintf("%s-%d", p.ID, s.now().UnixMilli())
	req := nowpayments.CreatePaymentRequest{
		PriceAmount:      json.Number(p.PriceUSD.String()),
		PriceCurrency:    "usd",
		PayCurrency:      payCurrency,
		OrderID:          orderRef,
		OrderDescription: p.Name,
		IPNCallbackURL:   s.CallbackURL,
		SuccessURL:       s.SuccessURL,
		CancelURL:        s.CancelURL,
	}

	pay, err := s.Processor.CreatePayment(ctx, req)
	if err != nil {
		metrics.PaymentsFailedTotal.Inc()
		s.Log.Error("create payment failed", "product_id", productID, "err", err)
		return CreatePaymentResult{}, fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
	}

	o := orders.Order{
		PaymentID: pay.PaymentID.String(),
		OrderRef:  orderRef,
		ProductID: p.ID,
		Status:    orders.Status(pay.PaymentStatus),
	}
	if err := s.Ledger.Insert(o); err != nil && !errors.Is(err, orders.ErrAlreadyExists) {
		return CreatePaymentResult{}, err
	}

	metrics.PaymentsCreatedTotal.Inc()
	s.Log.Info("payment created",
		"payment_id", o.PaymentID, "order_ref", orderRef,
		"product_id", p.ID, "status", string(o.Status))

	return CreatePaymentResult{
		PaymentID:     o.PaymentID,
		PaymentStatus: pay.PaymentStatus,
		PaymentURL:    pay.URL(),
		PayAddress:    pay.PayAddress,
		PayAmount:     pay.PayAmount.String(),
		Currency:      pay.PayCurrency,
	}, nil
}

// ApplyIPN applies an authenticated notification. An unknown order is a
// successful no-op so the processor does not retry foreign or stale
// notifications. Returns whether an order was updated.
func (s *Service) ApplyIPN(ctx context.Context, n nowpayments.IPN) (bool, error) {
	eventID := uuid.NewString()
	o, ok := s.Ledger.Resolve(n.PaymentID.String(), n.OrderID)
	if !ok {
		metrics.IPNTotal.WithLabelValues("ignored").Inc()
		s.Log.Info("ipn for unknown order ignored",
			"event_id", eventID, "payment_id", n.PaymentID.String(), "order_ref", n.OrderID)
		return false, nil
	}

	st := orders.Status(n.PaymentStatus)
	updated, minted, err := s.Ledger.ApplyStatus(o.PaymentID, st, s.mintFor)
	if err != nil {
		return false, err
	}

	metrics.IPNTotal.WithLabelValues("accepted").Inc()
	if minted {
		metrics.CredentialsMintedTotal.Inc()
	}
	s.Log.Info("ipn applied",
		"event_id", eventID, "payment_id", updated.PaymentID,
		"status", string(st), "minted", minted)
	return true, nil
}

// mintFor runs under the ledger lock for a paid, tokenless order. A product
// missing from the catalog declines the mint without failing the IPN.
func (s *Service) mintFor(o orders.Order) (string, error) {
	p, ok := s.Catalog.Get(o.ProductID)
	if !ok {
		s.Log.Warn("paid order references unknown product", "payment_id", o.PaymentID, "product_id", o.ProductID)
		return "", nil
	}
	c, err := s.Tokens.Mint(p.FilePath(s.FilesDir))
	if err != nil {
		return "", err
	}
	return c.Token, nil
}

// OrderView is the polling response.
type OrderView struct {
	Status        string  `json:"status"`
	DownloadToken *string `json:"downloadToken"`
}

// GetOrder is a pure read; safe to poll.
func (s *Service) GetOrder(paymentID string) (OrderView, error) {
	o, err := s.Ledger.Get(paymentID)
	if err != nil {
		return OrderView{}, fmt.Errorf("%w: %s", ErrOrderNotFound, paymentID)
	}
	v := OrderView{Status: string(o.Status)}
	if o.DownloadToken != "" {
		t := o.DownloadToken
		v.DownloadToken = &t
	}
	return v, nil
}

// Redeem burns a token and returns the file path to stream.
func (s *Service) Redeem(token string) (string, error) {
	c, err := s.Tokens.Redeem(token)
	if err != nil {
		return "", err
	}
	return c.FilePath, nil
}

// SweepOnce evicts expired credentials and stale orders.
func (s *Service) SweepOnce() {
	expired := s.Tokens.Sweep()
	evicted := 0
	if s.OrderRetention > 0 {
		evicted = s.Ledger.Sweep(s.now().Add(-s.OrderRetention))
	}
	if expired > 0 || evicted > 0 {
		s.Log.Info("sweep", "credentials_expired", expired, "orders_evicted", evicted)
	}
}

// RunJanitor sweeps on the interval until ctx is cancelled.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.SweepOnce()
		}
	}
}
