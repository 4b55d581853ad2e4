package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mehedi6898/payments/internal/download"
	"github.com/Mehedi6898/payments/internal/metrics"
	"github.com/Mehedi6898/payments/internal/nowpayments"
	"github.com/Mehedi6898/payments/internal/payments"
)

// maxIPNBody bounds the raw notification body read for signing.
const maxIPNBody = 5 << 20

type PaymentsHandler struct {
	Service   *payments.Service
	IPNSecret string
	Log       *slog.Logger
}

func (h *PaymentsHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Post("/api/create-payment", h.createPayment)
		r.Get("/api/order/{id}", h.getOrder)
		r.Get("/api/products", h.listProducts)
	})
	// no timeout group here: the ipn gate needs the raw body exactly as
	// sent, and a download may outlive an API budget
	r.Post("/api/ipn", h.handleIPN)
	r.Get("/api/download/{token}", h.downloadFile)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type createPaymentReq struct {
	ProductID   string `json:"productId"`
	PayCurrency string `json:"payCurrency"`
}

func (h *PaymentsHandler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing productId"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	res, err := h.Service.CreatePayment(ctx, req.ProductID, req.PayCurrency)
	switch {
	case errors.Is(err, payments.ErrUnknownProduct):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown productId"})
		return
	case err != nil:
		// upstream detail stays in the logs, not the response
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create payment"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleIPN is the signature gate. The body is hashed exactly as received;
// it must not be decoded, re-encoded or otherwise touched before VerifyIPN.
func (h *PaymentsHandler) handleIPN(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxIPNBody))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "read body"})
		return
	}
	sig := r.Header.Get(nowpayments.SigHeader)

	if nowpayments.IsTestProbe(sig) {
		metrics.IPNTotal.WithLabelValues("probe").Inc()
		h.Log.Info("nowpayments test ipn received")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
		return
	}

	if !nowpayments.VerifyIPN(h.IPNSecret, body, sig) {
		metrics.IPNTotal.WithLabelValues("rejected").Inc()
		// same response whether the header was absent or wrong
		h.Log.Warn("ipn signature rejected", "have_sig", sig != "")
		http.Error(w, "Invalid signature", http.StatusForbidden)
		return
	}

	n, err := nowpayments.ParseIPN(body)
	if err != nil {
		h.Log.Error("ipn body unparseable after valid signature", "err", err)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}

	if _, err := h.Service.ApplyIPN(r.Context(), n); err != nil {
		h.Log.Error("ipn apply failed", "err", err)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *PaymentsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Catalog.List())
}

func (h *PaymentsHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.Service.GetOrder(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// downloadFile burns the token before any byte is sent, so a broken
// transfer never leaves the token redeemable.
func (h *PaymentsHandler) downloadFile(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	path, err := h.Service.Redeem(token)
	switch {
	case errors.Is(err, download.ErrExpired):
		metrics.DownloadsTotal.WithLabelValues("denied").Inc()
		http.Error(w, "Download expired. Please purchase again.", http.StatusGone)
		return
	case err != nil:
		metrics.DownloadsTotal.WithLabelValues("denied").Inc()
		http.Error(w, "Download expired or invalid.", http.StatusGone)
		return
	}

	metrics.DownloadsTotal.WithLabelValues("served").Inc()
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
