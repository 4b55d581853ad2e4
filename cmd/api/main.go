package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Mehedi6898/payments/internal/config"
	"github.com/Mehedi6898/payments/internal/download"
	"github.com/Mehedi6898/payments/internal/httpx"
	"github.com/Mehedi6898/payments/internal/metrics"
	"github.com/Mehedi6898/payments/internal/nowpayments"
	"github.com/Mehedi6898/payments/internal/obs"
	"github.com/Mehedi6898/payments/internal/orders"
	"github.com/Mehedi6898/payments/internal/payments"
	"github.com/Mehedi6898/payments/internal/products"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	obs.InitLogger(cfg.ServiceName)
	log := obs.Logger
	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := products.Default()
	ledger := orders.NewMemoryLedger()
	tokens := download.NewStore(cfg.DownloadTTL)
	npClient := nowpayments.NewClient(cfg.NowPaymentsAPIURL, cfg.NowPaymentsAPIKey)

	svc := payments.NewService(catalog, ledger, tokens, npClient, log)
	svc.FilesDir = cfg.FilesDir
	svc.CallbackURL = cfg.BackendURL + "/api/ipn"
	svc.SuccessURL = cfg.SuccessURL
	svc.CancelURL = cfg.CancelURL
	svc.OrderRetention = cfg.OrderRetention

	go svc.RunJanitor(ctx, cfg.SweepInterval)

	router := httpx.NewRouter()
	ph := &httpx.PaymentsHandler{
		Service:   svc,
		IPNSecret: cfg.IPNSecret,
		Log:       log,
	}
	ph.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel() // stop janitor
}
