package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	ServiceName string

	// NOWPayments integration.
	NowPaymentsAPIURL string
	NowPaymentsAPIKey string
	IPNSecret         string

	// Externally reachable base URL; the IPN callback is derived from it.
	BackendURL string
	SuccessURL string
	CancelURL  string

	// Where product archives live on disk.
	FilesDir string

	DownloadTTL     time.Duration
	SweepInterval   time.Duration
	OrderRetention  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":10000"),
		ServiceName: getenv("SERVICE_NAME", "payments-api"),

		NowPaymentsAPIURL: getenv("NOWPAYMENTS_API_URL", "https://api.nowpayments.io/v1"),
		NowPaymentsAPIKey: getenv("NOWPAYMENTS_API_KEY", ""),
		IPNSecret:         getenv("NOWPAYMENTS_IPN_SECRET", ""),

		BackendURL: getenv("BACKEND_URL", "http://localhost:10000"),
		SuccessURL: getenv("PAYMENT_SUCCESS_URL", ""),
		CancelURL:  getenv("PAYMENT_CANCEL_URL", ""),

		FilesDir: getenv("FILES_DIR", "files"),

		DownloadTTL:     durenvmin("DOWNLOAD_TTL_MIN", 30),
		SweepInterval:   durenvsec("SWEEP_INTERVAL_SEC", 60),
		OrderRetention:  durenvhour("ORDER_RETENTION_HOURS", 48),
		ShutdownTimeout: durenvsec("SHUTDOWN_TIMEOUT_SEC", 5),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoienv(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvmin(k string, def int) time.Duration {
	return time.Duration(atoienv(k, def)) * time.Minute
}

func durenvsec(k string, def int) time.Duration {
	return time.Duration(atoienv(k, def)) * time.Second
}

func durenvhour(k string, def int) time.Duration {
	return time.Duration(atoienv(k, def)) * time.Hour
}
