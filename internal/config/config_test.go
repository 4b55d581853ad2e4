package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DOWNLOAD_TTL_MIN", "ORDER_RETENTION_HOURS", "NOWPAYMENTS_API_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.HTTPAddr != ":10000" {
		t.Fatalf("addr %q", cfg.HTTPAddr)
	}
	if cfg.DownloadTTL != 30*time.Minute {
		t.Fatalf("download ttl %v", cfg.DownloadTTL)
	}
	if cfg.OrderRetention != 48*time.Hour {
		t.Fatalf("retention %v", cfg.OrderRetention)
	}
	if cfg.NowPaymentsAPIURL != "https://api.nowpayments.io/v1" {
		t.Fatalf("api url %q", cfg.NowPaymentsAPIURL)
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DOWNLOAD_TTL_MIN", "5")
	t.Setenv("ORDER_RETENTION_HOURS", "not-a-number")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("addr override ignored: %q", cfg.HTTPAddr)
	}
	if cfg.DownloadTTL != 5*time.Minute {
		t.Fatalf("ttl override ignored: %v", cfg.DownloadTTL)
	}
	if cfg.OrderRetention != 48*time.Hour {
		t.Fatalf("bad value should fall back to default: %v", cfg.OrderRetention)
	}
}
