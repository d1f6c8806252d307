package bot

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pmurley/auction-bot/internal/config"
	"github.com/pmurley/auction-bot/internal/metrics"
	"github.com/pmurley/auction-bot/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		DiscordToken:   "token",
		AuctionAPIURL:  "http://127.0.0.1:1",
		SecretKeyFile:  "/nonexistent/secret.env",
		RequestTimeout: time.Second,
		SortMemory:     time.Minute,
		CommandPrefix:  "!",
		LogLevel:       "error",
	}
}

func TestNewWiresComponents(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsAddr = "127.0.0.1:0"

	b, err := New(cfg, logger.NewWithWriter("error", io.Discard))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b.handlers == nil || b.client == nil {
		t.Fatalf("expected handlers and client to be wired")
	}
	if b.metricsServer == nil || b.metricsServer.Addr != cfg.MetricsAddr {
		t.Fatalf("expected metrics server on %s", cfg.MetricsAddr)
	}
	if _, ok := b.secrets.SecretKey(); ok {
		t.Fatalf("expected no secret key from a missing file")
	}
}

func TestNewWithoutMetrics(t *testing.T) {
	b, err := New(testConfig(), logger.NewWithWriter("error", io.Discard))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b.metricsServer != nil {
		t.Fatalf("expected no metrics server without METRICS_ADDR")
	}
}

func TestNewRejectsBadAPIURL(t *testing.T) {
	cfg := testConfig()
	cfg.AuctionAPIURL = "auction.local"

	if _, err := New(cfg, logger.NewWithWriter("error", io.Discard)); err == nil {
		t.Fatalf("expected error for URL without scheme")
	}
}

func TestMetricsRouter(t *testing.T) {
	recorder := metrics.NewRecorder()
	recorder.RecordCommand("teams")
	srv := httptest.NewServer(newMetricsRouter(recorder))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `auction_bot_commands_total{command="teams"} 1`) {
		t.Fatalf("unexpected metrics response %d: %s", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected healthz ok, got %d", resp.StatusCode)
	}
}
