package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Browser.Headless {
		t.Error("Browser.Headless should default to true")
	}
	if cfg.Google.Timeout != 0 {
		t.Errorf("Google.Timeout = %v, want 0 (no outer deadline)", cfg.Google.Timeout)
	}
	if cfg.Browser.WaitTimeout != 5*time.Second {
		t.Errorf("Browser.WaitTimeout = %v, want 5s", cfg.Browser.WaitTimeout)
	}
	if want := []time.Duration{0, 4 * time.Second}; !reflect.DeepEqual(cfg.Ratings.EscalationDelays, want) {
		t.Errorf("Ratings.EscalationDelays = %v, want %v", cfg.Ratings.EscalationDelays, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOVIEAPI_PORT", "9090")
	t.Setenv("MOVIEAPI_HEADLESS", "false")
	t.Setenv("MOVIEAPI_GOOGLE_PROXIES", "10.0.0.1:8080, 10.0.0.2:8080:u:p ,")
	t.Setenv("MOVIEAPI_ESCALATION_DELAYS", "0s,bogus,2s")
	t.Setenv("MOVIEAPI_RATE_RPS", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Browser.Headless {
		t.Error("Browser.Headless should be false")
	}
	if want := []string{"10.0.0.1:8080", "10.0.0.2:8080:u:p"}; !reflect.DeepEqual(cfg.Google.DefaultProxies, want) {
		t.Errorf("Google.DefaultProxies = %v, want %v", cfg.Google.DefaultProxies, want)
	}
	if want := []time.Duration{0, 2 * time.Second}; !reflect.DeepEqual(cfg.Ratings.EscalationDelays, want) {
		t.Errorf("Ratings.EscalationDelays = %v, want %v", cfg.Ratings.EscalationDelays, want)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.0 {
		t.Errorf("invalid float should fall back, got %v", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_ChromeBinFallback(t *testing.T) {
	t.Setenv("MOVIEAPI_BROWSER_BIN", "")
	t.Setenv("CHROME_BIN", "/opt/chrome/chrome")

	if got := Load().Browser.BrowserBin; got != "/opt/chrome/chrome" {
		t.Errorf("BrowserBin = %q, want CHROME_BIN value", got)
	}
}
