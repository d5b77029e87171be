package scraper

import (
	"testing"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

func TestSelectProxy(t *testing.T) {
	if got := SelectProxy(nil); got != nil {
		t.Errorf("SelectProxy(nil) = %v, want nil", got)
	}
	if got := SelectProxy([]models.ProxyConfig{}); got != nil {
		t.Errorf("SelectProxy(empty) = %v, want nil", got)
	}

	pool := []models.ProxyConfig{
		{Host: "10.0.0.1", Port: 8000},
		{Host: "10.0.0.2", Port: 8000},
		{Host: "10.0.0.3", Port: 8000},
	}
	seen := make(map[string]int)
	for i := 0; i < 300; i++ {
		p := SelectProxy(pool)
		if p == nil {
			t.Fatal("SelectProxy returned nil for a non-empty pool")
		}
		seen[p.Host]++
	}
	for _, p := range pool {
		if seen[p.Host] == 0 {
			t.Errorf("proxy %s never selected in 300 draws", p.Host)
		}
	}
}

func TestParseProxy(t *testing.T) {
	tests := []struct {
		in      string
		want    models.ProxyConfig
		wantErr bool
	}{
		{"1.2.3.4:8080", models.ProxyConfig{Host: "1.2.3.4", Port: 8080}, false},
		{" proxy.local:3128:alice:s3cret ", models.ProxyConfig{Host: "proxy.local", Port: 3128, Username: "alice", Password: "s3cret"}, false},
		{"1.2.3.4", models.ProxyConfig{}, true},
		{"1.2.3.4:port", models.ProxyConfig{}, true},
		{"1.2.3.4:70000", models.ProxyConfig{}, true},
		{":8080", models.ProxyConfig{}, true},
		{"a:1:b", models.ProxyConfig{}, true},
	}

	for _, tt := range tests {
		got, err := ParseProxy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProxy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProxy(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseProxyList(t *testing.T) {
	pool, errs := ParseProxyList([]string{"a:1", "bad", "b:2:u:p"})
	if len(pool) != 2 {
		t.Errorf("pool size = %d, want 2", len(pool))
	}
	if len(errs) != 1 {
		t.Errorf("errors = %d, want 1", len(errs))
	}
	if !pool[1].HasCredentials() {
		t.Error("second proxy should carry credentials")
	}
}
