package scraper

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

// SelectProxy picks one entry uniformly at random, or nil for an empty pool.
// The returned pointer aliases the pool entry; callers must not mutate it.
func SelectProxy(pool []models.ProxyConfig) *models.ProxyConfig {
	if len(pool) == 0 {
		return nil
	}
	return &pool[rand.IntN(len(pool))]
}

// ParseProxy parses "host:port" or "host:port:user:pass".
func ParseProxy(s string) (models.ProxyConfig, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 4 {
		return models.ProxyConfig{}, fmt.Errorf("proxy %q: want host:port or host:port:user:pass", s)
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil || port <= 0 || port > 65535 {
		return models.ProxyConfig{}, fmt.Errorf("proxy %q: invalid port", s)
	}
	p := models.ProxyConfig{Host: parts[0], Port: port}
	if len(parts) == 4 {
		p.Username, p.Password = parts[2], parts[3]
	}
	if p.Host == "" {
		return models.ProxyConfig{}, fmt.Errorf("proxy %q: empty host", s)
	}
	return p, nil
}

// ParseProxyList parses every entry, skipping (and reporting) malformed ones.
func ParseProxyList(entries []string) ([]models.ProxyConfig, []error) {
	var (
		pool []models.ProxyConfig
		errs []error
	)
	for _, e := range entries {
		p, err := ParseProxy(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pool = append(pool, p)
	}
	return pool, errs
}
