// Package app assembles the extraction services from configuration. The
// HTTP server and the CLI share it.
package app

import (
	"fmt"
	"log/slog"

	"github.com/ChaitanyaVootla/movie-browser-api/cache"
	"github.com/ChaitanyaVootla/movie-browser-api/config"
	"github.com/ChaitanyaVootla/movie-browser-api/engine"
	"github.com/ChaitanyaVootla/movie-browser-api/google"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/ChaitanyaVootla/movie-browser-api/ratings"
	"github.com/ChaitanyaVootla/movie-browser-api/scraper"
)

// App holds the wired services. Close releases background loops; browser
// sessions are per call and need no shutdown.
type App struct {
	Config       *config.Config
	Google       *google.Extractor
	Ratings      *ratings.Service
	Fetcher      *engine.Dispatcher
	GoogleCache  *cache.Cache[*models.GoogleSearchResult]
	RatingsCache *cache.Cache[*models.RatingsResponse]

	memory *engine.DomainMemory
}

// New wires the services. Invalid default proxies are logged and skipped.
func New(cfg *config.Config) (*App, error) {
	proxies, errs := scraper.ParseProxyList(cfg.Google.DefaultProxies)
	for _, err := range errs {
		slog.Warn("ignoring default proxy", "error", err)
	}

	extractor := google.NewExtractor(func(pool []models.ProxyConfig) google.Session {
		return scraper.NewSession(cfg.Browser, pool)
	}, google.Options{
		WaitTimeout:    cfg.Browser.WaitTimeout,
		DefaultProxies: proxies,
	})

	httpEngine, err := engine.NewHTTPEngine(cfg.Ratings.HTTPProxyURL)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	engines := []engine.Engine{httpEngine}
	if cfg.Ratings.BrowserFallback {
		engines = append(engines, engine.NewRodEngine(func() engine.BrowserSession {
			return scraper.NewSession(cfg.Browser, nil)
		}))
	}
	memory := engine.NewDomainMemory(cfg.Ratings.DomainMemoryTTL)
	dispatcher := engine.NewDispatcher(engines, cfg.Ratings.EscalationDelays, memory, 0)

	slog.Debug("ratings fetch engines", "engines", dispatcher.Engines(), "delays", cfg.Ratings.EscalationDelays)

	return &App{
		Config:       cfg,
		Google:       extractor,
		Ratings:      ratings.NewService(dispatcher, cfg.Ratings.Timeout),
		Fetcher:      dispatcher,
		GoogleCache:  cache.New[*models.GoogleSearchResult](cfg.Cache.MaxEntries, cfg.Cache.TTL),
		RatingsCache: cache.New[*models.RatingsResponse](cfg.Cache.MaxEntries, cfg.Cache.TTL),
		memory:       memory,
	}, nil
}

// BrowserPath resolves the configured headless-browser executable.
func (a *App) BrowserPath() (string, error) {
	return scraper.ResolveBrowser(a.Config.Browser.BrowserBin)
}

// Close stops the cache and domain-memory loops.
func (a *App) Close() {
	a.GoogleCache.Stop()
	a.RatingsCache.Stop()
	a.memory.Stop()
}
