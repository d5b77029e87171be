package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/config"
	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/fingerprint"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "uninitialized"
	}
}

// ErrSessionNotReady is returned by page operations outside StateReady.
var ErrSessionNotReady = errors.New("browser session not initialized")

// Session owns one browser process and one page. Every Initialize draws a
// fresh fingerprint and proxy, so Close followed by Initialize rotates both.
//
// A Session is not meant for concurrent page operations; the mutex only
// guards lifecycle transitions.
type Session struct {
	cfg     config.BrowserConfig
	proxies []models.ProxyConfig

	mu        sync.Mutex
	state     State
	page      *rod.Page
	profile   fingerprint.Profile
	proxy     *models.ProxyConfig
	hijacked  bool
	releasers []func() error
}

// NewSession creates an uninitialized session drawing proxies from pool.
func NewSession(cfg config.BrowserConfig, pool []models.ProxyConfig) *Session {
	return &Session{cfg: cfg, proxies: pool}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Profile returns the fingerprint applied by the last Initialize.
func (s *Session) Profile() fingerprint.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Proxy returns the proxy chosen by the last Initialize, or nil.
func (s *Session) Proxy() *models.ProxyConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proxy
}

// Initialize launches the browser and prepares the page. Calling it on a
// ready session is a no-op. A failed Initialize releases whatever it had
// acquired and leaves the session closed.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		return nil
	}

	bin, err := ResolveBrowser(s.cfg.BrowserBin)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeBrowserMissing, "no usable browser executable", err)
	}

	s.profile = fingerprint.Generate()
	s.proxy = SelectProxy(s.proxies)
	s.state = StateReady

	if err := s.launch(ctx, bin); err != nil {
		_ = s.releaseLocked()
		return err
	}

	slog.Debug("browser session ready",
		"platform", s.profile.Platform,
		"viewport", fmt.Sprintf("%dx%d", s.profile.Viewport.Width, s.profile.Viewport.Height),
		"timezone", s.profile.Timezone,
		"proxy", proxyLabel(s.proxy),
	)
	return nil
}

// launch runs under s.mu. Each acquired resource registers its releaser
// before the next step so a mid-way failure unwinds cleanly.
func (s *Session) launch(ctx context.Context, bin string) error {
	// ── 1. Launch browser process ───────────────────────────────────
	l := newLauncher(s.cfg, bin, s.profile, s.proxy)
	controlURL, err := l.Launch()
	if err != nil {
		return models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to launch browser", err)
	}
	s.releasers = append(s.releasers, func() error {
		l.Kill()
		l.Cleanup()
		return nil
	})

	// ── 2. Connect ──────────────────────────────────────────────────
	browserCtx, cancel := context.WithCancel(context.Background())
	browser := rod.New().Context(browserCtx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		cancel()
		return models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to connect to browser", err)
	}
	s.releasers = append(s.releasers, func() error {
		defer cancel()
		return browser.Close()
	})

	// ── 3. Proxy auth (single challenge; Chrome caches the credentials) ──
	if s.proxy != nil && s.proxy.HasCredentials() {
		wait := browser.HandleAuth(s.proxy.Username, s.proxy.Password)
		go func() {
			if err := wait(); err != nil && !errors.Is(err, context.Canceled) {
				slog.Debug("proxy auth handler exited", "error", err)
			}
		}()
	}

	// ── 4. Open page ────────────────────────────────────────────────
	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return categorizeError(err, "failed to open page")
	}
	page = page.Context(browserCtx)
	s.page = page
	s.releasers = append(s.releasers, page.Close)

	// ── 5. Fingerprint ──────────────────────────────────────────────
	if err := applyProfile(page, s.profile); err != nil {
		return models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to apply fingerprint", err)
	}

	// ── 6. Request blocking (Fetch domain is taken by proxy auth) ──
	if s.proxy == nil || !s.proxy.HasCredentials() {
		if router := mountHijack(page, s.cfg.BlockedResourceTypes, s.cfg.BlockAds); router != nil {
			s.hijacked = true
			s.releasers = append(s.releasers, router.Stop)
		}
	}
	return nil
}

func newLauncher(cfg config.BrowserConfig, bin string, p fingerprint.Profile, proxy *models.ProxyConfig) *launcher.Launcher {
	l := launcher.New().
		Bin(bin).
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if proxy != nil {
		l = l.Proxy(proxy.Address())
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", p.Viewport.Width, p.Viewport.Height))
	l.Set(flags.Flag("lang"), "en-US")
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI,IsolateOrigins,site-per-process")
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("no-first-run"))
	l.Set(flags.Flag("no-default-browser-check"))
	return l
}

// applyProfile makes the page report the profile consistently: viewport,
// UA string plus client-hint metadata, timezone and navigator overrides.
func applyProfile(page *rod.Page, p fingerprint.Profile) error {
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		return fmt.Errorf("inject stealth: %w", err)
	}
	if _, err := page.EvalOnNewDocument(p.OverrideScript()); err != nil {
		return fmt.Errorf("inject overrides: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             p.Viewport.Width,
		Height:            p.Viewport.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:         p.UserAgent(),
		AcceptLanguage:    "en-US,en;q=0.9",
		Platform:          p.Platform,
		UserAgentMetadata: userAgentMetadata(p),
	}); err != nil {
		return fmt.Errorf("set user agent: %w", err)
	}
	if err := (proto.EmulationSetTimezoneOverride{TimezoneID: p.Timezone}).Call(page); err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}
	return proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{"Accept-Language": "en-US,en;q=0.9"}),
	}.Call(page)
}

func userAgentMetadata(p fingerprint.Profile) *proto.EmulationUserAgentMetadata {
	convert := func(brands []fingerprint.Brand) []*proto.EmulationUserAgentBrandVersion {
		out := make([]*proto.EmulationUserAgentBrandVersion, 0, len(brands))
		for _, b := range brands {
			out = append(out, &proto.EmulationUserAgentBrandVersion{Brand: b.Name, Version: b.Version})
		}
		return out
	}
	return &proto.EmulationUserAgentMetadata{
		Brands:          convert(p.Brands()),
		FullVersionList: convert(p.FullVersionList()),
		Platform:        p.ClientHintPlatform(),
		PlatformVersion: p.PlatformVersion(),
		Architecture:    "x86",
		Bitness:         "64",
		Model:           "",
		Mobile:          false,
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// Close releases the page and browser process. Only the first call after a
// successful Initialize does any work.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseLocked()
}

func (s *Session) releaseLocked() error {
	if s.state != StateReady {
		return nil
	}
	s.state = StateClosed

	var errs []error
	for i := len(s.releasers) - 1; i >= 0; i-- {
		if err := s.releasers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.releasers = nil
	s.page = nil
	s.hijacked = false
	return errors.Join(errs...)
}

func (s *Session) readyPage() (*rod.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.page == nil {
		return nil, ErrSessionNotReady
	}
	return s.page, nil
}

// Navigate loads url and waits, bounded by IdleTimeout, for the network to
// settle. Navigation errors are fatal; an unsettled page is not.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page, err := s.readyPage()
	if err != nil {
		return err
	}
	p := page.Context(ctx)

	// WaitRequestIdle and the hijack router both need the Fetch domain, so
	// hijacked pages fall back to DOM stability.
	var waitIdle func()
	var idle *rod.Page
	if !s.hijacked {
		idle = p.Timeout(s.cfg.IdleTimeout)
		waitIdle = idle.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
	}

	nav := p.Timeout(s.cfg.NavigationTimeout)
	navErr := nav.Navigate(url)
	nav.CancelTimeout()
	if navErr != nil {
		if idle != nil {
			idle.CancelTimeout()
		}
		return categorizeError(navErr, "navigation failed")
	}

	if waitIdle != nil {
		waitIdle()
		idle.CancelTimeout()
		return nil
	}

	stable := p.Timeout(s.cfg.IdleTimeout)
	if err := stable.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("DOM did not stabilise, proceeding with current DOM", "error", err)
	}
	stable.CancelTimeout()
	return nil
}

// Scroll moves the mouse wheel by deltaY pixels.
func (s *Session) Scroll(ctx context.Context, deltaY float64) error {
	page, err := s.readyPage()
	if err != nil {
		return err
	}
	return page.Context(ctx).Mouse.Scroll(0, deltaY, 1)
}

// Document returns a live query handle bound to ctx.
func (s *Session) Document(ctx context.Context) (dom.Document, error) {
	page, err := s.readyPage()
	if err != nil {
		return nil, err
	}
	return dom.NewLiveDocument(page.Context(ctx)), nil
}

// HTML returns the rendered document markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	page, err := s.readyPage()
	if err != nil {
		return "", err
	}
	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", categorizeError(err, "failed to extract page HTML")
	}
	return html, nil
}

func proxyLabel(p *models.ProxyConfig) string {
	if p == nil {
		return "direct"
	}
	return p.Address()
}
