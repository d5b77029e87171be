package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// Dispatcher races engines with staged escalation: engines[i] starts
// delays[i] after the race begins, unless an earlier engine has already won.
// The winner per domain is remembered and tried alone next time.
type Dispatcher struct {
	engines []Engine
	delays  []time.Duration
	memory  *DomainMemory
	timeout time.Duration
}

// NewDispatcher creates a Dispatcher. Missing delays default to zero.
// memory may be nil. timeout bounds each engine's fetch; zero means none.
func NewDispatcher(engines []Engine, delays []time.Duration, memory *DomainMemory, timeout time.Duration) *Dispatcher {
	d := make([]time.Duration, len(engines))
	copy(d, delays)
	return &Dispatcher{
		engines: engines,
		delays:  d,
		memory:  memory,
		timeout: timeout,
	}
}

// Engines returns the configured engine names in escalation order.
func (d *Dispatcher) Engines() []string {
	names := make([]string, len(d.engines))
	for i, e := range d.engines {
		names[i] = e.Name()
	}
	return names
}

// FetchHTML returns the page HTML from the first engine to succeed.
func (d *Dispatcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	res, err := d.Dispatch(ctx, &FetchRequest{URL: rawURL, Timeout: d.timeout})
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// Dispatch returns the first successful result. If every engine fails it
// returns the errors joined in engine order.
func (d *Dispatcher) Dispatch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if len(d.engines) == 0 {
		return nil, errors.New("dispatcher: no engines configured")
	}
	domain := extractDomain(req.URL)

	if eng := d.remembered(domain); eng != nil {
		slog.Debug("domain memory hit", "domain", domain, "engine", eng.Name())
		result, err := eng.Fetch(ctx, req)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		slog.Info("remembered engine failed, running full race",
			"domain", domain, "engine", eng.Name(), "error", err)
		d.memory.Delete(domain)
	}

	return d.race(ctx, req, domain)
}

func (d *Dispatcher) remembered(domain string) Engine {
	if d.memory == nil {
		return nil
	}
	name := d.memory.Get(domain)
	if name == "" {
		return nil
	}
	for _, eng := range d.engines {
		if eng.Name() == name {
			return eng
		}
	}
	return nil
}

type raceResult struct {
	index  int
	result *FetchResult
	err    error
}

func (d *Dispatcher) race(ctx context.Context, req *FetchRequest, domain string) (*FetchResult, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan raceResult, len(d.engines))
	var wg sync.WaitGroup
	for i, eng := range d.engines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if delay := d.delays[i]; delay > 0 {
				timer := time.NewTimer(delay)
				defer timer.Stop()
				select {
				case <-raceCtx.Done():
					return
				case <-timer.C:
				}
			}
			if raceCtx.Err() != nil {
				return
			}
			slog.Debug("engine starting", "engine", eng.Name(), "url", req.URL)
			res, err := eng.Fetch(raceCtx, req)
			if err != nil {
				slog.Debug("engine failed", "engine", eng.Name(), "url", req.URL, "error", err)
			}
			results <- raceResult{index: i, result: res, err: err}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	errs := make([]error, len(d.engines))
	for rr := range results {
		if rr.err != nil {
			errs[rr.index] = rr.err
			continue
		}
		cancel()
		slog.Info("engine won race", "engine", rr.result.EngineName, "url", req.URL)
		if d.memory != nil {
			d.memory.Set(domain, rr.result.EngineName)
		}
		return rr.result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dispatcher: %s: %w", req.URL, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("dispatcher: all engines failed for %s", req.URL)
}

func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
