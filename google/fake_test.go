package google

import (
	"context"
	"sync"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

// fakeSession serves scripted pages through the static DOM adapter. The
// n-th navigation gets pages[n], the last page repeating.
type fakeSession struct {
	pages   []string
	navErr  error
	initErr error

	ready     bool
	inits     int
	closes    int
	navs      int
	navURLs   []string
	pool      []models.ProxyConfig
	scrollErr error
}

func (f *fakeSession) Initialize(context.Context) error {
	f.inits++
	if f.initErr != nil {
		return f.initErr
	}
	f.ready = true
	return nil
}

func (f *fakeSession) Close() error {
	if f.ready {
		f.closes++
		f.ready = false
	}
	return nil
}

func (f *fakeSession) Navigate(_ context.Context, url string) error {
	f.navs++
	f.navURLs = append(f.navURLs, url)
	return f.navErr
}

func (f *fakeSession) Scroll(context.Context, float64) error { return f.scrollErr }

func (f *fakeSession) Document(context.Context) (dom.Document, error) {
	i := f.navs - 1
	if i >= len(f.pages) {
		i = len(f.pages) - 1
	}
	return dom.ParseHTML(f.pages[i], "https://www.google.com/search")
}

// recordingSleeper never blocks and remembers every requested duration.
type recordingSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *recordingSleeper) count(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.slept {
		if s == d {
			n++
		}
	}
	return n
}

func newTestExtractor(sess *fakeSession, sleeper Sleeper) *Extractor {
	return NewExtractor(func(pool []models.ProxyConfig) Session {
		sess.pool = pool
		return sess
	}, Options{Sleeper: sleeper, WaitTimeout: time.Millisecond})
}

const botPage = `<html><body><p>Our systems have detected unusual traffic from your computer network.</p></body></html>`

const emptyPage = `<html><body><div id="search">No panel here</div></body></html>`

const shawshankPage = `<html><body>
<div class="Ap5OSd">
  <a class="vIUFYd" href="https://www.imdb.com/title/tt0111161/"><span class="gsrt">9.3/10</span><span class="rhsB">IMDb</span></a>
  <a class="vIUFYd" href="https://www.rottentomatoes.com/m/shawshank_redemption"><span class="gsrt">89%</span><span class="rhsB">Rotten Tomatoes</span></a>
  <a class="vIUFYd" href="https://www.metacritic.com/movie/the-shawshank-redemption"><span class="gsrt">82%</span></a>
</div>
<div class="srBp4">98% liked this movie</div>
<div data-attrid="kc:/film/film:director"><span>Director</span>: <a>Frank Darabont</a></div>

<div data-attrid="kc:/film/film:media_actions_wholepage">
  <div role="button" class="nGOerd">Where to watch</div>
  <g-expandable-content aria-hidden="false">
    <a href="https://www.netflix.com/title/70005379"><div class="bclEt">Netflix</div><div class="rsj3fb">Subscription</div></a>
    <a href="https://tv.apple.com/movie/the-shawshank-redemption"><div class="bclEt">Apple TV</div></a>
    <a href="https://unnamed.example.com/watch"><span>nameless</span></a>
  </g-expandable-content>
</div>

<div data-attrid="action:watch_film">
  <g-expandable-container><div role="button">More options</div></g-expandable-container>
  <a href="https://tv.apple.com/movie/the-shawshank-redemption"><div class="i3LlFf">Apple TV</div><span class="uiKXTe">$3.99</span></a>
  <a href="https://play.google.com/store/movies/details?id=shawshank"><div class="ZYHQ7e">Free with ads</div></a>
  <a href="https://www.primevideo.com/detail/shawshank"><div class="i3LlFf">Prime Video</div><span class="uiKXTe">$14.00</span></a>
</div>

<div class="fOYFme"><a href="https://www.vudu.com/content/movies/details/shawshank">Watch</a><span class="uiKXTe">$19.99</span></div>
</body></html>`
