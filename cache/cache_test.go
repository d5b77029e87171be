package cache

import (
	"testing"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string](10, time.Hour)
	defer c.Stop()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("hit on empty cache")
	}
	c.Set("k", "v")
	if got, ok := c.Get("k"); !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, ok)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[int](10, time.Minute)
	defer c.Stop()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired early")
	}
	now = now.Add(time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry returned")
	}
	c.evictExpired()
	if n := c.Len(); n != 0 {
		t.Errorf("Len after eviction = %d, want 0", n)
	}
}

func TestCache_Capacity(t *testing.T) {
	c := New[int](2, time.Hour)
	defer c.Stop()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("b", 3)
	if n := c.Len(); n != 2 {
		t.Fatalf("overwrite changed Len to %d", n)
	}
	c.Set("c", 4)
	if n := c.Len(); n != 2 {
		t.Errorf("Len = %d, want 2", n)
	}
	if got, ok := c.Get("c"); !ok || got != 4 {
		t.Errorf("newest entry missing")
	}
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := New[int](10, 0)
	defer c.Stop()
	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache returned a value")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("disabled cache stored %d entries", n)
	}
}

func TestKeys(t *testing.T) {
	a := GoogleKey(models.GoogleSearchRequest{SearchString: "The Shawshank Redemption", Region: "us"})
	b := GoogleKey(models.GoogleSearchRequest{SearchString: " the shawshank redemption ", Region: "US"})
	if a != b {
		t.Error("GoogleKey is sensitive to case or whitespace")
	}
	if a == GoogleKey(models.GoogleSearchRequest{SearchString: "The Shawshank Redemption", Region: "IN"}) {
		t.Error("GoogleKey ignores region")
	}
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key parts are not separated")
	}
	r1 := RatingsKey(models.RatingsRequest{IMDbID: "tt0111161"})
	r2 := RatingsKey(models.RatingsRequest{IMDbID: "tt0111161", RottenTomatoesURL: "m/x"})
	if r1 == r2 {
		t.Error("RatingsKey ignores the Rotten Tomatoes URL")
	}
}
