// Package fingerprint generates randomized desktop Chrome identities whose
// user agent, client hints and navigator properties agree with each other.
package fingerprint

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Platform values as reported by navigator.platform.
const (
	PlatformWindows = "Win32"
	PlatformMac     = "MacIntel"
)

const (
	brandNotABrand        = "Not A(Brand"
	brandNotABrandVersion = "8"
	brandChromium         = "Chromium"
	brandGoogleChrome     = "Google Chrome"
)

// Viewport is the browser window content size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Profile is one session's identity. It is immutable once generated.
type Profile struct {
	Viewport            Viewport `json:"viewport"`
	Timezone            string   `json:"timezone"`
	DeviceMemoryGiB     int      `json:"deviceMemoryGiB"`
	HardwareConcurrency int      `json:"hardwareConcurrency"`
	Platform            string   `json:"platform"`

	// ChromeVersion is the full version, e.g. "126.0.6478.127".
	ChromeVersion string `json:"chromeVersion"`
}

// Brand is one entry of the Sec-CH-UA brand list.
type Brand struct {
	Name    string
	Version string
}

var (
	viewports = []Viewport{
		{1920, 1080}, {1366, 768}, {1536, 864}, {1440, 900},
		{1280, 720}, {1600, 900}, {2560, 1440}, {1680, 1050},
	}
	timezones = []string{
		"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles",
		"Europe/London", "Europe/Berlin", "Europe/Paris", "Asia/Kolkata",
		"Asia/Singapore", "Australia/Sydney",
	}
	deviceMemories = []int{2, 4, 8, 16}
	concurrencies  = []int{2, 4, 6, 8}
	platforms      = []string{PlatformWindows, PlatformMac}
	chromeVersions = []string{
		"124.0.6367.207", "125.0.6422.142", "126.0.6478.127",
		"127.0.6533.120", "128.0.6613.138", "129.0.6668.90",
	}
)

// Generate returns a profile drawn uniformly from the candidate tables.
func Generate() Profile {
	return generate(rand.IntN)
}

// GenerateWith draws from r, for reproducible profiles.
func GenerateWith(r *rand.Rand) Profile {
	return generate(r.IntN)
}

func generate(intn func(int) int) Profile {
	return Profile{
		Viewport:            viewports[intn(len(viewports))],
		Timezone:            timezones[intn(len(timezones))],
		DeviceMemoryGiB:     deviceMemories[intn(len(deviceMemories))],
		HardwareConcurrency: concurrencies[intn(len(concurrencies))],
		Platform:            platforms[intn(len(platforms))],
		ChromeVersion:       chromeVersions[intn(len(chromeVersions))],
	}
}

// MajorVersion returns the leading component of ChromeVersion.
func (p Profile) MajorVersion() string {
	major, _, _ := strings.Cut(p.ChromeVersion, ".")
	return major
}

// UserAgent returns a reduced Chrome UA string for the profile's platform.
func (p Profile) UserAgent() string {
	var osToken string
	switch p.Platform {
	case PlatformMac:
		osToken = "Macintosh; Intel Mac OS X 10_15_7"
	default:
		osToken = "Windows NT 10.0; Win64; x64"
	}
	return fmt.Sprintf(
		"Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s.0.0.0 Safari/537.36",
		osToken, p.MajorVersion(),
	)
}

// ClientHintPlatform is the Sec-CH-UA-Platform value (unquoted).
func (p Profile) ClientHintPlatform() string {
	if p.Platform == PlatformMac {
		return "macOS"
	}
	return "Windows"
}

// PlatformVersion is the Sec-CH-UA-Platform-Version value (unquoted).
func (p Profile) PlatformVersion() string {
	if p.Platform == PlatformMac {
		return "14.5.0"
	}
	return "15.0.0"
}

// Brands returns the major-version brand list.
func (p Profile) Brands() []Brand {
	major := p.MajorVersion()
	return []Brand{
		{brandNotABrand, brandNotABrandVersion},
		{brandChromium, major},
		{brandGoogleChrome, major},
	}
}

// FullVersionList returns the full-version brand list.
func (p Profile) FullVersionList() []Brand {
	return []Brand{
		{brandNotABrand, brandNotABrandVersion + ".0.0.0"},
		{brandChromium, p.ChromeVersion},
		{brandGoogleChrome, p.ChromeVersion},
	}
}

// SecCHUA formats the Sec-CH-UA header value.
func (p Profile) SecCHUA() string {
	parts := make([]string, 0, 3)
	for _, b := range p.Brands() {
		parts = append(parts, fmt.Sprintf("%q;v=%q", b.Name, b.Version))
	}
	return strings.Join(parts, ", ")
}

// Headers returns the request header family matching UserAgent.
func (p Profile) Headers() map[string]string {
	return map[string]string{
		"User-Agent":         p.UserAgent(),
		"Accept-Language":    "en-US,en;q=0.9",
		"Sec-CH-UA":          p.SecCHUA(),
		"Sec-CH-UA-Mobile":   "?0",
		"Sec-CH-UA-Platform": fmt.Sprintf("%q", p.ClientHintPlatform()),
	}
}

// OverrideScript returns JavaScript to run before any page script. It pins
// navigator and screen properties to the profile.
func (p Profile) OverrideScript() string {
	return fmt.Sprintf(`(() => {
  const def = (obj, prop, value) => {
    try { Object.defineProperty(obj, prop, { get: () => value, configurable: true }); } catch (e) {}
  };
  def(Navigator.prototype, 'hardwareConcurrency', %d);
  def(Navigator.prototype, 'deviceMemory', %d);
  def(Navigator.prototype, 'platform', %q);
  def(Navigator.prototype, 'languages', ['en-US', 'en']);
  def(Screen.prototype, 'width', %d);
  def(Screen.prototype, 'height', %d);
  def(Screen.prototype, 'availWidth', %d);
  def(Screen.prototype, 'availHeight', %d);
  def(Screen.prototype, 'colorDepth', 24);
  def(Screen.prototype, 'pixelDepth', 24);
})();`,
		p.HardwareConcurrency, p.DeviceMemoryGiB, p.Platform,
		p.Viewport.Width, p.Viewport.Height,
		p.Viewport.Width, p.Viewport.Height-40,
	)
}
