package scraper

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/go-rod/rod/lib/launcher"
)

// ErrBrowserNotFound means no Chrome or Chromium executable could be located.
var ErrBrowserNotFound = errors.New("no chrome or chromium executable found")

var linuxExtraLookup = []string{
	"google-chrome-stable",
	"chromium-browser",
	"/snap/bin/chromium",
	"/usr/lib/chromium/chromium",
}

// ResolveBrowser returns the executable to launch. An explicit override must
// exist; otherwise rod's lookup runs, then a few Linux package locations.
// Nothing is downloaded.
func ResolveBrowser(override string) (string, error) {
	if override != "" {
		if info, err := os.Stat(override); err != nil || info.IsDir() {
			return "", fmt.Errorf("browser executable %q: %w", override, ErrBrowserNotFound)
		}
		return override, nil
	}

	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}

	if runtime.GOOS == "linux" {
		for _, name := range linuxExtraLookup {
			if path, err := exec.LookPath(name); err == nil {
				return path, nil
			}
		}
	}
	return "", ErrBrowserNotFound
}
