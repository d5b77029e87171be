package fingerprint

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestGenerate_ValuesFromCandidateTables(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		p := GenerateWith(r)

		if !slices.Contains(viewports, p.Viewport) {
			t.Fatalf("viewport %v not a candidate", p.Viewport)
		}
		if !slices.Contains(timezones, p.Timezone) {
			t.Fatalf("timezone %q not a candidate", p.Timezone)
		}
		if !slices.Contains([]int{2, 4, 8, 16}, p.DeviceMemoryGiB) {
			t.Fatalf("deviceMemory %d out of range", p.DeviceMemoryGiB)
		}
		if !slices.Contains([]int{2, 4, 6, 8}, p.HardwareConcurrency) {
			t.Fatalf("hardwareConcurrency %d out of range", p.HardwareConcurrency)
		}
		if p.Platform != PlatformWindows && p.Platform != PlatformMac {
			t.Fatalf("platform %q unexpected", p.Platform)
		}
	}
}

func TestProfile_SignalsAgree(t *testing.T) {
	tests := []struct {
		platform   string
		uaToken    string
		chPlatform string
	}{
		{PlatformWindows, "Windows NT 10.0", `"Windows"`},
		{PlatformMac, "Macintosh; Intel Mac OS X", `"macOS"`},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			p := Profile{Platform: tt.platform, ChromeVersion: "126.0.6478.127"}
			h := p.Headers()

			if !strings.Contains(h["User-Agent"], tt.uaToken) {
				t.Errorf("UA %q does not match platform %s", h["User-Agent"], tt.platform)
			}
			if !strings.Contains(h["User-Agent"], "Chrome/126.0.0.0") {
				t.Errorf("UA %q missing major version", h["User-Agent"])
			}
			if !strings.Contains(h["Sec-CH-UA"], `"Google Chrome";v="126"`) {
				t.Errorf("Sec-CH-UA %q missing matching version", h["Sec-CH-UA"])
			}
			if h["Sec-CH-UA-Platform"] != tt.chPlatform {
				t.Errorf("Sec-CH-UA-Platform = %s, want %s", h["Sec-CH-UA-Platform"], tt.chPlatform)
			}
		})
	}
}

func TestProfile_FullVersionList(t *testing.T) {
	p := Profile{Platform: PlatformWindows, ChromeVersion: "128.0.6613.138"}
	for _, b := range p.FullVersionList()[1:] {
		if b.Version != "128.0.6613.138" {
			t.Errorf("brand %s version = %s, want full version", b.Name, b.Version)
		}
	}
}

func TestProfile_OverrideScript(t *testing.T) {
	p := Profile{
		Viewport:            Viewport{1440, 900},
		DeviceMemoryGiB:     8,
		HardwareConcurrency: 6,
		Platform:            PlatformMac,
	}
	js := p.OverrideScript()

	for _, want := range []string{"'hardwareConcurrency', 6", "'deviceMemory', 8", `'platform', "MacIntel"`, "'width', 1440"} {
		if !strings.Contains(js, want) {
			t.Errorf("override script missing %q", want)
		}
	}
}
