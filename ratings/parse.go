// Package ratings parses rating-site pages into normalized records and
// fetches them for the IMDb and Rotten Tomatoes sources.
package ratings

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	suffixCountRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([KkMm])\b`)
	decimalRe     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	percentRe     = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// ParseRatingCount reads counts such as "2.1M", "850K", "1,234" or
// "250,000+ Ratings". A K or M suffix multiplies (rounded); otherwise every
// digit in the text is used. It returns nil when the text has no digits.
func ParseRatingCount(text string) *int64 {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return nil
	}
	if m := suffixCountRe.FindStringSubmatch(text); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			mult := 1e3
			if m[2] == "M" || m[2] == "m" {
				mult = 1e6
			}
			n := int64(math.Round(f * mult))
			return &n
		}
	}

	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseDecimal returns the first decimal number in text, e.g. 9.3 from "9.3/10".
func ParseDecimal(text string) *float64 {
	m := decimalRe.FindString(text)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

// ParsePercent returns a 0-100 score from text such as "91%" or "91".
func ParsePercent(text string) *int {
	m := percentRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 100 {
		return nil
	}
	return &n
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// stripLabel removes a leading label such as "Critics Consensus:",
// ignoring case, and trims the rest.
func stripLabel(text, label string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) >= len(label) && strings.EqualFold(text[:len(label)], label) {
		text = text[len(label):]
	}
	return strings.TrimSpace(text)
}
