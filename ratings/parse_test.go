package ratings

import "testing"

func TestParseRatingCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"2.1M", 2100000, true},
		{"1.2M", 1200000, true},
		{"850K", 850000, true},
		{"534", 534, true},
		{"1,234", 1234, true},
		{"(2.9M)", 2900000, true},
		{"10K+ Ratings", 10000, true},
		{"250,000+ Verified Ratings", 250000, true},
		{"339 Reviews", 339, true},
		{"12 Movies", 12, true},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tt := range tests {
		got := ParseRatingCount(tt.in)
		if !tt.ok {
			if got != nil {
				t.Errorf("ParseRatingCount(%q) = %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParseRatingCount(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"91%", 91, true},
		{" 87 ", 87, true},
		{"100%", 100, true},
		{"0%", 0, true},
		{"--", 0, false},
		{"1234", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got := ParsePercent(tt.in)
		if !tt.ok {
			if got != nil {
				t.Errorf("ParsePercent(%q) = %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParsePercent(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	if got := ParseDecimal("9.3/10"); got == nil || *got != 9.3 {
		t.Errorf("ParseDecimal(9.3/10) = %v, want 9.3", got)
	}
	if got := ParseDecimal("8"); got == nil || *got != 8 {
		t.Errorf("ParseDecimal(8) = %v, want 8", got)
	}
	if got := ParseDecimal("no rating"); got != nil {
		t.Errorf("ParseDecimal(no rating) = %v, want nil", *got)
	}
}

func TestStripLabel(t *testing.T) {
	tests := []struct {
		in, label, want string
	}{
		{"Critics Consensus: Hope endures.", criticsLabel, "Hope endures."},
		{"critics consensus:   Hope\n endures.", criticsLabel, "Hope endures."},
		{"Hope endures.", criticsLabel, "Hope endures."},
		{"AUDIENCE SAYS: Loved it", audienceLabel, "Loved it"},
		{"Critics Consensus:", criticsLabel, ""},
	}
	for _, tt := range tests {
		if got := stripLabel(tt.in, tt.label); got != tt.want {
			t.Errorf("stripLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstNonNil(t *testing.T) {
	a, b := 1, 2
	got, src := firstNonNil(cand[int]("x", nil), cand("y", &a), cand("z", &b))
	if got == nil || *got != 1 || src != "y" {
		t.Errorf("firstNonNil = (%v, %q), want (1, y)", got, src)
	}
	got, src = firstNonNil(cand[int]("x", nil))
	if got != nil || src != "" {
		t.Errorf("firstNonNil(all nil) = (%v, %q), want (nil, \"\")", got, src)
	}
}
