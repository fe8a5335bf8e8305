package dateparse

import (
	"regexp"
	"testing"
	"time"
)

// Fixed reference instant: 2025-08-15 18:00 UTC = 15:00 in São Paulo.
var refNow = time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC)

var canonical = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantKind    Kind
		wantDate    string
		wantSuggest string
	}{
		{
			name:     "hoje keyword",
			input:    "hoje",
			wantKind: Confident,
			wantDate: "2025-08-15",
		},
		{
			name:     "hoje uppercase with spaces",
			input:    "  HOJE ",
			wantKind: Confident,
			wantDate: "2025-08-15",
		},
		{
			name:     "ontem keyword",
			input:    "ontem",
			wantKind: Confident,
			wantDate: "2025-08-14",
		},
		{
			name:     "day first full year",
			input:    "9/8/2025",
			wantKind: Confident,
			wantDate: "2025-08-09",
		},
		{
			name:     "day first full year with dashes",
			input:    "09-08-2025",
			wantKind: Confident,
			wantDate: "2025-08-09",
		},
		{
			name:     "year first",
			input:    "2025/8/9",
			wantKind: Confident,
			wantDate: "2025-08-09",
		},
		{
			name:     "year first canonical passthrough",
			input:    "2025-08-09",
			wantKind: Confident,
			wantDate: "2025-08-09",
		},
		{
			name:        "day month only suggests current year",
			input:       "9/8",
			wantKind:    Ambiguous,
			wantSuggest: "2025-08-09",
		},
		{
			name:        "two digit year suggests 20xx",
			input:       "9/8/25",
			wantKind:    Ambiguous,
			wantSuggest: "2025-08-09",
		},
		{
			name:        "two digit year old decade",
			input:       "1/1/09",
			wantKind:    Ambiguous,
			wantSuggest: "2009-01-01",
		},
		{
			name:     "free text",
			input:    "not a date",
			wantKind: Invalid,
		},
		{
			name:     "empty",
			input:    "",
			wantKind: Invalid,
		},
		{
			name:     "three digit year",
			input:    "9/8/202",
			wantKind: Invalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, refNow)
			if got.Kind != tt.wantKind {
				t.Fatalf("Normalize(%q).Kind = %v, want %v", tt.input, got.Kind, tt.wantKind)
			}
			if got.Date != tt.wantDate {
				t.Errorf("Normalize(%q).Date = %q, want %q", tt.input, got.Date, tt.wantDate)
			}
			if got.Suggestion != tt.wantSuggest {
				t.Errorf("Normalize(%q).Suggestion = %q, want %q", tt.input, got.Suggestion, tt.wantSuggest)
			}
			if got.Kind == Confident && !canonical.MatchString(got.Date) {
				t.Errorf("Normalize(%q).Date = %q, not canonical", tt.input, got.Date)
			}
			if got.Kind == Ambiguous && !canonical.MatchString(got.Suggestion) {
				t.Errorf("Normalize(%q).Suggestion = %q, not canonical", tt.input, got.Suggestion)
			}
		})
	}
}

// TestNormalize_TimezoneBoundary pins "hoje" to the home timezone: an instant
// that is already Aug 16 in UTC is still Aug 15 in São Paulo.
func TestNormalize_TimezoneBoundary(t *testing.T) {
	lateEvening := time.Date(2025, 8, 16, 1, 0, 0, 0, time.UTC)

	got := Normalize("hoje", lateEvening)
	if got.Date != "2025-08-15" {
		t.Errorf("Normalize(hoje) at UTC midnight boundary = %q, want 2025-08-15", got.Date)
	}

	got = Normalize("ontem", lateEvening)
	if got.Date != "2025-08-14" {
		t.Errorf("Normalize(ontem) at UTC midnight boundary = %q, want 2025-08-14", got.Date)
	}
}

// TestNormalize_CalendarLeniency pins the documented boundary: day and month
// are padded but never checked against the calendar. Changing this behavior
// is a contract change, not a fix.
func TestNormalize_CalendarLeniency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"31/2/2025", "2025-02-31"},
		{"99/99/2025", "2025-99-99"},
		{"0/0/2025", "2025-00-00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input, refNow)
			if got.Kind != Confident || got.Date != tt.want {
				t.Errorf("Normalize(%q) = %+v, want Confident %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format(refNow)
	if got != "2025-08-15" {
		t.Errorf("Format = %q, want 2025-08-15", got)
	}
}
