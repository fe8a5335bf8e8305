// Package dateparse normalizes user-typed dates into the canonical
// YYYY-MM-DD form, suggesting a completion when the input is recognizable
// but missing a full year.
package dateparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind classifies the outcome of normalizing a raw date string.
type Kind int

const (
	// Invalid means the input matched no recognized shape.
	Invalid Kind = iota
	// Confident means the input resolved to a single canonical date.
	Confident
	// Ambiguous means the input was date-shaped but short a year;
	// Result.Suggestion carries the proposed completion.
	Ambiguous
)

// Result is the outcome of Normalize.
type Result struct {
	Kind       Kind
	Date       string // set when Kind == Confident
	Suggestion string // set when Kind == Ambiguous
}

// Entry dates are interpreted in the ledger's home timezone regardless of
// where the process runs.
var location = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

var (
	dayFirstFull  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)
	yearFirstFull = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})$`)
	dayMonthOnly  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})$`)
	twoDigitYear  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{2})$`)
)

// Format renders a time as a canonical YYYY-MM-DD string in the home timezone.
func Format(t time.Time) string {
	return t.In(location).Format("2006-01-02")
}

// Normalize parses a user-typed date against the given reference instant.
// Shapes are tried in order and the first match wins; day and month values
// are padded but otherwise taken verbatim, so a calendar-impossible day
// passes through as given.
func Normalize(raw string, now time.Time) Result {
	input := strings.ToLower(strings.TrimSpace(raw))

	switch input {
	case "hoje":
		return Result{Kind: Confident, Date: Format(now)}
	case "ontem":
		return Result{Kind: Confident, Date: Format(now.In(location).AddDate(0, 0, -1))}
	}

	if m := dayFirstFull.FindStringSubmatch(input); m != nil {
		return Result{Kind: Confident, Date: fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))}
	}

	if m := yearFirstFull.FindStringSubmatch(input); m != nil {
		return Result{Kind: Confident, Date: fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))}
	}

	if m := dayMonthOnly.FindStringSubmatch(input); m != nil {
		year := now.In(location).Year()
		return Result{Kind: Ambiguous, Suggestion: fmt.Sprintf("%d-%s-%s", year, pad2(m[2]), pad2(m[1]))}
	}

	if m := twoDigitYear.FindStringSubmatch(input); m != nil {
		return Result{Kind: Ambiguous, Suggestion: fmt.Sprintf("20%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))}
	}

	return Result{Kind: Invalid}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
