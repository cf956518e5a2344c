// Package timefmt renders durations, relative times and dates for the
// status dashboard. The Czech word forms follow the wording used on the
// public status pages.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders b as "1 hodina, 2 minuty, 5 vteřin".
//
// Only non-zero hours and minutes are listed. Seconds are listed when
// non-zero or when nothing else was, so the result is never empty.
func FormatDuration(b Breakdown) string {
	return b.Render(DurationUnits)
}

// FormatTimeAgo renders the span from past to now in the instrumental case,
// e.g. "5 hodinami, 1 minutou". It keeps no state; callers wanting a live
// display re-invoke it on their own timer.
func FormatTimeAgo(past, now time.Time) string {
	return Compute(past, now).Render(AgoUnits)
}

// FormatSimpleDate renders t as "YYYY-MM-DD HH:MM" in the local time zone.
func FormatSimpleDate(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// Render joins the components of b using the given unit words.
func (b Breakdown) Render(units Units) string {
	parts := make([]string, 0, 3)
	if b.Hours > 0 {
		parts = append(parts, component(b.Hours, units.Hours))
	}
	if b.Minutes > 0 {
		parts = append(parts, component(b.Minutes, units.Minutes))
	}
	if b.Seconds > 0 || len(parts) == 0 {
		parts = append(parts, component(b.Seconds, units.Seconds))
	}
	return strings.Join(parts, ", ")
}

// String implements fmt.Stringer using the Czech duration forms.
func (b Breakdown) String() string {
	return FormatDuration(b)
}

func component(n int64, words Selector) string {
	return fmt.Sprintf("%d %s", n, words.Select(n))
}
