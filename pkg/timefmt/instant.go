package timefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidInstant is returned when a timestamp string cannot be parsed.
	ErrInvalidInstant = errors.New("invalid instant")

	// ErrInvertedInterval is returned when an interval ends before it starts.
	ErrInvertedInterval = errors.New("interval ends before it starts")
)

// zoneless layouts are interpreted in the local time zone.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

// ParseInstant parses an ISO-8601 date-time as produced by the status API
// (lastCurrentlyScraped, startTime, endTime) and truncates it to
// millisecond precision.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidInstant)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Truncate(time.Millisecond), nil
	}

	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Truncate(time.Millisecond), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
}

// ParseInterval parses the bounds of an interval. An empty end stands for
// now. Malformed input is reported as ErrInvalidInstant and an end before the
// start as ErrInvertedInterval.
func ParseInterval(start, end string, now time.Time) (from, to time.Time, err error) {
	if from, err = ParseInstant(start); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}

	to = now
	if strings.TrimSpace(end) != "" {
		if to, err = ParseInstant(end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is after %s",
			ErrInvertedInterval, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return from, to, nil
}

// DurationBetween is the checked string form of FormatDuration(Compute(start, end)).
// An empty end stands for the current time.
func DurationBetween(start, end string) (string, error) {
	return czech.DurationBetween(start, end, time.Now())
}

// TimeAgoSince is the checked string form of FormatTimeAgo. A past instant
// lying after now is reported as ErrInvertedInterval.
func TimeAgoSince(past string, now time.Time) (string, error) {
	return czech.TimeAgoBetween(past, "", now)
}

// SimpleDate is the checked string form of FormatSimpleDate.
func SimpleDate(s string) (string, error) {
	t, err := ParseInstant(s)
	if err != nil {
		return "", err
	}
	return FormatSimpleDate(t), nil
}
