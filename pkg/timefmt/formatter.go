package timefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// Language selects the word set a Formatter renders with.
type Language string

const (
	LanguageCzech   Language = "cs"
	LanguageEnglish Language = "en"
)

// ParseLanguage maps a config or flag value to a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cs", "cz", "czech":
		return LanguageCzech, nil
	case "en", "english":
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("unsupported language: %s", s)
	}
}

// IsValid checks if the language is supported
func (l Language) IsValid() bool {
	switch l {
	case LanguageCzech, LanguageEnglish:
		return true
	default:
		return false
	}
}

// Formatter renders durations and relative times in one language. The zero
// value renders Czech. A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	lang Language
}

var czech = New(LanguageCzech)

// New creates a formatter for lang, falling back to Czech for unknown values.
func New(lang Language) *Formatter {
	if !lang.IsValid() {
		lang = LanguageCzech
	}
	return &Formatter{lang: lang}
}

// Language returns the formatter's language.
func (f *Formatter) Language() Language {
	if f == nil || f.lang == "" {
		return LanguageCzech
	}
	return f.lang
}

// Duration renders the span between start and end.
func (f *Formatter) Duration(start, end time.Time) string {
	return f.FormatBreakdown(Compute(start, end))
}

// FormatBreakdown renders an already computed breakdown.
func (f *Formatter) FormatBreakdown(b Breakdown) string {
	if f.Language() == LanguageEnglish {
		return durafmt.Parse(b.Duration()).LimitFirstN(3).String()
	}
	return FormatDuration(b)
}

// TimeAgo renders how long ago past was, seen from now.
func (f *Formatter) TimeAgo(past, now time.Time) string {
	if f.Language() == LanguageEnglish {
		return humanize.RelTime(past, now, "ago", "from now")
	}
	return FormatTimeAgo(past, now)
}

// SimpleDate renders t as "YYYY-MM-DD HH:MM" in local time. The layout is
// the same for every language.
func (f *Formatter) SimpleDate(t time.Time) string {
	return FormatSimpleDate(t)
}

// DurationBetween renders the interval given as ISO-8601 strings, rejecting
// malformed and inverted input. An empty end stands for now.
func (f *Formatter) DurationBetween(start, end string, now time.Time) (string, error) {
	from, to, err := ParseInterval(start, end, now)
	if err != nil {
		return "", err
	}
	return f.Duration(from, to), nil
}

// TimeAgoBetween is DurationBetween phrased as time ago.
func (f *Formatter) TimeAgoBetween(past, end string, now time.Time) (string, error) {
	from, to, err := ParseInterval(past, end, now)
	if err != nil {
		return "", err
	}
	return f.TimeAgo(from, to), nil
}
