package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
		wantErr  bool
	}{
		{"", LanguageCzech, false},
		{"cs", LanguageCzech, false},
		{"CZ", LanguageCzech, false},
		{"en", LanguageEnglish, false},
		{" English ", LanguageEnglish, false},
		{"de", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestFormatter_Czech(t *testing.T) {
	f := New(LanguageCzech)
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, LanguageCzech, f.Language())
	assert.Equal(t, "1 hodina, 1 minuta, 1 vteřina", f.Duration(start, start.Add(3661*time.Second)))
	assert.Equal(t, "5 hodinami", f.TimeAgo(start, start.Add(5*time.Hour)))
	assert.Equal(t, FormatSimpleDate(start), f.SimpleDate(start))
}

func TestFormatter_English(t *testing.T) {
	f := New(LanguageEnglish)
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, LanguageEnglish, f.Language())
	assert.Equal(t, "1 hour 1 minute 1 second", f.Duration(start, start.Add(3661*time.Second)))
	assert.Equal(t, "5 hours ago", f.TimeAgo(start, start.Add(5*time.Hour)))
	assert.Equal(t, "2024-01-05 09:00", f.SimpleDate(time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local)))
}

func TestFormatter_Fallbacks(t *testing.T) {
	assert.Equal(t, LanguageCzech, New("xx").Language())

	var zero Formatter
	assert.Equal(t, LanguageCzech, zero.Language())
	assert.Equal(t, "2 hodiny", zero.FormatBreakdown(Breakdown{Hours: 2}))
}

func TestFormatter_CheckedStrings(t *testing.T) {
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	cs := New(LanguageCzech)
	s, err := cs.DurationBetween("2024-01-05T09:03:00Z", "2024-01-05T10:30:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, "1 hodina, 27 minut", s)

	s, err = cs.TimeAgoBetween("2024-01-05T11:58:00Z", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2 minutami", s)

	en := New(LanguageEnglish)
	s, err = en.TimeAgoBetween("2024-01-05T07:00:00Z", "", now)
	require.NoError(t, err)
	assert.Equal(t, "5 hours ago", s)

	_, err = cs.DurationBetween("2024-01-05T10:30:00Z", "2024-01-05T09:03:00Z", now)
	assert.ErrorIs(t, err, ErrInvertedInterval)

	_, err = en.TimeAgoBetween("yesterday", "", now)
	assert.ErrorIs(t, err, ErrInvalidInstant)
}
