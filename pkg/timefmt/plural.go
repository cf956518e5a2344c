package timefmt

// ThreeForms holds the nominative word forms of a Czech duration noun.
//
// Only exactly 2 selects Two; 3 and 4 fall through to Many even though
// standard Czech would use the "few" form for them. Displayed strings depend
// on this, so it is kept.
type ThreeForms struct {
	One  string
	Two  string
	Many string
}

// Select returns the form agreeing with n.
func (f ThreeForms) Select(n int64) string {
	switch n {
	case 1:
		return f.One
	case 2:
		return f.Two
	default:
		return f.Many
	}
}

// TwoForms holds the instrumental forms used after "před" ("5 minutami").
type TwoForms struct {
	One   string
	Other string
}

// Select returns Other for zero and counts above 1. Negative counts, which
// only an inverted interval produces, take One like 1 does.
func (f TwoForms) Select(n int64) string {
	if n > 1 || n == 0 {
		return f.Other
	}
	return f.One
}

// Selector picks a word form for a count.
type Selector interface {
	Select(n int64) string
}

// Units groups the selectors for hours, minutes and seconds.
type Units struct {
	Hours   Selector
	Minutes Selector
	Seconds Selector
}

var (
	// DurationUnits are the nominative forms used by FormatDuration.
	DurationUnits = Units{
		Hours:   ThreeForms{One: "hodina", Two: "hodiny", Many: "hodin"},
		Minutes: ThreeForms{One: "minuta", Two: "minuty", Many: "minut"},
		Seconds: ThreeForms{One: "vteřina", Two: "vteřiny", Many: "vteřin"},
	}

	// AgoUnits are the instrumental forms used by FormatTimeAgo.
	AgoUnits = Units{
		Hours:   TwoForms{One: "hodinou", Other: "hodinami"},
		Minutes: TwoForms{One: "minutou", Other: "minutami"},
		Seconds: TwoForms{One: "vteřinou", Other: "vteřinami"},
	}
)
