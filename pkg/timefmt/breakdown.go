package timefmt

import "time"

const (
	msPerHour   = int64(time.Hour / time.Millisecond)
	msPerMinute = int64(time.Minute / time.Millisecond)
	msPerSecond = int64(time.Second / time.Millisecond)
)

// Breakdown is an hours/minutes/seconds decomposition of a millisecond span.
type Breakdown struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Compute decomposes end-start into whole hours, minutes and seconds.
//
// The caller is expected to pass end >= start. An inverted interval is not
// rejected: the components come out negative and are rendered as-is.
func Compute(start, end time.Time) Breakdown {
	return FromMillis(end.UnixMilli() - start.UnixMilli())
}

// FromMillis decomposes a span given in milliseconds. The remainders use
// truncated modulo and each quotient is floored.
func FromMillis(total int64) Breakdown {
	return Breakdown{
		Hours:   floorDiv(total, msPerHour),
		Minutes: floorDiv(total%msPerHour, msPerMinute),
		Seconds: floorDiv(total%msPerMinute, msPerSecond),
	}
}

// Millis returns the span covered by the whole components of b.
func (b Breakdown) Millis() int64 {
	return b.Hours*msPerHour + b.Minutes*msPerMinute + b.Seconds*msPerSecond
}

// Duration returns b as a time.Duration.
func (b Breakdown) Duration() time.Duration {
	return time.Duration(b.Millis()) * time.Millisecond
}

// IsZero reports whether every component is zero.
func (b Breakdown) IsZero() bool {
	return b.Hours == 0 && b.Minutes == 0 && b.Seconds == 0
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
