package codec

import (
	"strconv"
	"strings"
	"time"
)

// Layouts accepted when parsing. A fractional second may follow the seconds
// field even though the layouts do not spell it out.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// ParseDate parses an ISO calendar date (yyyy-MM-dd).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseTime parses HH:mm:ss with an optional fraction of up to 9 digits.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, strings.TrimSpace(s))
}

// ParseDateTime parses yyyy-MM-ddTHH:mm:ss with an optional fraction. A
// trailing zone designator is accepted and discarded.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateTimeLayout, s)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
		return time.Date(t2.Year(), t2.Month(), t2.Day(), t2.Hour(), t2.Minute(), t2.Second(), t2.Nanosecond(), time.UTC), nil
	}
	return time.Time{}, err
}

// FormatDate renders yyyy-MM-dd.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatTime renders HH:mm:ss followed by a fraction of exactly 3, 6 or 9
// digits: 3 by default, 6 when the sub-millisecond part is non-zero, 9 when
// the sub-microsecond part is non-zero.
func FormatTime(t time.Time) string {
	b := make([]byte, 0, len(TimeLayout)+10)
	b = t.AppendFormat(b, TimeLayout)
	return string(appendFraction(b, t.Nanosecond()))
}

// FormatDateTime renders yyyy-MM-ddTHH:mm:ss with the FormatTime fraction.
func FormatDateTime(t time.Time) string {
	b := make([]byte, 0, len(DateTimeLayout)+10)
	b = t.AppendFormat(b, DateTimeLayout)
	return string(appendFraction(b, t.Nanosecond()))
}

// FractionWidth returns the number of fraction digits FormatTime uses for ns.
func FractionWidth(ns int) int {
	switch {
	case ns%1_000 != 0:
		return 9
	case ns%1_000_000 != 0:
		return 6
	default:
		return 3
	}
}

func appendFraction(b []byte, ns int) []byte {
	width := FractionWidth(ns)
	digits := strconv.Itoa(ns + 1_000_000_000)[1:] // zero-padded to 9
	b = append(b, '.')
	return append(b, digits[:width]...)
}
