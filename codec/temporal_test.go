package codec

import (
	"testing"
	"time"
)

func TestFormatTime_FractionWidths(t *testing.T) {
	cases := []struct {
		ns   int
		want string
	}{
		{0, "12:42:01.000"},
		{1_000_000, "12:42:01.001"},
		{1_000, "12:42:01.000001"},
		{1, "12:42:01.000000001"},
		{123_456_789, "12:42:01.123456789"},
		{120_000_000, "12:42:01.120"},
		{123_450_000, "12:42:01.123450"},
	}
	for _, c := range cases {
		got := FormatTime(time.Date(0, 1, 1, 12, 42, 1, c.ns, time.UTC))
		if got != c.want {
			t.Fatalf("ns=%d: got %q, want %q", c.ns, got, c.want)
		}
	}
}

func TestFormatTime_ZeroSubSecond(t *testing.T) {
	if got := FormatTime(time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC)); got != "12:00:00.000" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	got := FormatDateTime(time.Date(2021, 3, 4, 5, 6, 7, 1_000, time.UTC))
	if got != "2021-03-04T05:06:07.000001" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)); got != "2021-03-04" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestParseTime_OptionalFraction(t *testing.T) {
	for _, in := range []string{"12:42:01", "12:42:01.5", "12:42:01.000000001"} {
		if _, err := ParseTime(in); err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
	}
	got, err := ParseTime("12:42:01.000001")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if got.Nanosecond() != 1_000 {
		t.Fatalf("unexpected nanos: %d", got.Nanosecond())
	}
	if _, err := ParseTime("25:00:00"); err == nil {
		t.Fatalf("expected error for invalid hour")
	}
}

func TestParseDateTime_RoundTrip(t *testing.T) {
	in := "2021-03-04T05:06:07.123456789"
	got, err := ParseDateTime(in)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if out := FormatDateTime(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestParseDateTime_DropsZone(t *testing.T) {
	got, err := ParseDateTime("2021-03-04T05:06:07Z")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if got.Hour() != 5 || got.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got)
	}
}
