package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseClock(t *testing.T) {
	h, m, ok := ParseClock("18:30")
	if !ok || h != 18 || m != 30 {
		t.Fatalf("got %d:%d ok=%v", h, m, ok)
	}
	for _, bad := range []string{"", "18", "24:00", "12:60", "aa:bb"} {
		if _, _, ok := ParseClock(bad); ok {
			t.Fatalf("%q should not parse", bad)
		}
	}
}

func TestNormalizeStartTime(t *testing.T) {
	got, ok := NormalizeStartTime("8:5")
	if !ok || got != "08:05" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	got, ok = NormalizeStartTime("2024-10-10T18:30:00Z")
	if !ok || got != "18:30" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := NormalizeStartTime("not a time"); ok {
		t.Fatalf("garbage should not normalize")
	}
}
