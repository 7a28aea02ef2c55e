package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseClock parses a wall-clock "HH:MM" string. Hours run 0-23.
func ParseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// NormalizeStartTime canonicalizes an event start time to "HH:MM". Accepts a
// clock string or an RFC3339/unix timestamp; returns ("", false) for anything
// else.
func NormalizeStartTime(s string) (string, bool) {
	if h, m, ok := ParseClock(s); ok {
		return fmt.Sprintf("%02d:%02d", h, m), true
	}
	if t, ok := ParseTime(s); ok {
		return t.Format("15:04"), true
	}
	return "", false
}
