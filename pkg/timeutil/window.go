// Package timeutil parses the short look-back windows used by `todo stats`.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var units = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": week, "wk": week, "wks": week, "week": week, "weeks": week,
}

// Window is a look-back period such as "1w" or "2d12h".
type Window time.Duration

// ParseWindow reads a sequence of <number><unit> pairs, e.g. "3d" or
// "1w2d6h". Spaces between pairs are allowed. The total must be positive.
func ParseWindow(input string) (Window, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("empty window")
	}

	var total time.Duration
	for s != "" {
		s = strings.TrimLeft(s, " ")
		n := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
		if n <= 0 {
			return 0, fmt.Errorf("invalid window segment %q", s)
		}
		value, err := strconv.ParseInt(s[:n], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid window value %q: %w", s[:n], err)
		}
		s = strings.TrimLeft(s[n:], " ")

		u := strings.IndexFunc(s, func(r rune) bool { return r < 'a' || r > 'z' })
		if u < 0 {
			u = len(s)
		}
		base, ok := units[s[:u]]
		if !ok {
			return 0, fmt.Errorf("unsupported window unit %q", s[:u])
		}
		total += time.Duration(value) * base
		s = s[u:]
	}

	if total <= 0 {
		return 0, fmt.Errorf("window must be greater than zero")
	}
	return Window(total), nil
}

// Since returns the start of the window ending at now.
func (w Window) Since(now time.Time) time.Time {
	return now.Add(-time.Duration(w))
}

// String renders w compactly using w, d, h, m and s.
func (w Window) String() string {
	d := time.Duration(w)
	if d <= 0 {
		return "0s"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}, {"s", time.Second}} {
		if d < u.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/u.size, u.label)
		d %= u.size
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
