package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// DefaultWindow is used when the scan window argument is missing or malformed.
const DefaultWindow = 28 * time.Minute

var windowPattern = regexp.MustCompile(`^(\d+)([mh])$`)

// ParseWindow parses a scan window such as "45m" or "2h".
func ParseWindow(arg string) (time.Duration, error) {
	m := windowPattern.FindStringSubmatch(arg)
	if m == nil {
		return 0, fmt.Errorf("invalid window %q: want <n>m or <n>h", arg)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: %w", arg, err)
	}

	unit := time.Minute
	if m[2] == "h" {
		unit = time.Hour
	}
	if n == 0 || n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid window %q: out of range", arg)
	}
	return time.Duration(n) * unit, nil
}

// WindowOrDefault returns the parsed window, or fallback together with the
// parse error so the caller can log it. An empty arg is not an error.
func WindowOrDefault(arg string, fallback time.Duration) (time.Duration, error) {
	if arg == "" {
		return fallback, nil
	}
	d, err := ParseWindow(arg)
	if err != nil {
		return fallback, err
	}
	return d, nil
}
