package ass

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTime converts "H:MM:SS.CS" text into seconds.
func ParseTime(value string) (float64, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, &TimeParseError{Value: value, Component: "expected H:MM:SS.CS"}
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &TimeParseError{Value: value, Component: "hours", Err: err}
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &TimeParseError{Value: value, Component: "minutes", Err: err}
	}
	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 {
		return 0, &TimeParseError{Value: value, Component: "seconds.centiseconds"}
	}
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, &TimeParseError{Value: value, Component: "seconds", Err: err}
	}
	centis, err := strconv.Atoi(secParts[1])
	if err != nil {
		return 0, &TimeParseError{Value: value, Component: "centiseconds", Err: err}
	}
	if hours < 0 || minutes < 0 || seconds < 0 || centis < 0 {
		return 0, &TimeParseError{Value: value, Component: "negative component"}
	}
	return float64(hours*3600+minutes*60+seconds) + float64(centis)/100, nil
}

// FormatTime renders seconds as "H:MM:SS.CS", rounding to the nearest
// centisecond. Negative values clamp to zero.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Round(seconds * 100))
	cs := total % 100
	total /= 100
	s := total % 60
	total /= 60
	m := total % 60
	h := total / 60
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// SortKey quantizes a start time to whole milliseconds so near-equal floats
// order deterministically.
func SortKey(seconds float64) int64 {
	return int64(math.Floor(seconds * 1000))
}
