package weather

import (
	"strings"
	"time"
)

// hourPrefix is the layout matched against upstream ISO timestamps to
// locate the current hour (e.g. "2024-03-01T14").
const hourPrefix = "2006-01-02T15"

// HourlyWindow extracts up to k forecast points starting strictly after
// the hour containing now. The current hour is found by prefix-matching
// its timestamp against the source series; if it is absent the window
// is empty. The parallel arrays are clamped to their shortest length.
func HourlyWindow(times []string, temps []float64, codes []int, now time.Time, k int) []HourPoint {
	n := len(times)
	if len(temps) < n {
		n = len(temps)
	}
	if len(codes) < n {
		n = len(codes)
	}
	if n == 0 || k <= 0 {
		return nil
	}

	prefix := now.Format(hourPrefix)
	current := -1
	for i := 0; i < n; i++ {
		if strings.HasPrefix(times[i], prefix) {
			current = i
			break
		}
	}
	if current < 0 {
		return nil
	}

	window := make([]HourPoint, 0, k)
	for i := current + 1; i < n && len(window) < k; i++ {
		window = append(window, HourPoint{
			Time:         times[i],
			TemperatureC: temps[i],
			Code:         codes[i],
			Condition:    ConditionForCode(codes[i]),
		})
	}
	return window
}
