package util

import (
	"fmt"
	"time"
)

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// TimeAgo renders how long ago t was relative to now.
func TimeAgo(t, now time.Time) string {
	if !t.Before(now) {
		return "just now"
	}

	return FormatDuration(now.Sub(t)) + " ago"
}

// TokenPreview returns the leading n characters of an opaque token, for
// display without leaking the full value.
func TokenPreview(token string, n int) string {
	if len(token) <= n {
		return token
	}

	return token[:n] + "..."
}
