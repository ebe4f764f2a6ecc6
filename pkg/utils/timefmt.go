package utils

import "time"

// FormatTime renders t as the two-digit "HH:MM" clock used next to chat
// bubbles, in local time.
func FormatTime(t time.Time) string {
	return t.Local().Format("15:04")
}
