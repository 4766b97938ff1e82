package utils

import "time"

// PrettyDate formats a time for human-readable Telegram messages.
func PrettyDate(t time.Time) string {
	return t.Format("02-Jan-2006 15:04")
}
