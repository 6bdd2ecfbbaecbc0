package utils

import "fmt"

// TruncateString truncates s to maxLen characters, annotating the cut with
// the original length. Used to keep error messages and log events bounded.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
