package models

import "fmt"

// FormatFileSize renders a byte count the way the attachment card shows it:
// bytes under 1 KB, one decimal for KB, two decimals for MB.
func FormatFileSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
