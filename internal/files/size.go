package files

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count for humans, e.g. "1.5 KB".
// A nil or zero size is reported as "unknown".
func FormatSize(size *int64) string {
	if size == nil || *size == 0 {
		return "unknown"
	}
	s := float64(*size)
	for _, unit := range sizeUnits {
		if s < 1024 {
			return fmt.Sprintf("%.1f %s", s, unit)
		}
		s /= 1024
	}
	return fmt.Sprintf("%.1f TB", s)
}
