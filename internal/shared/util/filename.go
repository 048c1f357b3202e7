package util

import "strings"

// SafeFileName strips path separators and control characters from a
// client-supplied file name so it can go into log fields untouched.
// Returns "upload.pdf" when nothing printable survives.
func SafeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" || strings.Contains(s, "..") {
		return "upload.pdf"
	}
	return s
}
