package util

import "testing"

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"  resume.pdf  ", "resume.pdf"},
		{"dir/resume.pdf", "dir_resume.pdf"},
		{"dir\\resume.pdf", "dir_resume.pdf"},
		{"../../etc/passwd", "upload.pdf"},
		{"", "upload.pdf"},
		{"\x00\x1f", "upload.pdf"},
		{"re\nsume.pdf", "resume.pdf"},
	}
	for _, tc := range cases {
		if got := SafeFileName(tc.in); got != tc.want {
			t.Fatalf("SafeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
