package textutil

import "testing"

func TestSanitizePathComponent(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Dire Straits", "Dire Straits"},
		{"AC/DC", "AC_DC"},
		{"What's Going On?", "What_s Going On_"},
		{"  trimmed  ", "trimmed"},
		{"", "Unknown"},
		{"///", "Unknown"},
		{"St. Elsewhere_2-CD", "St. Elsewhere_2-CD"},
	}
	for _, tc := range cases {
		if got := SanitizePathComponent(tc.input); got != tc.want {
			t.Errorf("SanitizePathComponent(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeShoutingCase(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"MONEY FOR NOTHING", "Money For Nothing"},
		{"Dire Straits", "Dire Straits"},
		{"iTunes Session", "iTunes Session"},
		{"", ""},
		{"1999", "1999"},
	}
	for _, tc := range cases {
		if got := NormalizeShoutingCase(tc.input); got != tc.want {
			t.Errorf("NormalizeShoutingCase(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
