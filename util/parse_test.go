package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"10MB", 10 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"2GB", 2 * 1024 * 1024 * 1024},
		{"1024", 1024},
		{"  10MB  ", 10 * 1024 * 1024},
		{"10mb", 10 * 1024 * 1024},
		{"64 KB", 64 * 1024},
		{"100B", 100},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, 0); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSize_Default(t *testing.T) {
	defaultVal := int64(5 * 1024 * 1024)
	if got := ParseSize("", defaultVal); got != defaultVal {
		t.Errorf("expected default %d, got %d", defaultVal, got)
	}
	for _, in := range []string{"invalid", "10MBx", "-1MB", "MB"} {
		if got := ParseSize(in, defaultVal); got != defaultVal {
			t.Errorf("expected default %d for %q, got %d", defaultVal, in, got)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input  string
		prefix int
		want   string
	}{
		{"AIzaSyExampleGoogleKey", 4, "AIza***"},
		{"short", 10, "***"},
		{"exactly10!", 10, "***"},
		{"", 5, "***"},
		{"abcdef", 3, "abc***"},
		{"abcde", 3, "***"},
		{"anything", 0, "***"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := MaskSecret(tc.input, tc.prefix); got != tc.want {
				t.Errorf("MaskSecret(%q, %d) = %q, want %q", tc.input, tc.prefix, got, tc.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"A poem about the sea.", 100, "A poem about the sea."},
		{"A poem about the sea.", 6, "A poem..."},
		{"héllo wörld", 5, "héllo..."},
		{"anything", 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := Preview(tc.in, tc.n); got != tc.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
			}
		})
	}
}
