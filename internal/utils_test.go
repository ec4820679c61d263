package internal

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mina", "Mina"},
		{"민아", "민아"},
		{"Mina Kim", "Mina_Kim"},
		{"  padded  ", "padded"},
		{"a/b\\c:d", "a_b_c_d"},
		{"class-3_b", "class-3_b"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
