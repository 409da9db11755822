package tokenest

import "testing"

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \t\n  ", 0},
		{"single word", "hello", 2},   // ceil(1 * 1.3) = 2
		{"two words", "hello world", 3}, // ceil(2 * 1.3) = 3
		{"ten words", "one two three four five six seven eight nine ten", 13},
		{"mixed whitespace", "one\n\ttwo   three", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.in); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
