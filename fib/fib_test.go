package fib

import "testing"

func TestEvenSum(t *testing.T) {
	tests := []struct {
		name     string
		limit    uint64
		expected uint64
	}{
		{name: "default limit", limit: DefaultLimit, expected: 4_613_732},
		{name: "below first even term", limit: 2, expected: 0},
		{name: "first even term", limit: 3, expected: 2},
		{name: "bound is exclusive", limit: 34, expected: 2 + 8},
		{name: "just above bound", limit: 35, expected: 2 + 8 + 34},
		{name: "zero", limit: 0, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvenSum(tt.limit); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
