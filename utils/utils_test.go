package utils

import (
	"strings"
	"testing"
)

func TestNewOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewOrderID()
		if !strings.HasPrefix(id, "ord_") || len(id) != 10 {
			t.Fatalf("NewOrderID() = %q, want ord_ plus 6 chars", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Error("order ids do not vary")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"", 3, ""},
		{"héllo wörld", 4, "héll"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4111 1111 1111 1111", "4111111111111111"},
		{"4111-1111-1111-1111", "4111111111111111"},
		{"no digits", ""},
		{"", ""},
		{"a1b2c3", "123"},
	}

	for _, tt := range tests {
		if got := DigitsOnly(tt.in); got != tt.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

