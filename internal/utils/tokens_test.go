package utils

import (
	"strconv"
	"testing"
)

func TestNewOTPCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := NewOTPCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		n, err := strconv.Atoi(code)
		if err != nil || len(code) != 6 {
			t.Fatalf("bad code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestNewRandomToken(t *testing.T) {
	a, err := NewRandomToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	b, _ := NewRandomToken(32)
	if a == b {
		t.Fatal("two tokens should not collide")
	}
}
