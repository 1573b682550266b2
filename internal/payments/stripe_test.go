package payments

import (
	"errors"
	"testing"
)

func TestNewStripeProvider_MissingCredential(t *testing.T) {
	if _, err := NewStripeProvider(""); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}
