package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAssetID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid uuid", "8f14e45f-ceea-4671-94b5-08f0f1a0e57b", false},
		{"plain token", "hat-001", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 200), true},
		{"control character", "hat\x00id", true},
		{"newline", "hat\nid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseAssetID(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.String() != tt.input {
				t.Errorf("id = %q, want %q", id, tt.input)
			}
		})
	}
}

func TestNewAssetID(t *testing.T) {
	a := NewAssetID()
	b := NewAssetID()

	if a.IsZero() || b.IsZero() {
		t.Fatal("generated ids must not be zero")
	}
	if a == b {
		t.Error("consecutive ids must differ")
	}
	if _, err := ParseAssetID(a.String()); err != nil {
		t.Errorf("generated id must parse: %v", err)
	}
}
