package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cost     int
		wantCost int
	}{
		{"valid cost", bcrypt.MinCost, bcrypt.MinCost},
		{"zero cost falls back to default", 0, bcrypt.DefaultCost},
		{"negative cost falls back to default", -1, bcrypt.DefaultCost},
		{"excessive cost falls back to default", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHasher(tt.cost)
			if h.cost != tt.wantCost {
				t.Errorf("expected cost %d, got %d", tt.wantCost, h.cost)
			}
		})
	}
}

func TestHasher_Hash(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest == "password123" {
		t.Error("digest must not equal the plaintext")
	}
	if !strings.HasPrefix(digest, "$2a$") {
		t.Errorf("expected bcrypt digest, got %q", digest)
	}

	// Hashing the same plaintext twice must produce different digests (per-digest salt).
	second, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest == second {
		t.Error("two digests of the same plaintext must differ")
	}
}

func TestHasher_Verify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	digest, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{"matching password", "correct horse battery staple", digest, true},
		{"wrong password", "wrong password", digest, false},
		{"empty password", "", digest, false},
		{"malformed digest", "anything", "not-a-bcrypt-digest", false},
		{"empty digest", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := h.Verify(tt.plaintext, tt.digest); got != tt.want {
				t.Errorf("Verify(%q, ...) = %v, want %v", tt.plaintext, got, tt.want)
			}
		})
	}
}
