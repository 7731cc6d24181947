package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := h.Verify("secret123", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected correct password to verify")
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail verification")
	}
}

func TestBcryptHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected salted hashes to differ between calls")
	}
}

func TestBcryptNeedsRehash(t *testing.T) {
	low := NewBcryptHasher(bcrypt.MinCost)
	hash, err := low.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if low.NeedsRehash(hash) {
		t.Error("hash at current cost should not need a rehash")
	}

	high := NewBcryptHasher(bcrypt.MinCost + 1)
	if !high.NeedsRehash(hash) {
		t.Error("hash at a lower cost should need a rehash")
	}
	if !high.NeedsRehash("not-a-bcrypt-hash") {
		t.Error("unparseable hash should need a rehash")
	}
}

func TestBcryptCostClamped(t *testing.T) {
	h := NewBcryptHasher(100)
	if h.cost != bcrypt.MaxCost {
		t.Errorf("expected cost clamped to %d, got %d", bcrypt.MaxCost, h.cost)
	}
	h = NewBcryptHasher(-1)
	if h.cost != bcrypt.MinCost {
		t.Errorf("expected cost clamped to %d, got %d", bcrypt.MinCost, h.cost)
	}
}

func TestArgon2HashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(Argon2Params{})

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC format hash, got %s", hash)
	}

	ok, err := h.Verify("secret123", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected correct password to verify")
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail verification")
	}
}

func TestArgon2NeedsRehash(t *testing.T) {
	h := NewArgon2Hasher(DefaultArgon2Params())
	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.NeedsRehash(hash) {
		t.Error("hash at current params should not need a rehash")
	}

	stronger := DefaultArgon2Params()
	stronger.Iterations++
	if !NewArgon2Hasher(stronger).NeedsRehash(hash) {
		t.Error("hash at weaker params should need a rehash")
	}
	if !h.NeedsRehash("$argon2id$garbage") {
		t.Error("unparseable hash should need a rehash")
	}
}

func TestDecodeArgon2HashErrors(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$a2V5"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$a2V5"},
		{"bad params", "$argon2id$v=19$bogus$c2FsdA$a2V5"},
		{"bad salt", "$argon2id$v=19$m=65536,t=3,p=2$!!$a2V5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := decodeArgon2Hash(tt.hash); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}
