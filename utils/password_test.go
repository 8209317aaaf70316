package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/scrypt"
)

// legacyScryptHash builds a stored hash in the pre-bcrypt format.
func legacyScryptHash(t *testing.T, password string) string {
	t.Helper()
	const n, r, p, keyLen = 16384, 8, 1, 64

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatalf("salt generation failed: %v", err)
	}
	key, err := scrypt.Key([]byte(password), salt, n, r, p, keyLen)
	if err != nil {
		t.Fatalf("scrypt failed: %v", err)
	}
	return fmt.Sprintf("scrypt$N=%d,r=%d,p=%d,len=%d$%s$%s",
		n, r, p, keyLen, hex.EncodeToString(salt), hex.EncodeToString(key))
}

func TestHashPassword_RoundTrip(t *testing.T) {
	stored, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(stored, "bcrypt$") {
		t.Errorf("stored hash = %q, want bcrypt$ prefix", stored)
	}
	if !VerifyPassword("correct horse battery staple", stored) {
		t.Error("correct password did not verify")
	}
	if VerifyPassword("wrong password", stored) {
		t.Error("wrong password verified")
	}
}

func TestVerifyPassword_LegacyScrypt(t *testing.T) {
	stored := legacyScryptHash(t, "hunter2")

	if !VerifyPassword("hunter2", stored) {
		t.Error("correct password did not verify against legacy hash")
	}
	if VerifyPassword("hunter3", stored) {
		t.Error("wrong password verified against legacy hash")
	}
}

func TestVerifyPassword_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"untagged bcrypt", "$2a$10$abcdefghijklmnopqrstuv"},
		{"unknown algorithm", "argon2$whatever"},
		{"scrypt missing fields", "scrypt$N=16384,r=8,p=1,len=64$deadbeef"},
		{"scrypt bad params", "scrypt$nonsense$deadbeef$deadbeef"},
		{"scrypt non-hex salt", "scrypt$N=16384,r=8,p=1,len=4$zzzz$deadbeef"},
		{"scrypt key length mismatch", "scrypt$N=16384,r=8,p=1,len=64$deadbeef$deadbeef"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if VerifyPassword("anything", tc.stored) {
				t.Errorf("VerifyPassword(%q) = true, want false", tc.stored)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	current, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if NeedsRehash(current) {
		t.Error("fresh bcrypt hash flagged for rehash")
	}
	if !NeedsRehash(legacyScryptHash(t, "pw")) {
		t.Error("legacy scrypt hash not flagged for rehash")
	}
	if !NeedsRehash("no-separator") {
		t.Error("untagged value not flagged for rehash")
	}
}
