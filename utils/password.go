package utils

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

// Stored password hashes are tagged with their algorithm so verification
// dispatches explicitly instead of guessing by trial and error:
//
//	bcrypt$<bcrypt-encoded-hash>
//	scrypt$N=16384,r=8,p=1,len=64$<hex-salt>$<hex-key>   (legacy)
//
// New hashes are always bcrypt; scrypt entries are migrated on login.

const currentHashAlg = "bcrypt"

// HashPassword hashes a plaintext password with the current scheme.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return currentHashAlg + "$" + string(h), nil
}

// VerifyPassword checks a plaintext password against a tagged stored hash.
// Untagged or unknown-algorithm values never verify.
func VerifyPassword(password, stored string) bool {
	alg, rest, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	switch alg {
	case "bcrypt":
		return bcrypt.CompareHashAndPassword([]byte(rest), []byte(password)) == nil
	case "scrypt":
		return verifyScrypt(password, rest)
	default:
		return false
	}
}

// NeedsRehash reports whether a stored hash uses a scheme older than the
// current one.
func NeedsRehash(stored string) bool {
	alg, _, ok := strings.Cut(stored, "$")
	return !ok || alg != currentHashAlg
}

func verifyScrypt(password, rest string) bool {
	parts := strings.Split(rest, "$")
	if len(parts) != 3 {
		return false
	}

	var n, r, p, keyLen int
	if _, err := fmt.Sscanf(parts[0], "N=%d,r=%d,p=%d,len=%d", &n, &r, &p, &keyLen); err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != keyLen {
		return false
	}

	got, err := scrypt.Key([]byte(password), salt, n, r, p, keyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
