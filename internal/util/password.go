package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"unicode"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them invalidates stored hashes, so treat
// them as part of the schema.
const (
	passwordSaltLen = 16
	passwordHashLen = 32
	passwordTime    = 2
	passwordMemory  = 64 * 1024
	passwordThreads = 4
)

const minPasswordLength = 12

// ValidatePassword enforces the signup password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 12 characters long")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("password must include uppercase, lowercase, number, and special character")
	}
	return nil
}

// DerivePassword produces a fresh salt and the Argon2id hash of password
// under it.
func DerivePassword(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, errors.New("password cannot be empty")
	}
	salt = make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return deriveKey(password, salt), salt, nil
}

// VerifyPassword reports whether password hashes to expectedHash under salt.
// The comparison is constant time.
func VerifyPassword(password string, salt, expectedHash []byte) bool {
	if password == "" || len(salt) == 0 || len(expectedHash) == 0 {
		return false
	}
	candidate := deriveKey(password, salt)
	if len(candidate) != len(expectedHash) {
		return false
	}
	return subtle.ConstantTimeCompare(candidate, expectedHash) == 1
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, passwordTime, passwordMemory, passwordThreads, passwordHashLen)
}
