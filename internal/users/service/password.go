package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/meanstack/userapi/internal/users"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooShort is returned before hashing, since a hash always satisfies the
// stored minimum length.
var ErrPasswordTooShort = errors.New("password is too short")

// PasswordHasher transforms a submitted password into its stored form.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// PlainPasswords stores passwords as submitted.
type PlainPasswords struct{}

func (PlainPasswords) Hash(plain string) (string, error) { return plain, nil }

// BcryptHasher stores bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(plain string) (string, error) {
	if utf8.RuneCountInString(plain) < users.MinPasswordLength {
		return "", fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, users.MinPasswordLength)
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

