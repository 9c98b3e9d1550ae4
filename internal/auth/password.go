// Package auth hashes and verifies stored passwords. Admin digests are bcrypt
// (written by cmd/createadmin); customer digests are argon2id.
package auth

import (
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost used when admin accounts are provisioned.
const BcryptCost = 10

var ErrUnknownScheme = errors.New("unknown password hash scheme")

func HashBcrypt(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func HashArgon2id(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// Verify compares password against digest, picking the scheme from the
// digest prefix. Anything that is not a recognised hash never matches.
func Verify(password, digest string) (bool, error) {
	switch {
	case isBcrypt(digest):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return err == nil, err
	case strings.HasPrefix(digest, "$argon2id$"):
		return argon2id.ComparePasswordAndHash(password, digest)
	default:
		return false, ErrUnknownScheme
	}
}

func isBcrypt(digest string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(digest, p) {
			return true
		}
	}
	return false
}
