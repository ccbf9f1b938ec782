package pkg

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const DefaultPasswordHashCost = 12

func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return BytesToString(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsPasswordHash tells a stored bcrypt hash apart from a plain-text password.
func IsPasswordHash(stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
