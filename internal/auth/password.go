// Package auth issues and verifies session credentials for board users.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used for stored credentials.
const PasswordCost = 12

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
