package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/prevenio/prevenio-backend/internal/normalization"
	"github.com/prevenio/prevenio-backend/internal/types"
)

func HashPassword(user *types.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	return nil
}

func CheckPassword(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

func NormalizeUserFields(user *types.User) {
	user.Username = normalization.ParseInputString(user.Username)
	user.Email = normalization.NormalizeEmail(user.Email)
	user.Password = normalization.ParseInputString(user.Password)
}

func ValidateNewUser(user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given")
	}
	if user.Username == "" {
		return fmt.Errorf("a username is required")
	}
	if user.Email == "" {
		return fmt.Errorf("an email is required")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required")
	}
	if !user.Role.Valid() {
		return fmt.Errorf("unknown role %q", user.Role)
	}
	return nil
}
