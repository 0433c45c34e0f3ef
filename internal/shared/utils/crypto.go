package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hache un mot de passe avec bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hachage du mot de passe impossible: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compare un mot de passe à son hash bcrypt
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateTemporaryPassword format "Temp" + 8 caractères aléatoires + "!"
func GenerateTemporaryPassword() string {
	return "Temp" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8] + "!"
}
