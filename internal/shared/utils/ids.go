package utils

import "regexp"

var objectIDRegex = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// IsObjectID vrai pour un identifiant MongoDB hexadécimal de 24 caractères
func IsObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}
