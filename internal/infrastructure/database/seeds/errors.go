package seeds

import "fmt"

// SeedingError représente une erreur de seeding
type SeedingError struct {
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implémente l'interface error
func (e *SeedingError) Error() string {
	return e.Message
}

func NewSeedingError(message, errorType string, details map[string]interface{}) *SeedingError {
	return &SeedingError{
		Message: message,
		Type:    errorType,
		Details: details,
	}
}

// Erreurs prédéfinies pour le seeding
var (
	ErrAdminConfig = func(champ string) error {
		return NewSeedingError(
			fmt.Sprintf("configuration de l'administrateur incomplète: %s manquant", champ),
			"admin_config",
			map[string]interface{}{"champ": champ},
		)
	}

	ErrSeedFailed = func(seed string, err error) error {
		return NewSeedingError(
			fmt.Sprintf("seeding %s échoué: %v", seed, err),
			"seed_failed",
			map[string]interface{}{"seed": seed},
		)
	}
)
