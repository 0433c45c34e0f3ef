package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qualite-pro-core/internal/shared/models"
)

func TestNormaliserEtat(t *testing.T) {
	cases := map[string]string{
		"En cours":   models.EtatEnCours,
		"Terminé":    models.EtatTermine,
		"Bloqué":     models.EtatBloque,
		"En attente": models.EtatEnAttente,
		"Validé":     models.EtatValide,
		"EN_COURS":   models.EtatEnCours,
		"valide":     models.EtatValide,
		" termine ":  models.EtatTermine,
		"":           "",
		"Abandonné":  "ABANDONNÉ",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormaliserEtat(in), in)
	}
}
