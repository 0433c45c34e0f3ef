package queries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"qualite-pro-core/internal/shared/models"
)

func TestRetardsFilterExcludesOnlySoumis(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	filter := retardsFilter(now)

	assert.Equal(t, bson.M{"$lt": now}, filter["dateEcheance"])
	assert.Equal(t, bson.M{"$ne": models.FormulaireSoumis}, filter["statut"])
}

func TestARetarderFilterSkipsTerminalStatuses(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	filter := aRetarderFilter(now)

	assert.Equal(t, bson.M{"$lt": now}, filter["dateEcheance"])
	statut := filter["statut"].(bson.M)
	assert.ElementsMatch(t,
		[]string{models.FormulaireSoumis, models.FormulaireEnRetard, models.FormulaireAnnule},
		statut["$nin"],
	)
}
