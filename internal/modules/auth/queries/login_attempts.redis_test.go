package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qualite-pro-core/internal/infrastructure/database/redis"
)

func TestIdentifiant_CleValidePourToutEmail(t *testing.T) {
	g := redis.NewRedisKeyGenerator()

	for _, email := range []string{
		"awa+qualite@exemple.fr",
		"o'neil@exemple.fr",
		"élodie.kouamé@exemple.fr",
		"chef@qualite.fr",
	} {
		id := identifiant(email)
		assert.Len(t, id, 64, email)

		key, err := g.GenerateKey(patternTentatives, id)
		require.NoError(t, err, email)
		assert.Equal(t, "qualite_pro_auth_login:"+id, key)
	}
}

func TestIdentifiant_MemeCompteurApresNormalisation(t *testing.T) {
	assert.Equal(t, identifiant("awa+qualite@exemple.fr"), identifiant("  Awa+Qualite@Exemple.FR "))
	assert.NotEqual(t, identifiant("awa+qualite@exemple.fr"), identifiant("awa@exemple.fr"))
}
