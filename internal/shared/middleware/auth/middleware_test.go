package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/shared/jwt"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/requestctx"
)

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

func setup(t *testing.T) (*gin.Engine, *jwt.Manager, *fakeBlacklist) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := jwt.NewManager(&jwt.Config{Secret: "secret-de-test-suffisamment-long-123", TTL: time.Hour, Issuer: "test"})
	bl := &fakeBlacklist{revoked: map[string]bool{}}
	m := NewAuthMiddleware(manager, bl, metrics.NewMetrics(), zap.NewNop())

	r := gin.New()
	r.GET("/protege", append(Protected(m), func(c *gin.Context) {
		actor := requestctx.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "role": c.GetString(ContextRole)})
	})...)
	r.GET("/admin", append(RequireRoles(m, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})...)
	return r, manager, bl
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_SansJeton(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, "/protege", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Non authentifié")
}

func TestAuthenticate_JetonInvalide(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, "/protege", "pas-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_JetonValide(t *testing.T) {
	r, manager, _ := setup(t)
	token, _, err := manager.GenerateAccessToken("u1", "a@b.c", models.RoleChefProjet)
	require.NoError(t, err)

	w := do(r, "/protege", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
	assert.Contains(t, w.Body.String(), models.RoleChefProjet)
}

func TestAuthenticate_JetonRevoque(t *testing.T) {
	r, manager, bl := setup(t)
	token, _, err := manager.GenerateAccessToken("u1", "a@b.c", models.RoleAdmin)
	require.NoError(t, err)
	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	bl.revoked[claims.ID] = true

	w := do(r, "/protege", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestAuthenticate_RedisIndisponible(t *testing.T) {
	r, manager, bl := setup(t)
	bl.err = errors.New("connexion refusée")
	token, _, err := manager.GenerateAccessToken("u1", "a@b.c", models.RoleAdmin)
	require.NoError(t, err)

	w := do(r, "/protege", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r, manager, _ := setup(t)

	pilote, _, err := manager.GenerateAccessToken("u2", "p@b.c", models.RolePiloteQualite)
	require.NoError(t, err)
	w := do(r, "/admin", pilote)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Accès refusé")

	admin, _, err := manager.GenerateAccessToken("u3", "ad@b.c", models.RoleAdmin)
	require.NoError(t, err)
	w = do(r, "/admin", admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
