package system

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

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/system/controllers"
	"qualite-pro-core/internal/modules/system/queries"
	"qualite-pro-core/internal/modules/system/services"
	"qualite-pro-core/internal/shared/jwt"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

type noBlacklist struct{}

func (noBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error { return nil }
func (noBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error)       { return false, nil }

type probe struct {
	err error
}

func (p probe) Ping(ctx context.Context) error                    { return p.err }
func (p probe) Collections(ctx context.Context) ([]string, error) { return []string{"fiches_qualite"}, nil }
func (p probe) Connexions() (uint32, uint32)                      { return 1, 1 }

func (p probe) Stats(ctx context.Context) (*queries.DatabaseStats, error) {
	return &queries.DatabaseStats{Nom: "qualite_pro"}, nil
}

func setup(t *testing.T, mongoErr error) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := metrics.NewMetrics()
	manager := jwt.NewManager(&jwt.Config{Secret: "secret-de-test-suffisamment-long-123", TTL: time.Hour})
	mw := authMiddleware.NewAuthMiddleware(manager, noBlacklist{}, m, zap.NewNop())

	cfg := &config.Config{Environment: "development", Scheduler: config.SchedulerConfig{Enabled: true}}
	svc := services.NewSystemService(probe{err: mongoErr}, probe{}, cfg, zap.NewNop())

	r := gin.New()
	RegisterSystemRoutes(r, controllers.NewSystemController(svc), m, mw)
	return r, manager
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

func TestHealthEtReady(t *testing.T) {
	r, _ := setup(t, nil)

	assert.Equal(t, http.StatusOK, do(r, "/health", "").Code)

	w := do(r, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongodb"`)
}

func TestReady_MongoIndisponible(t *testing.T) {
	r, _ := setup(t, errors.New("server selection timeout"))

	w := do(r, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMetrics(t *testing.T) {
	r, _ := setup(t, nil)

	w := do(r, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestInfo_ReserveeAdmin(t *testing.T) {
	r, manager := setup(t, nil)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/system/info", "").Code)

	chef, _, err := manager.GenerateAccessToken("u2", "chef@qualite.fr", models.RoleChefProjet)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(r, "/api/system/info", chef).Code)

	admin, _, err := manager.GenerateAccessToken("u1", "admin@qualite.fr", models.RoleAdmin)
	require.NoError(t, err)
	w := do(r, "/api/system/info", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.0.0"`)
}
