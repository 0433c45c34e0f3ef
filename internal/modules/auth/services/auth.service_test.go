package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/auth/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/jwt"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

type accounts map[string]*models.Utilisateur

func (a accounts) FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error) {
	for _, u := range a {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (a accounts) FindByID(ctx context.Context, id string) (*models.Utilisateur, error) {
	u, ok := a[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return u, nil
}

type memoryAttempts struct {
	counts map[string]int64
	panne  bool
}

func (m *memoryAttempts) Count(ctx context.Context, email string) (int64, error) {
	if m.panne {
		return 0, errors.New("redis indisponible")
	}
	return m.counts[email], nil
}

func (m *memoryAttempts) Increment(ctx context.Context, email string) (int64, error) {
	if m.panne {
		return 0, errors.New("redis indisponible")
	}
	m.counts[email]++
	return m.counts[email], nil
}

func (m *memoryAttempts) Reset(ctx context.Context, email string) error {
	delete(m.counts, email)
	return nil
}

type memoryBlacklist map[string]time.Time

func (b memoryBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	b[jti] = until
	return nil
}

func (b memoryBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := b[jti]
	return ok, nil
}

type fixture struct {
	service   *AuthService
	user      *models.Utilisateur
	attempts  *memoryAttempts
	blacklist memoryBlacklist
	recorder  *portstest.Recorder
	metrics   *metrics.Metrics
	jwt       *jwt.Manager
}

func newFixture(t *testing.T) *fixture {
	hash, err := utils.HashPassword("MotDePasse1!")
	require.NoError(t, err)
	user := &models.Utilisateur{
		ID:       primitive.NewObjectID(),
		Nom:      "Durand",
		Email:    "chef@qualite.fr",
		Password: hash,
		Role:     models.RoleChefProjet,
		Actif:    true,
	}

	f := &fixture{
		user:      user,
		attempts:  &memoryAttempts{counts: map[string]int64{}},
		blacklist: memoryBlacklist{},
		recorder:  &portstest.Recorder{},
		metrics:   metrics.NewMetrics(),
		jwt:       jwt.NewManager(&jwt.Config{Secret: "secret-de-test-suffisamment-long-123", TTL: time.Hour}),
	}
	f.service = NewAuthService(accounts{user.ID.Hex(): user}, f.attempts, f.blacklist, f.jwt,
		validation.New(), f.recorder, f.metrics, zap.NewNop())
	return f
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "AppError attendue: %v", err)
	return appErr.Status
}

func TestLogin_Succes(t *testing.T) {
	f := newFixture(t)
	f.attempts.counts["chef@qualite.fr"] = 2

	resp, err := f.service.Login(context.Background(), dto.LoginRequest{Email: " Chef@Qualite.fr ", Password: "MotDePasse1!"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.Type)
	assert.Equal(t, models.RoleChefProjet, resp.User.Role)

	claims, err := f.jwt.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID.Hex(), claims.UserID)
	assert.NotEmpty(t, claims.ID)

	assert.NotContains(t, f.attempts.counts, "chef@qualite.fr", "le compteur est remis à zéro")
	assert.Equal(t, []string{models.ActionConnexion}, f.recorder.Actions())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues("success")))
}

func TestLogin_IdentifiantsInvalides(t *testing.T) {
	cases := []struct {
		name  string
		req   dto.LoginRequest
		setup func(*fixture)
	}{
		{"email inconnu", dto.LoginRequest{Email: "inconnu@qualite.fr", Password: "x"}, nil},
		{"mauvais mot de passe", dto.LoginRequest{Email: "chef@qualite.fr", Password: "faux"}, nil},
		{"compte inactif", dto.LoginRequest{Email: "chef@qualite.fr", Password: "MotDePasse1!"}, func(f *fixture) { f.user.Actif = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.setup != nil {
				tc.setup(f)
			}

			_, err := f.service.Login(context.Background(), tc.req)

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, appErr.Status)
			assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
			assert.EqualValues(t, 1, f.attempts.counts[tc.req.Email])
			assert.Empty(t, f.recorder.Entries)
		})
	}
}

func TestLogin_TropDeTentatives(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < MaxTentatives; i++ {
		_, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "chef@qualite.fr", Password: "faux"})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	}

	// même avec le bon mot de passe, la fenêtre est bloquée
	_, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "chef@qualite.fr", Password: "MotDePasse1!"})
	assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues("locked")))
}

func TestLogin_RedisIndisponible(t *testing.T) {
	f := newFixture(t)
	f.attempts.panne = true

	_, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "chef@qualite.fr", Password: "MotDePasse1!"})
	require.NoError(t, err)
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "pas-un-email"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Champs, "email")
	assert.Contains(t, appErr.Champs, "password")
}

func TestLogout_RevoqueJusquALExpiration(t *testing.T) {
	f := newFixture(t)
	resp, err := f.service.Login(context.Background(), dto.LoginRequest{Email: "chef@qualite.fr", Password: "MotDePasse1!"})
	require.NoError(t, err)
	claims, err := f.jwt.ParseToken(resp.Token)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), claims))
	require.NoError(t, f.service.Logout(context.Background(), claims), "idempotent")

	until, ok := f.blacklist[claims.ID]
	require.True(t, ok)
	assert.True(t, until.Equal(claims.ExpiresAt.Time))
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	claims := &jwt.Claims{UserID: f.user.ID.Hex(), Email: f.user.Email, Role: f.user.Role}

	me, err := f.service.Me(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "chef@qualite.fr", me.User.Email)

	f.user.Actif = false
	_, err = f.service.Me(context.Background(), claims)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = f.service.Me(context.Background(), &jwt.Claims{UserID: primitive.NewObjectID().Hex()})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
