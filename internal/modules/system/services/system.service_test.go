package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/modules/system/dto"
	"qualite-pro-core/internal/modules/system/queries"
)

type fakeDB struct {
	pingErr     error
	collections []string
	statsErr    error
}

func (f *fakeDB) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeDB) Collections(ctx context.Context) ([]string, error) {
	return f.collections, nil
}

func (f *fakeDB) Stats(ctx context.Context) (*queries.DatabaseStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &queries.DatabaseStats{Nom: "qualite_pro", Documents: 42, TailleOctets: 2048}, nil
}

type fakeCache struct {
	pingErr error
}

func (f *fakeCache) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeCache) Connexions() (uint32, uint32)   { return 4, 3 }

func newService(db *fakeDB, cache *fakeCache, cfg *config.Config) *SystemService {
	if cfg == nil {
		cfg = &config.Config{
			Environment: "development",
			Mail:        config.MailConfig{Provider: "smtp"},
			Scheduler:   config.SchedulerConfig{Enabled: true},
		}
	}
	return NewSystemService(db, cache, cfg, zap.NewNop())
}

func TestReady(t *testing.T) {
	cas := []struct {
		nom      string
		mongoErr error
		redisErr error
		status   string
		pret     bool
	}{
		{"tout répond", nil, nil, dto.StatusOK, true},
		{"redis absent", nil, errors.New("connection refused"), dto.StatusDegraded, true},
		{"mongo absent", errors.New("server selection timeout"), nil, dto.StatusDown, false},
	}
	for _, c := range cas {
		t.Run(c.nom, func(t *testing.T) {
			svc := newService(&fakeDB{pingErr: c.mongoErr}, &fakeCache{pingErr: c.redisErr}, nil)

			resp, pret := svc.Ready(context.Background())

			assert.Equal(t, c.pret, pret)
			assert.Equal(t, c.status, resp.Status)
			assert.Len(t, resp.Checks, 2)
		})
	}

	svc := newService(&fakeDB{}, &fakeCache{pingErr: errors.New("connection refused")}, nil)
	resp, _ := svc.Ready(context.Background())
	assert.Equal(t, "connection refused", resp.Checks["redis"].Erreur)
	assert.Empty(t, resp.Checks["mongodb"].Erreur)
}

func TestInfo(t *testing.T) {
	svc := newService(&fakeDB{collections: []string{"utilisateurs", "fiches_qualite"}}, &fakeCache{}, nil)
	svc.startedAt = time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return svc.startedAt.Add(90 * time.Minute) }

	info, err := svc.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Version, info.Application.Version)
	assert.Equal(t, int64(5400), info.Application.UptimeSecondes)
	assert.Equal(t, []string{"fiches_qualite", "utilisateurs"}, info.Database.Collections)
	assert.Equal(t, int64(42), info.Database.Documents)
	assert.True(t, info.Cache.Disponible)
	assert.Equal(t, uint32(4), info.Cache.Connexions)
	assert.Empty(t, info.Alertes)
}

func TestInfo_Alertes(t *testing.T) {
	cfg := &config.Config{
		Environment: "docker",
		Mail:        config.MailConfig{Provider: "console"},
	}
	svc := newService(&fakeDB{}, &fakeCache{pingErr: errors.New("timeout")}, cfg)

	info, err := svc.Info(context.Background())
	require.NoError(t, err)

	var niveaux []string
	for _, a := range info.Alertes {
		niveaux = append(niveaux, a.Niveau)
	}
	assert.Equal(t, []string{"WARNING", "WARNING", "INFO", "CRITICAL"}, niveaux)
	assert.False(t, info.Cache.Disponible)
}

func TestInfo_ErreurStats(t *testing.T) {
	svc := newService(&fakeDB{statsErr: errors.New("unauthorized")}, &fakeCache{}, nil)

	_, err := svc.Info(context.Background())
	assert.Error(t, err)
}
