package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/notifications/dto"
)

type fakeDigester struct {
	calls   atomic.Int32
	release chan struct{}
}

func (f *fakeDigester) EnvoyerDigest(ctx context.Context) (*dto.DigestResult, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return &dto.DigestResult{}, nil
}

type fakeSweeper struct {
	bascules int
	err      error
	rappels  atomic.Int32
}

func (f *fakeSweeper) BasculerRetards(ctx context.Context) (int, error) {
	return f.bascules, f.err
}

func (f *fakeSweeper) RappelerEcheances(ctx context.Context, fenetre time.Duration) (int, error) {
	f.rappels.Add(1)
	return 0, nil
}

func schedulerConfig(enabled bool) config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:          enabled,
		DigestInterval:   10 * time.Millisecond,
		RetardInterval:   10 * time.Millisecond,
		EcheanceInterval: 10 * time.Millisecond,
	}
}

func jobNamed(s *Scheduler, name string) *job {
	for _, j := range s.jobs {
		if j.name == name {
			return j
		}
	}
	return nil
}

func TestRunOnce_IgnoreUnPassageConcurrent(t *testing.T) {
	digester := &fakeDigester{release: make(chan struct{})}
	s := newScheduler(schedulerConfig(true), digester, &fakeSweeper{}, metrics.NewMetrics(), zap.NewNop())
	j := jobNamed(s, JobDigest)
	require.NotNil(t, j)

	done := make(chan bool)
	go func() { done <- s.runOnce(context.Background(), j) }()

	require.Eventually(t, func() bool { return digester.calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.False(t, s.runOnce(context.Background(), j), "le second passage doit être ignoré")

	close(digester.release)
	assert.True(t, <-done)
	assert.EqualValues(t, 1, digester.calls.Load())
}

func TestRunOnce_RetardsMetriques(t *testing.T) {
	m := metrics.NewMetrics()
	sweeper := &fakeSweeper{bascules: 3}
	s := newScheduler(schedulerConfig(true), &fakeDigester{}, sweeper, m, zap.NewNop())

	s.runOnce(context.Background(), jobNamed(s, JobRetards))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FormulairesRetard))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchedulerRuns.WithLabelValues(JobRetards, "success")))

	sweeper.bascules, sweeper.err = 0, errors.New("mongo indisponible")
	s.runOnce(context.Background(), jobNamed(s, JobRetards))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchedulerRuns.WithLabelValues(JobRetards, "failure")))
}

func TestStartStop(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := newScheduler(schedulerConfig(true), &fakeDigester{}, sweeper, metrics.NewMetrics(), zap.NewNop())

	s.Start()
	require.Eventually(t, func() bool { return sweeper.rappels.Load() >= 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestStart_Desactive(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := newScheduler(schedulerConfig(false), &fakeDigester{}, sweeper, metrics.NewMetrics(), zap.NewNop())

	s.Start()
	time.Sleep(30 * time.Millisecond)

	assert.Zero(t, sweeper.rappels.Load())
	assert.NoError(t, s.Stop(context.Background()))
}
