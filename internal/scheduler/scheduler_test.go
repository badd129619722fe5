package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsprov "github.com/SscSPs/exchange_rates_app/internal/core/ports/providers"
	"github.com/SscSPs/exchange_rates_app/internal/providers"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ name string }

func (p stubProvider) Name() string { return p.name }
func (p stubProvider) Sync(context.Context) ([]domain.ExchangeRate, error) {
	return nil, nil
}

// blockingSync counts calls and blocks each one until release is closed.
type blockingSync struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingSync) SyncProvider(ctx context.Context, _ portsprov.RateProvider) (int, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return 0, nil
}

func TestAdd_InvalidSchedule(t *testing.T) {
	s := New(&blockingSync{release: make(chan struct{})}, nil)
	err := s.Add(providers.Scheduled{Provider: stubProvider{name: "ecb"}, Schedule: "whenever"})
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestJob_SkipsWhileRunning(t *testing.T) {
	syncer := &blockingSync{release: make(chan struct{})}
	s := New(syncer, nil)
	adapter := cronLogAdapter{logger: s.logger}
	job := cron.NewChain(cron.SkipIfStillRunning(adapter)).Then(s.job(providers.Scheduled{Provider: stubProvider{name: "ecb"}}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()
	require.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Second tick while the first is blocked returns immediately without syncing.
	job.Run()
	assert.Equal(t, int32(1), syncer.calls.Load())

	close(syncer.release)
	wg.Wait()
	job.Run()
	assert.Equal(t, int32(2), syncer.calls.Load())
}

func TestRun_FiresAndStopsOnCancel(t *testing.T) {
	syncer := &blockingSync{release: make(chan struct{})}
	close(syncer.release)
	s := New(syncer, nil)
	require.NoError(t, s.Add(providers.Scheduled{Provider: stubProvider{name: "ecb"}, Schedule: "@every 1s"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return syncer.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
