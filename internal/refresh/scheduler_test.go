package refresh_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/arafato/fluentgo/internal/refresh"
	"github.com/stretchr/testify/require"
)

func TestSchedulerReloadNowRunsOnce(t *testing.T) {
	t.Parallel()

	var calls int32
	scheduler, err := refresh.NewScheduler("@every 1h", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, scheduler.ReloadNow(context.Background()))
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	t.Parallel()

	_, err := refresh.NewScheduler("not a cron spec", func(ctx context.Context) error { return nil })
	require.Error(t, err)
}
