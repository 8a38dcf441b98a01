package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/shutdown"
)

func TestWaitExecutesHooksOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- shutdown.Wait(ctx, time.Second, hook, hook)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestRunHooksReceiveLiveContext(t *testing.T) {
	hook := func(ctx context.Context) error {
		return ctx.Err()
	}

	require.NoError(t, shutdown.Run(context.Background(), time.Second, hook))
}

func TestRunJoinsHookErrors(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	err := shutdown.Run(context.Background(), time.Second,
		func(context.Context) error { return errFirst },
		func(context.Context) error { return nil },
		func(context.Context) error { return errSecond },
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)
}

func TestRunRespectsTimeout(t *testing.T) {
	slowHook := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	err := shutdown.Run(context.Background(), 100*time.Millisecond, slowHook)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
