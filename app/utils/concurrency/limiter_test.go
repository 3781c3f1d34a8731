package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterBoundsConcurrency(t *testing.T) {
	const width = 5
	const tasks = 40

	limiter := NewLimiter(width)

	var running int32
	var peak int32
	var wg sync.WaitGroup

	for i := 0; i < tasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := limiter.Run(context.Background(), func() error {
				now := atomic.AddInt32(&running, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(width))
	assert.Greater(t, atomic.LoadInt32(&peak), int32(0))
}

func TestLimiterFailureDoesNotBlockOthers(t *testing.T) {
	limiter := NewLimiter(2)
	boom := errors.New("boom")

	var wg sync.WaitGroup
	var okCount int32
	var errCount int32

	for i := 0; i < 10; i++ {
		wg.Add(1)
		fail := i%2 == 0
		go func() {
			defer wg.Done()
			err := limiter.Run(context.Background(), func() error {
				if fail {
					return boom
				}
				return nil
			})
			if err != nil {
				atomic.AddInt32(&errCount, 1)
			} else {
				atomic.AddInt32(&okCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5, okCount)
	assert.EqualValues(t, 5, errCount)
}

func TestLimiterRespectsContext(t *testing.T) {
	limiter := NewLimiter(1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = limiter.Run(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := limiter.Run(ctx, func() error { return nil })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestLimiterWidthFloor(t *testing.T) {
	assert.Equal(t, 1, NewLimiter(0).Width())
	assert.Equal(t, 5, NewLimiter(5).Width())
}
