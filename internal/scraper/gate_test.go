package scraper

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ybelaid/dzadscraper/logger"
)

func TestGateRunsAllJobs(t *testing.T) {
	g := NewGate(3)

	var count int64
	for i := 0; i < 20; i++ {
		g.Go(func() {
			atomic.AddInt64(&count, 1)
		})
	}
	g.Wait()

	assert.Equal(t, int64(20), count)
}

func TestGateBoundsConcurrency(t *testing.T) {
	const limit = 3
	g := NewGate(limit)

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 15; i++ {
		g.Go(func() {
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		})
	}
	g.Wait()

	assert.LessOrEqual(t, maxSeen, limit)
	assert.Greater(t, maxSeen, 0)
}

func TestGateMinimumSize(t *testing.T) {
	g := NewGate(0)
	done := false
	g.Go(func() { done = true })
	g.Wait()
	assert.True(t, done)
}

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := withRetry(logger.ForScraper("test"), "listing page", listingAttempts, func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRecovers(t *testing.T) {
	calls := 0
	err := withRetry(logger.ForScraper("test"), "listing page", listingAttempts, func() error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryExhausted(t *testing.T) {
	sentinel := errors.New("down")
	calls := 0
	err := withRetry(logger.ForScraper("test"), "listing page", listingAttempts, func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, listingAttempts, calls)
}
