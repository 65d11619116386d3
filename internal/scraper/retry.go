package scraper

import (
	"fmt"
	"time"

	"ybelaid/dzadscraper/logger"
)

// listing pages get one extra attempt; detail pages are fetched once.
const (
	listingAttempts = 2
	retryDelay      = 3 * time.Second
)

// withRetry executes fn up to attempts times with a fixed delay.
func withRetry(log *logger.Logger, operation string, attempts int, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt < attempts {
			log.Warn().
				Str("operation", operation).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("Retrying")
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}
