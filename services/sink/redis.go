package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ybelaid/dzadscraper/internal/record"
	"ybelaid/dzadscraper/internal/vertical"
	"ybelaid/dzadscraper/logger"
	apperr "ybelaid/dzadscraper/pkg/errors"
)

// Redis feeds the document index: every record is appended as a JSON
// payload to its vertical's stream (idx:<vertical>), and streams are
// trimmed to a maximum length after each batch so the index stays
// bounded.
type Redis struct {
	client    *redis.Client
	maxLength int64
	log       *logger.Logger
}

// NewRedis creates a Redis index sink.
func NewRedis(addr string, db int, maxLength int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &Redis{
		client:    client,
		maxLength: int64(maxLength),
		log:       logger.ForSink("redis"),
	}
}

func (r *Redis) Name() string { return "redis" }

// Write appends the batch to the per-vertical index streams. A record
// that fails to index is logged and skipped; the rest of the batch
// still goes through.
func (r *Redis) Write(ctx context.Context, records []*record.Record) error {
	touched := make(map[vertical.Vertical]int)
	failed := 0
	var lastErr error
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			failed++
			lastErr = err
			r.log.Warn().Str("url", rec.URL).Err(err).Msg("Failed to marshal record")
			continue
		}
		err = r.client.XAdd(ctx, &redis.XAddArgs{
			Stream: rec.Vertical.IndexName(),
			Values: map[string]interface{}{
				"record": payload,
			},
		}).Err()
		if err != nil {
			failed++
			lastErr = err
			r.log.Warn().Str("url", rec.URL).Err(err).Msg("Failed to index record")
			continue
		}
		touched[rec.Vertical]++
	}

	for v, count := range touched {
		if r.maxLength > 0 {
			if err := r.client.XTrimMaxLen(ctx, v.IndexName(), r.maxLength).Err(); err != nil {
				r.log.Warn().Str("index", v.IndexName()).Err(err).Msg("Failed to trim index")
			}
		}
		r.log.Info().
			Str("index", v.IndexName()).
			Int("records", count).
			Msg("Indexed records")
	}

	if failed > 0 {
		return apperr.NewPersist("redis",
			fmt.Sprintf("%d of %d records failed", failed, len(records)), lastErr)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
