package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"ybelaid/dzadscraper/internal/record"
	"ybelaid/dzadscraper/logger"
	apperr "ybelaid/dzadscraper/pkg/errors"
)

// Postgres persists records into a single ads table. The source URL is
// unique, so re-crawled ads are skipped instead of duplicated.
type Postgres struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgres opens the connection, waits for the server to come up and
// runs the schema migration.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	p := &Postgres{db: db, log: logger.ForSink("postgres")}
	if err := p.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS ads (
			id          SERIAL PRIMARY KEY,
			source      VARCHAR(50)  NOT NULL,
			url         TEXT         UNIQUE NOT NULL,
			vertical    VARCHAR(30)  NOT NULL,
			crawled_at  TIMESTAMPTZ  NOT NULL,
			verified_at TIMESTAMPTZ  NOT NULL,
			title       TEXT         NOT NULL DEFAULT '',
			description TEXT         NOT NULL DEFAULT '',
			category    TEXT         NOT NULL DEFAULT '',
			transaction TEXT         NOT NULL DEFAULT '',
			price_raw   TEXT         NOT NULL DEFAULT '',
			price       NUMERIC(16,2),
			price_unit  VARCHAR(20)  NOT NULL DEFAULT '',
			available   BOOLEAN      NOT NULL DEFAULT TRUE,
			wilaya      TEXT         NOT NULL DEFAULT '',
			commune     TEXT         NOT NULL DEFAULT '',
			images      TEXT[]       NOT NULL DEFAULT '{}',
			has_photo   BOOLEAN      NOT NULL DEFAULT FALSE,
			has_price   BOOLEAN      NOT NULL DEFAULT FALSE,
			attributes  JSONB        NOT NULL DEFAULT '{}'
		);

		CREATE INDEX IF NOT EXISTS idx_ads_vertical ON ads(vertical);
		CREATE INDEX IF NOT EXISTS idx_ads_source   ON ads(source);
		CREATE INDEX IF NOT EXISTS idx_ads_wilaya   ON ads(wilaya);
		CREATE INDEX IF NOT EXISTS idx_ads_price    ON ads(price);
	`)
	return err
}

func (p *Postgres) Name() string { return "postgres" }

// Write batch-inserts the records, skipping URLs already present. A
// failing sub-batch is logged and skipped; the remaining batches are
// still inserted.
func (p *Postgres) Write(ctx context.Context, records []*record.Record) error {
	if len(records) == 0 {
		return nil
	}

	const batchSize = 50
	written := 0
	failed := 0
	var lastErr error
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]
		if err := p.insertBatch(ctx, batch); err != nil {
			failed += len(batch)
			lastErr = err
			p.log.Warn().Int("records", len(batch)).Err(err).Msg("Failed to insert batch")
			continue
		}
		written += len(batch)
	}
	p.log.Info().Int("records", written).Msg("Persisted records")

	if failed > 0 {
		return apperr.NewPersist("postgres",
			fmt.Sprintf("%d of %d records failed", failed, len(records)), lastErr)
	}
	return nil
}

func (p *Postgres) insertBatch(ctx context.Context, batch []*record.Record) error {
	const cols = 19
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for _, r := range batch {
		attrs, err := json.Marshal(r.Attributes)
		if err != nil {
			p.log.Warn().Str("url", r.URL).Err(err).Msg("Failed to marshal attributes")
			continue
		}

		base := len(valueStrings) * cols
		placeholders := make([]string, cols)
		for c := 0; c < cols; c++ {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			r.Source, r.URL, string(r.Vertical), r.CrawledAt, r.VerifiedAt,
			r.Title, r.Description, r.Category, r.Transaction,
			r.PriceRaw, r.Price, r.PriceUnit, r.Available,
			r.Wilaya, r.Commune, pq.Array(r.Images), r.HasPhoto, r.HasPrice,
			attrs)
	}
	if len(valueStrings) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO ads (
			source, url, vertical, crawled_at, verified_at,
			title, description, category, transaction,
			price_raw, price, price_unit, available,
			wilaya, commune, images, has_photo, has_price, attributes
		)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := p.db.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		return apperr.NewPersist("postgres", "insert batch", err)
	}
	return nil
}

// Close closes the database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}
