package worker

import (
	"context"
	"sync"
	"time"

	"ybelaid/dzadscraper/internal/record"
	"ybelaid/dzadscraper/internal/scraper"
	"ybelaid/dzadscraper/logger"
	"ybelaid/dzadscraper/services/cache"
	"ybelaid/dzadscraper/services/sink"
)

// Worker drives the scrape cycles: it runs every site scraper in
// parallel, assembles and dedups the results, and hands the surviving
// records to each configured sink. Identities of persisted records are
// marked in the cache so the next cycles skip ads already written.
type Worker struct {
	scrapers      []scraper.Scraper
	sinks         []sink.Sink
	cacheSvc      cache.CacheService
	assembler     *record.Assembler
	crawlInterval time.Duration
	seenTTL       time.Duration
	log           *logger.Logger
}

// NewWorker creates a new worker. A nil cache disables the cross-cycle
// seen marks; in-cycle dedup still applies.
func NewWorker(
	scrapers []scraper.Scraper,
	sinks []sink.Sink,
	cacheSvc cache.CacheService,
	crawlInterval time.Duration,
	seenTTL time.Duration,
) *Worker {
	return &Worker{
		scrapers:      scrapers,
		sinks:         sinks,
		cacheSvc:      cacheSvc,
		assembler:     record.NewAssembler(),
		crawlInterval: crawlInterval,
		seenTTL:       seenTTL,
		log:           logger.ForWorker(),
	}
}

// Start runs scrape cycles until the context is cancelled. The first
// cycle starts immediately.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.crawlInterval)
	defer ticker.Stop()

	for {
		start := time.Now()
		w.RunCycle(ctx)
		w.log.Info().Dur("elapsed", time.Since(start)).Msg("Scrape cycle finished")

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping")
			return
		case <-ticker.C:
		}
	}
}

// RunCycle executes one full scrape cycle: all sites in parallel, then
// dedup, then every sink. A failing site or sink never stops the rest.
func (w *Worker) RunCycle(ctx context.Context) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	var assembled []*record.Record

	for _, s := range w.scrapers {
		wg.Add(1)
		go func(s scraper.Scraper) {
			defer wg.Done()
			records := w.scrapeSite(ctx, s)
			mu.Lock()
			assembled = append(assembled, records...)
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	deduper := record.NewDeduper()
	records := w.filterSeen(deduper.Filter(assembled))
	w.log.Info().
		Int("assembled", len(assembled)).
		Int("unique", len(records)).
		Msg("Deduplicated records")

	if len(records) == 0 {
		return
	}

	written := false
	for _, sk := range w.sinks {
		if err := sk.Write(ctx, records); err != nil {
			logger.LogError(sk.Name(), err, "Sink write failed")
			continue
		}
		written = true
	}
	if !written {
		return
	}
	for _, r := range records {
		r.Status = record.StatusPersisted
		w.markSeen(r)
	}
}

// filterSeen drops records already persisted by an earlier cycle.
func (w *Worker) filterSeen(records []*record.Record) []*record.Record {
	if w.cacheSvc == nil {
		return records
	}
	out := records[:0]
	for _, r := range records {
		if _, err := w.cacheSvc.Get(cache.SeenKey(r.DedupKey())); err == nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (w *Worker) markSeen(r *record.Record) {
	if w.cacheSvc == nil || w.seenTTL <= 0 {
		return
	}
	if err := w.cacheSvc.Set(cache.SeenKey(r.DedupKey()), []byte("1"), w.seenTTL); err != nil {
		w.log.Warn().Err(err).Str("url", r.URL).Msg("Failed to mark record as seen")
	}
}

// scrapeSite runs one site scraper and assembles its items. Items
// without an identity URL are dropped; any other assembly failure only
// skips that item.
func (w *Worker) scrapeSite(ctx context.Context, s scraper.Scraper) []*record.Record {
	items, err := s.Scrape(ctx)
	if err != nil {
		logger.LogError(s.Name(), err, "Scrape failed")
		return nil
	}

	records := make([]*record.Record, 0, len(items))
	dropped := 0
	for _, item := range items {
		rec, err := w.assembler.Assemble(item)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		w.log.Warn().
			Str("site", s.Name()).
			Int("dropped", dropped).
			Msg("Dropped items without identity")
	}
	return records
}
