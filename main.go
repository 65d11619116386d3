package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ybelaid/dzadscraper/config"
	"ybelaid/dzadscraper/internal/browser"
	"ybelaid/dzadscraper/internal/scraper"
	"ybelaid/dzadscraper/logger"
	"ybelaid/dzadscraper/services/cache"
	"ybelaid/dzadscraper/services/sink"
	"ybelaid/dzadscraper/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("crawl_interval", cfg.CrawlInterval).
		Strs("sinks", cfg.Sinks).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Create site scrapers
	scrapers := scraper.CreateScrapers(&cfg, services.Cache, services.Browser)
	if len(scrapers) == 0 {
		log.Fatal().Msg("No site scrapers were created")
	}

	// Create and start worker
	w := worker.NewWorker(scrapers, services.Sinks, services.Cache, cfg.CrawlInterval, cfg.SeenTTL)

	workerDone := make(chan struct{})
	go func() {
		log.Info().Msg("Starting scrape worker")
		w.Start(ctx)
		close(workerDone)
	}()

	// Wait for shutdown signal or worker exit
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case <-workerDone:
		log.Info().Msg("Worker exited")
	}

	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache   cache.CacheService
	Browser *browser.Browser
	Sinks   []sink.Sink
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	for _, sk := range s.Sinks {
		if err := sk.Close(); err != nil {
			logger.LogError(sk.Name(), err, "Failed to close sink")
		}
	}
	if s.Browser != nil {
		s.Browser.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize cache service
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	if cacheService == nil {
		return nil, fmt.Errorf("failed to create cache service")
	}
	services.Cache = cacheService

	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Initialize headless browser
	services.Browser = browser.New(cfg.BrowserHeadless, cfg.BrowserUserAgent)

	// Initialize output sinks in configured order
	for _, name := range cfg.Sinks {
		sk, err := createSink(name, cfg)
		if err != nil {
			services.Cleanup()
			return nil, err
		}
		services.Sinks = append(services.Sinks, sk)
		logger.Info("Initialized sink %s", name)
	}

	return services, nil
}

func createSink(name string, cfg *config.Config) (sink.Sink, error) {
	switch name {
	case "jsonfile":
		return sink.NewJSONFile(cfg.OutputDir), nil
	case "redis":
		return sink.NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.IndexMaxLength), nil
	case "postgres":
		return sink.NewPostgres(cfg.PostgresDSN)
	case "noop":
		return sink.NewNoop(), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", name)
	}
}
