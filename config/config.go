package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteOverride tweaks one site scraper from the sites file without
// touching the compiled-in defaults.
type SiteOverride struct {
	URL               string `yaml:"url"`
	MaxPages          int    `yaml:"max_pages"`
	DetailConcurrency int    `yaml:"detail_concurrency"`
	SettleDelayMs     int    `yaml:"settle_delay_ms"`
	Disabled          bool   `yaml:"disabled"`
}

// Config represents the application configuration
type Config struct {
	// Output sinks, in the order they are written to
	Sinks []string

	// JSON file sink
	OutputDir string

	// Redis document index sink
	RedisAddr      string
	RedisDB        int
	IndexMaxLength int

	// Postgres sink
	PostgresDSN string

	// Memcache configuration
	MemcacheAddr string

	// Crawler configuration
	CrawlInterval time.Duration
	SeenTTL       time.Duration

	// Headless browser configuration
	BrowserHeadless  bool
	BrowserUserAgent string

	// Per-site overrides loaded from SitesFile
	SitesFile string
	Sites     map[string]SiteOverride

	// Environment
	Environment string

	sitesFileErr error
}

// LoadConfig loads the configuration from environment variables with
// defaults, then merges the optional YAML sites file.
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	indexMaxLen, _ := strconv.Atoi(getEnv("INDEX_MAX_LENGTH", "5000"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "3600"))
	seenTTL, _ := strconv.Atoi(getEnv("SEEN_TTL_SECONDS", "259200"))

	cfg := Config{
		Sinks:            splitList(getEnv("OUTPUT_SINKS", "jsonfile")),
		OutputDir:        getEnv("OUTPUT_DIR", "./output"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          redisDB,
		IndexMaxLength:   indexMaxLen,
		PostgresDSN:      getEnv("POSTGRES_DSN", ""),
		MemcacheAddr:     getEnv("MEMCACHE_ADDR", "localhost:11211"),
		CrawlInterval:    time.Duration(crawlInterval) * time.Second,
		SeenTTL:          time.Duration(seenTTL) * time.Second,
		BrowserHeadless:  getEnv("BROWSER_HEADLESS", "true") != "false",
		BrowserUserAgent: getEnv("BROWSER_USER_AGENT", ""),
		SitesFile:        getEnv("SITES_FILE", ""),
		Sites:            map[string]SiteOverride{},
		Environment:      getEnv("DZADSCRAPER_ENVIRONMENT", "development"),
	}

	if cfg.SitesFile != "" {
		// Surfaced by Validate rather than here
		cfg.sitesFileErr = cfg.loadSitesFile()
	}

	return cfg
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.sitesFileErr != nil {
		return fmt.Errorf("sites file %s: %w", c.SitesFile, c.sitesFileErr)
	}
	if c.CrawlInterval <= 0 {
		return fmt.Errorf("crawl interval must be positive, got %v", c.CrawlInterval)
	}
	if len(c.Sinks) == 0 {
		return fmt.Errorf("at least one output sink is required")
	}
	for _, sink := range c.Sinks {
		switch sink {
		case "jsonfile":
			if c.OutputDir == "" {
				return fmt.Errorf("jsonfile sink requires OUTPUT_DIR")
			}
		case "redis":
			if c.RedisAddr == "" {
				return fmt.Errorf("redis sink requires REDIS_ADDR")
			}
		case "postgres":
			if c.PostgresDSN == "" {
				return fmt.Errorf("postgres sink requires POSTGRES_DSN")
			}
		case "noop":
		default:
			return fmt.Errorf("unknown sink %q", sink)
		}
	}
	return nil
}

// loadSitesFile merges per-site overrides from the YAML sites file.
func (c *Config) loadSitesFile() error {
	data, err := os.ReadFile(c.SitesFile)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &c.Sites)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
