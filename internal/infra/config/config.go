package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Recommend RecommendConfig `yaml:"recommend"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Valkey    ValkeyConfig    `yaml:"valkey"`
	Photos    PhotoConfig     `yaml:"photos"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// RecommendConfig tunes the plant recommendation domain. Zero values for the
// scoring knobs mean the compiled-in domain defaults apply.
type RecommendConfig struct {
	DefaultLimit     int                `yaml:"defaultLimit"`
	MaxLimit         int                `yaml:"maxLimit"`
	CacheTTL         time.Duration      `yaml:"cacheTtl"`
	Workers          int                `yaml:"workers"`
	TrendingSize     int                `yaml:"trendingSize"`
	DefaultWeights   map[string]float64 `yaml:"defaultWeights"`
	MatchedThreshold float64            `yaml:"matchedThreshold"`
	SizeToleranceCm  float64            `yaml:"sizeToleranceCm"`
	PHTolerance      float64            `yaml:"phTolerance"`
	ZoneGapLimit     int                `yaml:"zoneGapLimit"`
}

// CatalogConfig tunes the plant catalog domain.
type CatalogConfig struct {
	MaxPhotoBytes int64 `yaml:"maxPhotoBytes"`
	SimilarLimit  int   `yaml:"similarLimit"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PhotoConfig contains S3-compatible object storage settings for plant photos.
type PhotoConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
		cfg.HTTP.AllowedOrigins = origins
	}
	if v := os.Getenv("RECOMMEND_DEFAULT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.DefaultLimit = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_MAX_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.MaxLimit = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Recommend.CacheTTL = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_WORKERS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.Workers = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_TRENDING_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.TrendingSize = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_MATCHED_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Recommend.MatchedThreshold = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_SIZE_TOLERANCE_CM"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Recommend.SizeToleranceCm = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_PH_TOLERANCE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Recommend.PHTolerance = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_ZONE_GAP_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.ZoneGapLimit = parsed
		}
	}
	if v := os.Getenv("CATALOG_MAX_PHOTO_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Catalog.MaxPhotoBytes = parsed
		}
	}
	if v := os.Getenv("CATALOG_SIMILAR_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.SimilarLimit = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Valkey.Addr = v
	}
	if v := os.Getenv("PHOTOS_ENDPOINT"); v != "" {
		cfg.Photos.Endpoint = v
	}
	if v := os.Getenv("PHOTOS_ACCESS_KEY"); v != "" {
		cfg.Photos.AccessKey = v
	}
	if v := os.Getenv("PHOTOS_SECRET_KEY"); v != "" {
		cfg.Photos.SecretKey = v
	}
	if v := os.Getenv("PHOTOS_BUCKET"); v != "" {
		cfg.Photos.Bucket = v
	}
	if v := os.Getenv("PHOTOS_REGION"); v != "" {
		cfg.Photos.Region = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		Recommend: RecommendConfig{
			DefaultLimit:     10,
			MaxLimit:         50,
			CacheTTL:         15 * time.Minute,
			Workers:          0,
			TrendingSize:     10,
			MatchedThreshold: 0.8,
			SizeToleranceCm:  30,
			PHTolerance:      0.5,
			ZoneGapLimit:     3,
		},
		Catalog: CatalogConfig{
			MaxPhotoBytes: 8 << 20,
			SimilarLimit:  5,
		},
		Postgres: PostgresConfig{
			DSN:      "",
			MaxConns: 4,
			MinConns: 0,
		},
		Valkey: ValkeyConfig{
			Enabled: false,
			Addr:    "",
		},
		Photos: PhotoConfig{
			Region: "auto",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Recommend.DefaultLimit <= 0 {
		return errors.New("recommend.defaultLimit must be positive")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return errors.New("recommend.maxLimit cannot be below recommend.defaultLimit")
	}
	if c.Recommend.CacheTTL < 0 {
		return errors.New("recommend.cacheTtl cannot be negative")
	}
	if c.Recommend.Workers < 0 {
		return errors.New("recommend.workers cannot be negative")
	}
	if c.Recommend.TrendingSize < 0 {
		return errors.New("recommend.trendingSize cannot be negative")
	}
	if c.Recommend.MatchedThreshold < 0 || c.Recommend.MatchedThreshold > 1 {
		return errors.New("recommend.matchedThreshold must be within [0,1]")
	}
	if c.Recommend.SizeToleranceCm < 0 {
		return errors.New("recommend.sizeToleranceCm cannot be negative")
	}
	if c.Recommend.PHTolerance < 0 {
		return errors.New("recommend.phTolerance cannot be negative")
	}
	if c.Recommend.ZoneGapLimit < 0 {
		return errors.New("recommend.zoneGapLimit cannot be negative")
	}
	if len(c.Recommend.DefaultWeights) > 0 {
		var total float64
		for name, weight := range c.Recommend.DefaultWeights {
			switch name {
			case "environmental", "design", "maintenance", "special", "context":
			default:
				return fmt.Errorf("recommend.defaultWeights: unknown category %q", name)
			}
			if weight < 0 {
				return fmt.Errorf("recommend.defaultWeights: negative weight for %q", name)
			}
			total += weight
		}
		if total <= 0 {
			return errors.New("recommend.defaultWeights must carry at least one positive weight")
		}
	}
	if c.Catalog.MaxPhotoBytes <= 0 {
		return errors.New("catalog.maxPhotoBytes must be positive")
	}
	if c.Catalog.SimilarLimit <= 0 {
		return errors.New("catalog.similarLimit must be positive")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when the valkey cache is enabled")
	}
	if c.Photos.Endpoint != "" && strings.TrimSpace(c.Photos.Bucket) == "" {
		return errors.New("photos.bucket cannot be empty when an endpoint is configured")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
