// Package config loads the estimator's runtime configuration from defaults,
// an optional YAML file and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StorageKind names a storage tier backend.
type StorageKind string

const (
	StorageFile     StorageKind = "file"
	StorageMemory   StorageKind = "memory"
	StorageDynamoDB StorageKind = "dynamodb"
	StorageRedis    StorageKind = "redis"
	StorageNone     StorageKind = "none"
)

type StorageConfig struct {
	Primary      StorageKind `yaml:"primary"`
	Secondary    StorageKind `yaml:"secondary"`
	FileDir      string      `yaml:"fileDir"`
	DynamoTable  string      `yaml:"dynamoTable"`
	RedisAddr    string      `yaml:"redisAddr"`
	RedisDB      int         `yaml:"redisDB"`
	RedisPrefix  string      `yaml:"redisPrefix"`
	EstimatesKey string      `yaml:"estimatesKey"`
	CustomerKey  string      `yaml:"customerKey"`
}

type AjaxConfig struct {
	URL              string        `yaml:"url"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxTries         uint          `yaml:"maxTries"`
	RatePerSecond    float64       `yaml:"ratePerSecond"`
	Burst            int           `yaml:"burst"`
	CacheTTL         time.Duration `yaml:"cacheTTL"`
	CacheableActions []string      `yaml:"cacheableActions"`
}

type FeatureConfig struct {
	Suggestions         bool `yaml:"suggestions"`
	CustomerDetailsSync bool `yaml:"customerDetailsSync"`
}

type Config struct {
	Port         int           `yaml:"port"`
	CacheTTL     time.Duration `yaml:"cacheTTL"`
	SyncWorkers  int           `yaml:"syncWorkers"`
	OTLPEndpoint string        `yaml:"otlpEndpoint"`
	CORSOrigins  []string      `yaml:"corsOrigins"`

	Storage  StorageConfig `yaml:"storage"`
	Ajax     AjaxConfig    `yaml:"ajax"`
	Features FeatureConfig `yaml:"features"`
}

func Default() Config {
	return Config{
		Port:        8080,
		CacheTTL:    5 * time.Minute,
		SyncWorkers: 2,
		CORSOrigins: []string{"*"},
		Storage: StorageConfig{
			Primary:     StorageFile,
			Secondary:   StorageMemory,
			FileDir:     ".estimator-data",
			DynamoTable: "estimator_storage",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "estimator:",
		},
		Ajax: AjaxConfig{
			URL:           "http://localhost/wp-admin/admin-ajax.php",
			Timeout:       15 * time.Second,
			MaxTries:      3,
			RatePerSecond: 10,
			Burst:         5,
			CacheTTL:      5 * time.Minute,
			CacheableActions: []string{
				"get_similar_products",
				"get_suggestions_for_room",
			},
		},
		Features: FeatureConfig{Suggestions: true},
	}
}

// Load builds the configuration. When ESTIMATOR_CONFIG names a file it is
// applied over the defaults; environment variables win over both.
func Load() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("ESTIMATOR_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.Port, err = getenvInt("PORT", c.Port); err != nil {
		return err
	}
	if c.CacheTTL, err = getenvDuration("ESTIMATOR_CACHE_TTL", c.CacheTTL); err != nil {
		return err
	}
	if c.SyncWorkers, err = getenvInt("ESTIMATOR_SYNC_WORKERS", c.SyncWorkers); err != nil {
		return err
	}
	c.OTLPEndpoint = getenvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.CORSOrigins = getenvList("CORS_ALLOW_ORIGINS", c.CORSOrigins)

	s := &c.Storage
	s.Primary = StorageKind(strings.ToLower(getenvDefault("STORAGE_PRIMARY", string(s.Primary))))
	s.Secondary = StorageKind(strings.ToLower(getenvDefault("STORAGE_SECONDARY", string(s.Secondary))))
	s.FileDir = getenvDefault("STORAGE_FILE_DIR", s.FileDir)
	s.DynamoTable = getenvDefault("ESTIMATOR_STORAGE_TABLE", s.DynamoTable)
	s.RedisAddr = getenvDefault("REDIS_ADDR", s.RedisAddr)
	s.RedisPrefix = getenvDefault("REDIS_KEY_PREFIX", s.RedisPrefix)
	if s.RedisDB, err = getenvInt("REDIS_DB", s.RedisDB); err != nil {
		return err
	}
	s.EstimatesKey = getenvDefault("STORAGE_ESTIMATES_KEY", s.EstimatesKey)
	s.CustomerKey = getenvDefault("STORAGE_CUSTOMER_KEY", s.CustomerKey)

	a := &c.Ajax
	a.URL = getenvDefault("ESTIMATOR_AJAX_URL", a.URL)
	if a.Timeout, err = getenvDuration("ESTIMATOR_AJAX_TIMEOUT", a.Timeout); err != nil {
		return err
	}
	tries, err := getenvInt("ESTIMATOR_AJAX_MAX_TRIES", int(a.MaxTries))
	if err != nil {
		return err
	}
	a.MaxTries = uint(tries)
	if a.RatePerSecond, err = getenvFloat("ESTIMATOR_AJAX_RATE", a.RatePerSecond); err != nil {
		return err
	}
	if a.CacheTTL, err = getenvDuration("ESTIMATOR_AJAX_CACHE_TTL", a.CacheTTL); err != nil {
		return err
	}
	a.CacheableActions = getenvList("ESTIMATOR_AJAX_CACHEABLE_ACTIONS", a.CacheableActions)

	if c.Features.Suggestions, err = getenvBool("FEATURE_SUGGESTIONS", c.Features.Suggestions); err != nil {
		return err
	}
	if c.Features.CustomerDetailsSync, err = getenvBool("FEATURE_CUSTOMER_DETAILS_SYNC", c.Features.CustomerDetailsSync); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	for _, kind := range []StorageKind{c.Storage.Primary, c.Storage.Secondary} {
		switch kind {
		case StorageFile, StorageMemory, StorageDynamoDB, StorageRedis, StorageNone:
		default:
			return fmt.Errorf("unknown storage kind %q", kind)
		}
	}
	if c.Storage.Primary == StorageNone {
		return fmt.Errorf("primary storage is required")
	}
	if strings.TrimSpace(c.Ajax.URL) == "" {
		return fmt.Errorf("ajax url is required")
	}
	if c.SyncWorkers <= 0 {
		return fmt.Errorf("sync workers must be > 0")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getenvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
