package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Node    NodeConfig    `yaml:"node"`
	WAL     WALConfig     `yaml:"wal"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type NodeConfig struct {
	// Roles is a comma-separated role list, e.g. "ingester" or
	// "ingester,querier". "all" grants every role.
	Roles string `yaml:"roles"`
}

type WALConfig struct {
	Dir                 string `yaml:"dir"`
	SyncIntervalSeconds int    `yaml:"sync_interval_seconds"`
	SyncConcurrency     int    `yaml:"sync_concurrency"`
}

// SyncInterval returns the interval between sync cycles.
func (c WALConfig) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalSeconds) * time.Second
}

type StorageConfig struct {
	Backend    string `yaml:"backend"` // "local" | "s3" | "gcs"
	LocalDir   string `yaml:"local_dir"`
	S3Bucket   string `yaml:"s3_bucket"`
	S3Endpoint string `yaml:"s3_endpoint"`
	S3Region   string `yaml:"s3_region"`
	GCSBucket  string `yaml:"gcs_bucket"`
	Prefix     string `yaml:"prefix"`
}

type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// Load reads configuration from an optional YAML file, then applies
// environment variable overrides on top.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad loads configuration from the file named by CONFIG_FILE (if set)
// and the environment, exiting the process on error.
func MustLoad() Config {
	log.Println("[config] loading")
	cfg, err := Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	return cfg
}

func defaults() Config {
	return Config{
		Node: NodeConfig{Roles: "all"},
		WAL: WALConfig{
			Dir:                 "./data/wal",
			SyncIntervalSeconds: 10,
			SyncConcurrency:     1,
		},
		Storage: StorageConfig{
			Backend:  "local",
			LocalDir: "./data/remote",
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9090",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Node.Roles = getenvDefault("NODE_ROLES", cfg.Node.Roles)

	cfg.WAL.Dir = getenvDefault("WAL_DIR", cfg.WAL.Dir)
	cfg.WAL.SyncIntervalSeconds = getenvInt("WAL_SYNC_INTERVAL_SECONDS", cfg.WAL.SyncIntervalSeconds)
	cfg.WAL.SyncConcurrency = getenvInt("WAL_SYNC_CONCURRENCY", cfg.WAL.SyncConcurrency)

	cfg.Storage.Backend = getenvDefault("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.LocalDir = getenvDefault("STORAGE_LOCAL_DIR", cfg.Storage.LocalDir)
	cfg.Storage.S3Bucket = getenvDefault("STORAGE_S3_BUCKET", cfg.Storage.S3Bucket)
	cfg.Storage.S3Endpoint = getenvDefault("STORAGE_S3_ENDPOINT", cfg.Storage.S3Endpoint)
	cfg.Storage.S3Region = getenvDefault("STORAGE_S3_REGION", cfg.Storage.S3Region)
	cfg.Storage.GCSBucket = getenvDefault("STORAGE_GCS_BUCKET", cfg.Storage.GCSBucket)
	cfg.Storage.Prefix = getenvDefault("STORAGE_PREFIX", cfg.Storage.Prefix)

	cfg.Log.Format = getenvDefault("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Level = getenvDefault("LOG_LEVEL", cfg.Log.Level)

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "true"
	}
	cfg.Metrics.Address = getenvDefault("METRICS_ADDRESS", cfg.Metrics.Address)
}

// Validate checks settings that would otherwise fail deep inside the pipeline.
func (c Config) Validate() error {
	if c.WAL.Dir == "" {
		return fmt.Errorf("wal dir must not be empty")
	}
	if c.WAL.SyncIntervalSeconds <= 0 {
		return fmt.Errorf("wal sync interval must be positive, got %d", c.WAL.SyncIntervalSeconds)
	}
	if c.WAL.SyncConcurrency < 1 {
		return fmt.Errorf("wal sync concurrency must be at least 1, got %d", c.WAL.SyncConcurrency)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
