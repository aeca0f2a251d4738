package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"api"`

	Session struct {
		// Store is one of "memory", "file" or "redis"
		Store     string `yaml:"store"`
		File      string `yaml:"file"`
		RedisAddr string `yaml:"redis_addr"`
		RedisPass string `yaml:"redis_pass"`
		RedisKey  string `yaml:"redis_key"`
	} `yaml:"session"`

	Polling struct {
		StatusInterval   time.Duration `yaml:"status_interval"`
		ProgressInterval time.Duration `yaml:"progress_interval"`
		RedirectDelay    time.Duration `yaml:"redirect_delay"`
		MaxAttempts      int           `yaml:"max_attempts"`
		MaxDuration      time.Duration `yaml:"max_duration"`
	} `yaml:"polling"`

	Upload struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"upload"`

	Export struct {
		// Sink is "local" or "s3"
		Sink      string `yaml:"sink"`
		Dir       string `yaml:"dir"`
		AWSRegion string `yaml:"aws_region"`
		AWSBucket string `yaml:"aws_bucket"`
		Prefix    string `yaml:"prefix"`
	} `yaml:"export"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Sandbox struct {
		Port      string `yaml:"port"`
		JWTSecret string `yaml:"jwt_secret"`
		Queue     string `yaml:"queue"`
		RedisAddr string `yaml:"redis_addr"`
		RedisPass string `yaml:"redis_pass"`
		Workers   int    `yaml:"workers"`
		// Storage is "local" or "s3"; s3 reuses the export bucket and region
		Storage    string `yaml:"storage"`
		StorageDir string `yaml:"storage_dir"`
		// Scorer is "keyword", "llm" or "embedding". Empty picks llm when an
		// OpenAI key is configured, keyword otherwise.
		Scorer        string `yaml:"scorer"`
		OpenAIKey     string `yaml:"openai_api_key"`
		OpenAIModel   string `yaml:"openai_model"`
		SeedEmail     string `yaml:"seed_email"`
		SeedPassword  string `yaml:"seed_password"`
		StartingPoint int    `yaml:"starting_points"`
	} `yaml:"sandbox"`
}

// Load reads .env (when present), then the YAML file at path (when path is
// not empty), expands ${VAR} references, applies environment overrides and
// fills in defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(b))), &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration built only from the environment and defaults
func Default() *Config {
	var cfg Config
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with its value; unknown variables are kept
func expandEnvVars(content string) string {
	return envRef.ReplaceAllStringFunc(content, func(match string) string {
		if value := os.Getenv(match[2 : len(match)-1]); value != "" {
			return value
		}
		return match
	})
}

func applyEnv(cfg *Config) {
	cfg.API.BaseURL = getEnv("AIKYUU_API_URL", cfg.API.BaseURL)
	cfg.Session.Store = getEnv("AIKYUU_TOKEN_STORE", cfg.Session.Store)
	cfg.Session.File = getEnv("AIKYUU_TOKEN_FILE", cfg.Session.File)
	cfg.Session.RedisAddr = getEnv("REDIS_ADDR", cfg.Session.RedisAddr)
	cfg.Session.RedisPass = getEnv("REDIS_PASS", cfg.Session.RedisPass)
	cfg.Export.Sink = getEnv("AIKYUU_EXPORT_SINK", cfg.Export.Sink)
	cfg.Export.AWSRegion = getEnv("AWS_REGION", cfg.Export.AWSRegion)
	cfg.Export.AWSBucket = getEnv("AWS_BUCKET", cfg.Export.AWSBucket)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	cfg.Sandbox.Port = getEnv("PORT", cfg.Sandbox.Port)
	cfg.Sandbox.JWTSecret = getEnv("JWT_SECRET", cfg.Sandbox.JWTSecret)
	cfg.Sandbox.Queue = getEnv("SANDBOX_QUEUE", cfg.Sandbox.Queue)
	cfg.Sandbox.RedisAddr = getEnv("REDIS_ADDR", cfg.Sandbox.RedisAddr)
	cfg.Sandbox.RedisPass = getEnv("REDIS_PASS", cfg.Sandbox.RedisPass)
	cfg.Sandbox.Workers = getEnvInt("SANDBOX_WORKERS", cfg.Sandbox.Workers)
	cfg.Sandbox.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.Sandbox.OpenAIKey)
	cfg.Sandbox.Scorer = getEnv("SANDBOX_SCORER", cfg.Sandbox.Scorer)
	cfg.Sandbox.Storage = getEnv("SANDBOX_STORAGE", cfg.Sandbox.Storage)
	cfg.Upload.Concurrency = getEnvInt("AIKYUU_UPLOAD_CONCURRENCY", cfg.Upload.Concurrency)
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080"
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "aikyuu-cli"
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "file"
	}
	if cfg.Session.File == "" {
		cfg.Session.File = "session.json"
	}
	if cfg.Session.RedisKey == "" {
		cfg.Session.RedisKey = "aikyuu:session"
	}

	if cfg.Polling.StatusInterval <= 0 {
		cfg.Polling.StatusInterval = 3 * time.Second
	}
	if cfg.Polling.ProgressInterval <= 0 {
		cfg.Polling.ProgressInterval = 200 * time.Millisecond
	}
	if cfg.Polling.RedirectDelay <= 0 {
		cfg.Polling.RedirectDelay = time.Second
	}
	if cfg.Polling.MaxDuration <= 0 {
		cfg.Polling.MaxDuration = 30 * time.Minute
	}

	if cfg.Export.Sink == "" {
		cfg.Export.Sink = "local"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Sandbox.Port == "" {
		cfg.Sandbox.Port = "8080"
	}
	if cfg.Sandbox.JWTSecret == "" {
		cfg.Sandbox.JWTSecret = "sandbox-secret"
	}
	if cfg.Sandbox.Queue == "" {
		cfg.Sandbox.Queue = "memory"
	}
	if cfg.Sandbox.Workers <= 0 {
		cfg.Sandbox.Workers = 2
	}
	if cfg.Sandbox.Storage == "" {
		cfg.Sandbox.Storage = "local"
	}
	if cfg.Sandbox.Scorer == "" {
		cfg.Sandbox.Scorer = "keyword"
		if cfg.Sandbox.OpenAIKey != "" {
			cfg.Sandbox.Scorer = "llm"
		}
	}
	if cfg.Sandbox.StorageDir == "" {
		cfg.Sandbox.StorageDir = "sandbox-data"
	}
	if cfg.Sandbox.OpenAIModel == "" {
		cfg.Sandbox.OpenAIModel = "gpt-4o"
	}
	if cfg.Sandbox.StartingPoint <= 0 {
		cfg.Sandbox.StartingPoint = 50
	}
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("session.store must be memory, file or redis, got %q", c.Session.Store)
	}
	if c.Session.Store == "redis" && c.Session.RedisAddr == "" {
		return fmt.Errorf("session.redis_addr is required for the redis store")
	}

	switch c.Export.Sink {
	case "local":
	case "s3":
		if c.Export.AWSBucket == "" {
			return fmt.Errorf("export.aws_bucket is required for the s3 sink")
		}
	default:
		return fmt.Errorf("export.sink must be local or s3, got %q", c.Export.Sink)
	}

	switch c.Sandbox.Queue {
	case "memory", "redis":
	default:
		return fmt.Errorf("sandbox.queue must be memory or redis, got %q", c.Sandbox.Queue)
	}

	switch c.Sandbox.Scorer {
	case "keyword":
	case "llm", "embedding":
		if c.Sandbox.OpenAIKey == "" {
			return fmt.Errorf("sandbox.openai_api_key is required for the %s scorer", c.Sandbox.Scorer)
		}
	default:
		return fmt.Errorf("sandbox.scorer must be keyword, llm or embedding, got %q", c.Sandbox.Scorer)
	}

	switch c.Sandbox.Storage {
	case "local":
	case "s3":
		if c.Export.AWSBucket == "" {
			return fmt.Errorf("export.aws_bucket is required for s3 sandbox storage")
		}
	default:
		return fmt.Errorf("sandbox.storage must be local or s3, got %q", c.Sandbox.Storage)
	}

	if c.Upload.Concurrency < 0 {
		return fmt.Errorf("upload.concurrency must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
