package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// AnthropicConfig holds language-model API settings.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY" env-required:"true"`

	// ExtractModel handles idea extraction and plan generation.
	ExtractModel string `yaml:"extract_model" env:"ANTHROPIC_EXTRACT_MODEL" env-default:"claude-haiku-4-5-20251001"`
	// WritingModel handles feedback and chat.
	WritingModel string `yaml:"writing_model" env:"ANTHROPIC_WRITING_MODEL" env-default:"claude-sonnet-4-5-20250929"`

	ExtractMaxTokens  int64         `yaml:"extract_max_tokens"  env:"ANTHROPIC_EXTRACT_MAX_TOKENS"  env-default:"4096"`
	FeedbackMaxTokens int64         `yaml:"feedback_max_tokens" env:"ANTHROPIC_FEEDBACK_MAX_TOKENS" env-default:"2048"`
	ChatMaxTokens     int64         `yaml:"chat_max_tokens"     env:"ANTHROPIC_CHAT_MAX_TOKENS"     env-default:"1024"`
	Timeout           time.Duration `yaml:"timeout"             env:"ANTHROPIC_TIMEOUT"             env-default:"60s"`
}

// StorageConfig holds S3-compatible object storage settings for
// writing-workspace image uploads.
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"        env:"STORAGE_ENDPOINT"`
	Region        string `yaml:"region"          env:"STORAGE_REGION"          env-default:"us-east-1"`
	Bucket        string `yaml:"bucket"          env:"STORAGE_BUCKET"          env-default:"writing-images"`
	AccessKey     string `yaml:"access_key"      env:"STORAGE_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key"      env:"STORAGE_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL"`
}

// AuthConfig holds the shared API key. When empty, requests are not
// authenticated (local single-user setup).
type AuthConfig struct {
	APIKey string `yaml:"api_key" env:"API_SECRET_KEY"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Api-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
