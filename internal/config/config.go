// Package config は環境変数 (と任意の .env ファイル) から設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix は環境変数の接頭辞です。例: THUMBNAIL_HTTP_ADDR
const Prefix = "thumbnail"

// Config はサーバー全体の設定です。
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	GeminiAPIKey    string        `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiModel     string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-image"`
	GenerationCount int           `envconfig:"GENERATION_COUNT" default:"3"`
	CallTimeout     time.Duration `envconfig:"CALL_TIMEOUT" default:"60s"`
	ImageCacheTTL   time.Duration `envconfig:"IMAGE_CACHE_TTL" default:"30m"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"12h"`
	AdminID           string        `envconfig:"ADMIN_ID"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`

	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string   `envconfig:"LOG_FORMAT" default:"json"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"*"`
	ExchangeRateURL string   `envconfig:"EXCHANGE_RATE_URL" default:"https://api.exchangerate-api.com/v4/latest/USD"`
}

// Load は .env があれば読み込んだうえで環境変数から Config を組み立てます。
// 既に設定されている環境変数は .env で上書きされません。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は値の組み合わせを検証します。
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.GenerationCount < 1 {
		return fmt.Errorf("GENERATION_COUNT must be at least 1, got %d", c.GenerationCount)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("CALL_TIMEOUT must be positive")
	}
	if c.AdminEnabled() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when admin credentials are configured")
	}
	return nil
}

// AdminEnabled は管理者の資格情報が揃っているかを返します。揃っていなければ管理 API は公開しません。
func (c *Config) AdminEnabled() bool {
	return c.AdminID != "" && c.AdminPasswordHash != ""
}
