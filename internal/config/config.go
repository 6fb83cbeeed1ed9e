package config

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultImageModel       = "gemini-2.5-flash-image"
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultCacheTTL         = 30 * time.Minute
	DefaultCleanupInterval  = 1 * time.Hour
	DefaultRateInterval     = time.Duration(0)
	DefaultServerAddr       = ":8080"
	DefaultPrefetchParallel = 4
	// DefaultMaxTemplateBytes はリモートテンプレート1件あたりの最大サイズです。
	DefaultMaxTemplateBytes = 20 << 20
)

// Config はアプリケーション全体の環境設定を保持する構造体です。
type Config struct {
	GeminiAPIKey string
	ImageModel   string

	HTTPTimeout time.Duration
	CacheTTL    time.Duration

	// RateInterval が 0 の場合は生成リクエストの間隔を制限しません。
	RateInterval time.Duration

	ServerAddr                string
	AllowPrivateTemplateHosts bool
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:              envutil.GetEnv("GEMINI_API_KEY", ""),
		ImageModel:                envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		HTTPTimeout:               durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout),
		CacheTTL:                  durationEnv("TEMPLATE_CACHE_TTL", DefaultCacheTTL),
		RateInterval:              durationEnv("RATE_INTERVAL", DefaultRateInterval),
		ServerAddr:                envutil.GetEnv("SERVER_ADDR", DefaultServerAddr),
		AllowPrivateTemplateHosts: boolEnv("ALLOW_PRIVATE_TEMPLATE_HOSTS", false),
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("環境変数の値が不正なため既定値を使用します", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func boolEnv(key string, fallback bool) bool {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("環境変数の値が不正なため既定値を使用します", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return b
}
