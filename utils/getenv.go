package utils

import (
	"log/slog"
	"os"
	"time"
)

// GetEnvDefault は環境変数 key の値を返します。未設定なら defaultValue を返します。
func GetEnvDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration は環境変数 key を time.Duration として読みます。
// パースできない場合は警告を出して defaultValue を返します。
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return d
}
