package config

import (
	"log/slog"
	"strings"
	"time"

	"nightfall/utils"
)

// Settings はプロセス全体の設定です。環境変数 (と .env) から読み込みます。
type Settings struct {
	HostURL        string
	TeamConfig     string
	LogLevel       slog.Level
	TokenSecret    string
	OTLPEndpoint   string
	ReconnectDelay time.Duration
	IdleTimeout    time.Duration
	PingInterval   time.Duration
	HealthAddr     string // 空なら公開しない
}

func LoadSettings() Settings {
	return Settings{
		HostURL:        utils.GetEnvDefault("HOST_URL", "ws://localhost:9090/ws"),
		TeamConfig:     utils.GetEnvDefault("TEAM_CONFIG", ""),
		LogLevel:       parseLevel(utils.GetEnvDefault("LOG_LEVEL", "info")),
		TokenSecret:    utils.GetEnvDefault("HOST_TOKEN_SECRET", ""),
		OTLPEndpoint:   utils.GetEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ReconnectDelay: utils.GetEnvDuration("RECONNECT_DELAY", 2*time.Second),
		IdleTimeout:    utils.GetEnvDuration("IDLE_TIMEOUT", 30*time.Second),
		PingInterval:   utils.GetEnvDuration("PING_INTERVAL", 5*time.Second),
		HealthAddr:     utils.GetEnvDefault("HEALTH_ADDR", ""),
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
