package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"nightfall/bridge"
	"nightfall/config"
	"nightfall/telemetry"
)

const (
	serviceName = "nightfall-bot"
	tokenTTL    = time.Hour
)

func main() {
	// .env がなければ環境変数だけで動く
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "err", err)
	}
	settings := config.LoadSettings()

	base := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: settings.LogLevel})
	slog.SetDefault(slog.New(base))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, settings.OTLPEndpoint, serviceName)
	if err != nil {
		slog.Error("failed to set up telemetry", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(telemetry.LogHandler(base, serviceName, settings.OTLPEndpoint != "")))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			slog.Warn("telemetry shutdown failed", "err", err)
		}
	}()

	teamConfig, err := config.Load(settings.TeamConfig)
	if err != nil {
		slog.Error("failed to load team config", "path", settings.TeamConfig, "err", err)
		os.Exit(1)
	}
	slog.Info("starting team", "team", teamConfig.Name, "heroes", teamConfig.Heroes(), "host", settings.HostURL)

	health := &bridge.Health{}
	if settings.HealthAddr != "" {
		go serveHealth(ctx, settings.HealthAddr, health)
	}

	run(ctx, settings, teamConfig, health)
	slog.Info("team stopped")
}

func serveHealth(ctx context.Context, addr string, health *bridge.Health) {
	mux := http.NewServeMux()
	mux.Handle("/healthz", otelhttp.NewHandler(health.Handler(), "healthz"))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	slog.Info("health endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("health endpoint failed", "err", err)
	}
}

// run はホストとの接続が切れるたびに ReconnectDelay 待って再接続します。
// エージェントの状態は接続ごとに作り直します。
func run(ctx context.Context, settings config.Settings, teamConfig *config.TeamConfig, health *bridge.Health) {
	for {
		if ctx.Err() != nil {
			return
		}
		err := session(ctx, settings, teamConfig, health)
		if ctx.Err() != nil {
			return
		}
		slog.Warn("host session ended, reconnecting", "err", err, "delay", settings.ReconnectDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(settings.ReconnectDelay):
		}
	}
}

func session(ctx context.Context, settings config.Settings, teamConfig *config.TeamConfig, health *bridge.Health) error {
	var token string
	if settings.TokenSecret != "" {
		var err error
		token, err = bridge.SignToken([]byte(settings.TokenSecret), teamConfig.Name, tokenTTL)
		if err != nil {
			return err
		}
	}

	transport, err := bridge.Dial(ctx, settings.HostURL, token)
	if err != nil {
		return err
	}
	slog.Info("connected", "host", settings.HostURL)

	client, err := bridge.NewClient(transport, teamConfig.BuildTeam(), bridge.Options{
		IdleTimeout:  settings.IdleTimeout,
		PingInterval: settings.PingInterval,
	})
	if err != nil {
		_ = transport.Close(1011, "init failed")
		return err
	}
	health.Track(client)
	defer health.Track(nil)
	return client.Run(ctx)
}
