package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc は送信待ちのスパンとログを flush してプロバイダーを停止します。
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup は endpoint が空でなければ OTLP/gRPC でスパンとログを送るプロバイダーを登録します。
// 空の場合はグローバルの no-op プロバイダーのままにします。
func Setup(ctx context.Context, endpoint, serviceName string) (ShutdownFunc, error) {
	if endpoint == "" {
		slog.DebugContext(ctx, "telemetry disabled")
		return noopShutdown, nil
	}

	endpointURL := EndpointURL(endpoint)
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpointURL))
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithEndpointURL(endpointURL))
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, fmt.Errorf("create otlp log exporter: %w", err)
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	global.SetLoggerProvider(loggerProvider)
	slog.InfoContext(ctx, "telemetry enabled", "endpoint", endpointURL, "service", serviceName)

	return func(ctx context.Context) error {
		return errors.Join(tracerProvider.Shutdown(ctx), loggerProvider.Shutdown(ctx))
	}, nil
}

// EndpointURL は OTEL_EXPORTER_OTLP_ENDPOINT の値を URL にそろえます。
// スキームのない host:port は平文の http:// として扱います。TLS の有無は URL のスキームで決まります。
func EndpointURL(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "http://" + endpoint
}

// LogHandler は exported が true のとき base に加えて OTLP へもログを流すハンドラーを返します。
func LogHandler(base slog.Handler, serviceName string, exported bool) slog.Handler {
	if !exported {
		return base
	}
	return slog.NewMultiHandler(base, otelslog.NewHandler(serviceName))
}
