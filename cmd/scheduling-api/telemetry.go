// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/execdesk/scheduling-service/internal/logging"
)

const serviceName = "scheduling-service"

// setupTracing configures the global tracer provider with an OTLP HTTP
// exporter. Returns a shutdown function the caller must invoke on exit. When
// tracing is disabled a no-op shutdown is returned and the default no-op
// tracer stays in place.
func setupTracing(ctx context.Context, env environment) (func(context.Context) error, error) {
	if env.TracingDisabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{}
	if env.OTLPEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(env.OTLPEndpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.InfoContext(ctx, "tracing enabled", "otlp_endpoint", env.OTLPEndpoint)

	return func(shutdownCtx context.Context) error {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			slog.With(logging.ErrKey, err).ErrorContext(shutdownCtx, "error shutting down tracer provider")
			return err
		}
		return nil
	}, nil
}
