package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
)

// Instruments stay nil until InitMeter succeeds against a configured
// endpoint, callers nil-check before recording.
var (
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter
)

// InitMeter sets the global meter provider exporting OTLP over HTTP to
// endpoint and creates the request instruments. The returned shutdown
// is safe to call in every case, including after an error.
func InitMeter(ctx context.Context, serviceName, endpoint string) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	log := logger.GetLogger("telemetry")

	if endpoint == "" {
		log.Info("metric exporter disabled, no endpoint configured")
		return noop, nil
	}

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := buildResource(ctx, serviceName)
	if err != nil {
		return noop, fmt.Errorf("failed to build resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	if err := initInstruments(provider.Meter(instrumentationName)); err != nil {
		return provider.Shutdown, fmt.Errorf("failed to create instruments: %w", err)
	}

	log.Infow("metric exporter initialized", "endpoint", endpoint)
	return provider.Shutdown, nil
}

func initInstruments(meter metric.Meter) error {
	var err error
	HTTPRequestsTotal, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("Total HTTP requests handled"))
	if err != nil {
		return err
	}
	HTTPRequestDuration, err = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10))
	if err != nil {
		return err
	}
	HTTPActiveRequests, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("In-flight HTTP requests"))
	return err
}
