package telemetry

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Config controls the request tracing middleware.
type Config struct {
	ServiceName string
	// Skip returns true for requests that should not be traced.
	Skip func(*fiber.Ctx) bool
}

// New returns a middleware that opens a server span per request,
// propagates incoming trace context and records request metrics when
// the instruments are initialized.
func New(cfg Config) fiber.Handler {
	tracer := otel.Tracer(instrumentationName)

	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		propagator := otel.GetTextMapPropagator()
		ctx := propagator.Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Method()),
				semconv.URLFull(c.OriginalURL()),
				semconv.URLPath(c.Path()),
				semconv.ServerAddress(c.Hostname()),
				semconv.UserAgentOriginal(c.Get(fiber.HeaderUserAgent)),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)

		if HTTPActiveRequests != nil {
			HTTPActiveRequests.Add(ctx, 1)
			defer HTTPActiveRequests.Add(ctx, -1)
		}
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
			span.RecordError(err)
		}
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "server error")
		}
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))

		if HTTPRequestsTotal != nil {
			HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Method()),
				semconv.HTTPRoute(c.Route().Path),
				semconv.HTTPResponseStatusCode(status),
			))
		}
		if HTTPRequestDuration != nil {
			HTTPRequestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Method()),
				semconv.HTTPRoute(c.Route().Path),
			))
		}

		return err
	}
}
