package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the renderer.
const defaultTracerName = "colloquy"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "colloquy").
	TracerName string

	// IncludeUser includes the signed-in reader's ID in traces.
	// May contain sensitive information - disabled by default.
	IncludeUser bool

	// Filter determines which renders to trace.
	// Return true to trace the render, false to skip.
	// If nil, all renders are traced.
	Filter func(r *Render) bool

	// AttributeExtractor extracts custom attributes from the render.
	// Called for each traced render.
	AttributeExtractor func(r *Render) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeUser enables including the reader's ID in traces.
func WithIncludeUser(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeUser = include
	}
}

// WithRenderFilter sets a filter function for renders.
func WithRenderFilter(filter func(r *Render) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(r *Render) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		IncludeUser: false,
		Filter:      nil,
	}
}

// OpenTelemetry creates middleware that traces render operations.
//
// The middleware:
//   - Creates a span for each render named after the operation
//   - Passes the span context to next, so downstream calls inherit the trace
//   - Records errors and sets span status
//   - Records the comment count as a span attribute after the render
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before rendering:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-blog"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		if config.Filter != nil && !config.Filter(r) {
			return next(ctx)
		}

		attrs := []attribute.KeyValue{
			attribute.String("colloquy.op", r.Op),
			attribute.String("colloquy.page", r.Page),
		}
		if r.Mode != "" {
			attrs = append(attrs, attribute.String("colloquy.mode", r.Mode))
		}
		if config.IncludeUser && r.User != "" {
			attrs = append(attrs, attribute.String("colloquy.user_id", r.User))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(r)...)
		}

		spanCtx, span := config.tracer.Start(
			ctx,
			"colloquy."+r.Op,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next(spanCtx)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		span.SetAttributes(attribute.Int("colloquy.comment_count", r.Comments))

		return err
	})
}
