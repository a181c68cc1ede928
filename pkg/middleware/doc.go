// Package middleware provides observability middleware for render
// operations.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//   - Chain composition helpers (Chain, Skip, Only)
//
// Middleware wraps the engine's render operations. Each render carries a
// Render descriptor (operation, mode, page, comment count) that
// middleware can read on both sides of the call.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware traces every render, recording the
// operation, page, mode, and comment count:
//
//	cfg := colloquy.DefaultConfig()
//	cfg.Middleware = []middleware.Middleware{
//	    middleware.OpenTelemetry(),
//	}
//	engine := colloquy.New(cfg)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-blog"),
//	    middleware.WithIncludeUser(true),
//	    middleware.WithRenderFilter(func(r *middleware.Render) bool {
//	        return r.Op == middleware.OpList
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects metrics about rendering:
//   - colloquy_renders_total: Total renders by op, mode, and status
//   - colloquy_render_duration_seconds: Render duration histogram
//   - colloquy_render_errors_total: Render errors by op and error type
//   - colloquy_renders_in_flight: Renders currently executing
//   - colloquy_comments_rendered_total: Comments emitted by list renders
//
//	cfg := colloquy.DefaultConfig()
//	cfg.Middleware = []middleware.Middleware{
//	    middleware.Prometheus(),
//	}
//	engine := colloquy.New(cfg)
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// # Context Propagation
//
// The OpenTelemetry middleware passes the span context to the rest of the
// chain, so downstream calls inherit the trace:
//
//	span := trace.SpanFromContext(ctx)
//	span.SetAttributes(attribute.Int("my.count", 42))
package middleware
