package middleware

import "context"

// Render operation names.
const (
	OpList = "comment_list"
	OpForm = "comment_form"
)

// Render describes one rendering operation as it moves through the chain.
// The renderer fills Comments before the chain unwinds, so middleware can
// read it after calling next.
type Render struct {
	// Op names the operation: OpList or OpForm.
	Op string

	// Mode is the list rendering mode label ("static" or "live").
	// Empty for form renders.
	Mode string

	// Page is the slug of the page being rendered.
	Page string

	// User is the signed-in reader's ID, empty for anonymous renders.
	User string

	// Comments is the number of comments emitted by a list render.
	Comments int
}

// Next continues the chain. Middleware may pass a derived context to
// propagate deadlines or trace spans downstream.
type Next func(ctx context.Context) error

// Middleware processes render operations around the renderer.
type Middleware interface {
	// Handle runs around a render and optionally calls next.
	// Return an error to stop the chain and report an error.
	// Return nil without calling next to stop the chain without error.
	Handle(ctx context.Context, r *Render, next Next) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx context.Context, r *Render, next Next) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, r *Render, next Next) error {
	return f(ctx, r, next)
}

// Compose builds a handler chain from middleware and a final handler.
// Middleware is executed in order (first to last), with the handler at
// the end.
func Compose(ctx context.Context, mw []Middleware, r *Render, handler Next) error {
	if len(mw) == 0 {
		return handler(ctx)
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func(ctx context.Context) error {
			return m.Handle(ctx, r, next)
		}
	}

	return chain(ctx)
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		return Compose(ctx, middleware, r, next)
	})
}

// Skip is a middleware that skips to the next middleware based on a condition.
func Skip(condition func(r *Render) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		if condition(r) {
			return next(ctx)
		}
		return mw.Handle(ctx, r, next)
	})
}

// Only is a middleware that runs only if a condition is true.
func Only(condition func(r *Render) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		if !condition(r) {
			return next(ctx)
		}
		return mw.Handle(ctx, r, next)
	})
}
