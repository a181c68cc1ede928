package middleware

import (
	"context"
	"errors"
	"testing"
)

func logging(name string, log *[]string) Middleware {
	return MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		*log = append(*log, name+":before")
		err := next(ctx)
		*log = append(*log, name+":after")
		return err
	})
}

func TestComposeOrder(t *testing.T) {
	var log []string
	mw := []Middleware{logging("a", &log), logging("b", &log)}

	err := Compose(context.Background(), mw, &Render{Op: OpList}, func(context.Context) error {
		log = append(log, "handler")
		return nil
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := []string{"a:before", "b:before", "handler", "b:after", "a:after"}
	if len(log) != len(want) {
		t.Fatalf("got %d entries %v, want %v", len(log), log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestComposeEmpty(t *testing.T) {
	called := false
	err := Compose(context.Background(), nil, &Render{}, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !called {
		t.Fatal("handler not called with empty middleware list")
	}
}

func TestComposeStopsWithoutError(t *testing.T) {
	stop := MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		return nil
	})

	called := false
	err := Compose(context.Background(), []Middleware{stop}, &Render{}, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if called {
		t.Fatal("handler ran past a middleware that stopped the chain")
	}
}

func TestComposeErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	var log []string

	err := Compose(context.Background(), []Middleware{logging("a", &log)}, &Render{}, func(context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got error %v, want %v", err, wantErr)
	}
	if len(log) != 2 || log[1] != "a:after" {
		t.Errorf("middleware did not unwind on error: %v", log)
	}
}

func TestChain(t *testing.T) {
	var log []string
	combined := Chain(logging("a", &log), logging("b", &log))

	err := combined.Handle(context.Background(), &Render{}, func(context.Context) error {
		log = append(log, "handler")
		return nil
	})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(log) != 5 || log[2] != "handler" {
		t.Errorf("chain order wrong: %v", log)
	}
}

func TestSkip(t *testing.T) {
	var log []string
	mw := Skip(func(r *Render) bool { return r.Op == OpForm }, logging("a", &log))

	if err := mw.Handle(context.Background(), &Render{Op: OpForm}, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("middleware ran despite skip condition: %v", log)
	}

	if err := mw.Handle(context.Background(), &Render{Op: OpList}, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(log) != 2 {
		t.Errorf("middleware did not run without skip condition: %v", log)
	}
}

func TestOnly(t *testing.T) {
	var log []string
	mw := Only(func(r *Render) bool { return r.Mode == "live" }, logging("a", &log))

	if err := mw.Handle(context.Background(), &Render{Mode: "static"}, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("middleware ran outside its condition: %v", log)
	}

	if err := mw.Handle(context.Background(), &Render{Mode: "live"}, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(log) != 2 {
		t.Errorf("middleware did not run for its condition: %v", log)
	}
}

type ctxTestKey struct{}

func TestComposeContextFlows(t *testing.T) {
	inject := MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		return next(context.WithValue(ctx, ctxTestKey{}, "threaded"))
	})

	err := Compose(context.Background(), []Middleware{inject}, &Render{}, func(ctx context.Context) error {
		if got, _ := ctx.Value(ctxTestKey{}).(string); got != "threaded" {
			t.Errorf("handler context value = %q, want %q", got, "threaded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
}

func TestRenderSharedThroughChain(t *testing.T) {
	r := &Render{Op: OpList, Mode: "live", Page: "hello"}

	var seen int
	observe := MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		err := next(ctx)
		seen = r.Comments
		return err
	})

	err := Compose(context.Background(), []Middleware{observe}, r, func(context.Context) error {
		r.Comments = 12
		return nil
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if seen != 12 {
		t.Errorf("middleware saw %d comments after unwind, want 12", seen)
	}
}
