package publish_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/publish"
)

type putRecord struct {
	contentType string
	body        []byte
}

// fakeStore records puts in memory.
type fakeStore struct {
	mu   sync.Mutex
	puts map[string]putRecord
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{puts: make(map[string]putRecord)}
}

func (s *fakeStore) Put(ctx context.Context, path, contentType string, body io.Reader) error {
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.puts[path] = putRecord{contentType: contentType, body: data}
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) get(path string) (putRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.puts[path]
	return rec, ok
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

func testPages(n int) []*content.Page {
	pages := make([]*content.Page, 0, n)
	for i := 0; i < n; i++ {
		pages = append(pages, &content.Page{
			ID:   int64(i + 1),
			Slug: fmt.Sprintf("post-%d", i+1),
		})
	}
	return pages
}

func renderSlug(ctx context.Context, page *content.Page, w io.Writer) error {
	_, err := fmt.Fprintf(w, "<ol>%s</ol>", page.Slug)
	return err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_WritesAllPages(t *testing.T) {
	store := newFakeStore()
	pub := publish.NewPublisher(store, renderSlug, publish.WithLogger(quietLogger()))

	n, err := pub.Publish(context.Background(), testPages(3))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("published %d pages, want 3", n)
	}
	if got := store.count(); got != 3 {
		t.Fatalf("store holds %d files, want 3", got)
	}

	for i := 1; i <= 3; i++ {
		path := fmt.Sprintf("post-%d/comments.html", i)
		rec, ok := store.get(path)
		if !ok {
			t.Fatalf("missing published file %s", path)
		}
		if want := fmt.Sprintf("<ol>post-%d</ol>", i); string(rec.body) != want {
			t.Errorf("body for %s = %q, want %q", path, rec.body, want)
		}
		if rec.contentType != publish.DefaultContentType {
			t.Errorf("content type for %s = %q, want %q", path, rec.contentType, publish.DefaultContentType)
		}
	}
}

func TestPublisher_NoPages(t *testing.T) {
	pub := publish.NewPublisher(newFakeStore(), renderSlug, publish.WithLogger(quietLogger()))

	_, err := pub.Publish(context.Background(), nil)
	if !errors.Is(err, publish.ErrNoPages) {
		t.Fatalf("got error %v, want ErrNoPages", err)
	}
}

func TestPublisher_RenderErrorPropagates(t *testing.T) {
	store := newFakeStore()
	render := func(ctx context.Context, page *content.Page, w io.Writer) error {
		if page.Slug == "post-2" {
			return errors.New("formatter broke")
		}
		return renderSlug(ctx, page, w)
	}
	pub := publish.NewPublisher(store, render, publish.WithLogger(quietLogger()))

	_, err := pub.Publish(context.Background(), testPages(3))
	if err == nil {
		t.Fatal("expected render error to propagate")
	}
	if !strings.Contains(err.Error(), "render post-2") {
		t.Errorf("error %q does not name the failed page", err)
	}
	if _, ok := store.get("post-2/comments.html"); ok {
		t.Error("failed page was still written")
	}
}

func TestPublisher_StoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("disk full")
	pub := publish.NewPublisher(store, renderSlug, publish.WithLogger(quietLogger()))

	_, err := pub.Publish(context.Background(), testPages(2))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("got error %v, want store failure", err)
	}
}

func TestPublisher_WorkerBound(t *testing.T) {
	store := newFakeStore()

	var inFlight, peak atomic.Int64
	render := func(ctx context.Context, page *content.Page, w io.Writer) error {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return renderSlug(ctx, page, w)
	}

	pub := publish.NewPublisher(store, render,
		publish.WithWorkers(2),
		publish.WithLogger(quietLogger()),
	)

	n, err := pub.Publish(context.Background(), testPages(8))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if n != 8 {
		t.Fatalf("published %d pages, want 8", n)
	}
	if got := peak.Load(); got > 2 {
		t.Errorf("peak concurrency %d exceeds worker bound 2", got)
	}
}

func TestPublisher_Options(t *testing.T) {
	store := newFakeStore()
	pub := publish.NewPublisher(store, renderSlug,
		publish.WithPathFunc(func(page *content.Page) string {
			return "fragments/" + page.Slug + ".html"
		}),
		publish.WithContentType("text/html"),
		publish.WithLogger(quietLogger()),
	)

	if _, err := pub.Publish(context.Background(), testPages(1)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	rec, ok := store.get("fragments/post-1.html")
	if !ok {
		t.Fatal("custom path not used")
	}
	if rec.contentType != "text/html" {
		t.Errorf("content type = %q, want %q", rec.contentType, "text/html")
	}
}

func TestDefaultPath(t *testing.T) {
	page := &content.Page{Slug: "hello"}
	if got, want := publish.DefaultPath(page), "hello/comments.html"; got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
