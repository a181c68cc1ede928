package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/colloquy-dev/colloquy/pkg/content"
)

// ErrNoPages is returned when Publish is called with nothing to publish.
var ErrNoPages = errors.New("publish: no pages")

// DefaultContentType is the content type published files are stored under.
const DefaultContentType = "text/html; charset=utf-8"

// Store is the interface for publish destinations.
// Implement this interface to publish to S3, GCS, or other storage.
type Store interface {
	// Put writes one rendered file at path. Paths use forward slashes
	// relative to the destination root.
	Put(ctx context.Context, path string, contentType string, body io.Reader) error
}

// RenderFunc renders one page's markup to w.
type RenderFunc func(ctx context.Context, page *content.Page, w io.Writer) error

// PathFunc derives the destination path for a page.
type PathFunc func(page *content.Page) string

// DefaultPath places each page's fragment under its slug.
func DefaultPath(page *content.Page) string {
	return page.Slug + "/comments.html"
}

// Publisher renders pages and writes them to a Store.
type Publisher struct {
	store       Store
	render      RenderFunc
	pathFor     PathFunc
	contentType string
	workers     int
	logger      *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithWorkers bounds the number of pages rendered at once. Default: 4.
func WithWorkers(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithPathFunc sets how destination paths are derived. Default: DefaultPath.
func WithPathFunc(fn PathFunc) PublisherOption {
	return func(p *Publisher) {
		p.pathFor = fn
	}
}

// WithContentType sets the stored content type. Default: DefaultContentType.
func WithContentType(ct string) PublisherOption {
	return func(p *Publisher) {
		p.contentType = ct
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a Publisher writing render output to store.
func NewPublisher(store Store, render RenderFunc, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:       store,
		render:      render,
		pathFor:     DefaultPath,
		contentType: DefaultContentType,
		workers:     4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "publish")
	return p
}

// Publish renders every page and writes the results to the store.
// Pages render concurrently, bounded by the worker count. The first
// failure cancels the remaining work; the returned count covers pages
// written before the failure surfaced.
func (p *Publisher) Publish(ctx context.Context, pages []*content.Page) (int, error) {
	if len(pages) == 0 {
		return 0, ErrNoPages
	}

	var published atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, page := range pages {
		g.Go(func() error {
			path := p.pathFor(page)

			var buf bytes.Buffer
			if err := p.render(ctx, page, &buf); err != nil {
				return fmt.Errorf("render %s: %w", page.Slug, err)
			}
			if err := p.store.Put(ctx, path, p.contentType, &buf); err != nil {
				return fmt.Errorf("put %s: %w", path, err)
			}

			published.Add(1)
			p.logger.Debug("page published", "slug", page.Slug, "path", path)
			return nil
		})
	}

	err := g.Wait()
	n := int(published.Load())

	if err != nil {
		p.logger.Error("publish failed", "published", n, "total", len(pages), "error", err)
		return n, err
	}

	p.logger.Info("publish complete", "pages", n)
	return n, nil
}
