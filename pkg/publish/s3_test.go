package publish_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/colloquy-dev/colloquy/pkg/publish"
)

type s3Put struct {
	bucket       string
	key          string
	contentType  string
	cacheControl *string
	body         []byte
}

// mockS3Client records PutObject calls.
type mockS3Client struct {
	mu   sync.Mutex
	puts []s3Put
	err  error
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.puts = append(m.puts, s3Put{
		bucket:       aws.ToString(params.Bucket),
		key:          aws.ToString(params.Key),
		contentType:  aws.ToString(params.ContentType),
		cacheControl: params.CacheControl,
		body:         body,
	})
	m.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) last(t *testing.T) s3Put {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.puts) == 0 {
		t.Fatal("no PutObject calls recorded")
	}
	return m.puts[len(m.puts)-1]
}

func TestS3Store_Put(t *testing.T) {
	client := &mockS3Client{}
	store := publish.NewS3Store(client, "my-bucket")

	err := store.Put(context.Background(), "hello/comments.html", "text/html; charset=utf-8", strings.NewReader("<ol></ol>"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	put := client.last(t)
	if put.bucket != "my-bucket" {
		t.Errorf("bucket = %q, want %q", put.bucket, "my-bucket")
	}
	if put.key != "hello/comments.html" {
		t.Errorf("key = %q, want %q", put.key, "hello/comments.html")
	}
	if put.contentType != "text/html; charset=utf-8" {
		t.Errorf("content type = %q, want %q", put.contentType, "text/html; charset=utf-8")
	}
	if string(put.body) != "<ol></ol>" {
		t.Errorf("body = %q, want %q", put.body, "<ol></ol>")
	}
	if put.cacheControl != nil {
		t.Errorf("cache control set without option: %q", *put.cacheControl)
	}
}

func TestS3Store_PrefixAndLeadingSlash(t *testing.T) {
	client := &mockS3Client{}
	store := publish.NewS3Store(client, "my-bucket", publish.WithS3Prefix("comments/"))

	if err := store.Put(context.Background(), "/hello.html", "text/html", strings.NewReader("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if got, want := client.last(t).key, "comments/hello.html"; got != want {
		t.Errorf("key = %q, want %q", got, want)
	}
}

func TestS3Store_CacheControl(t *testing.T) {
	client := &mockS3Client{}
	store := publish.NewS3Store(client, "my-bucket",
		publish.WithS3CacheControl("public, max-age=60"),
	)

	if err := store.Put(context.Background(), "hello.html", "text/html", strings.NewReader("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	put := client.last(t)
	if put.cacheControl == nil || *put.cacheControl != "public, max-age=60" {
		t.Errorf("cache control = %v, want public, max-age=60", put.cacheControl)
	}
}

func TestS3Store_ErrorPropagates(t *testing.T) {
	client := &mockS3Client{err: errors.New("access denied")}
	store := publish.NewS3Store(client, "my-bucket")

	err := store.Put(context.Background(), "hello.html", "text/html", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("got error %v, want access denied", err)
	}
}

func TestS3Store_WithPublisher(t *testing.T) {
	client := &mockS3Client{}
	store := publish.NewS3Store(client, "my-bucket", publish.WithS3Prefix("comments/"))
	pub := publish.NewPublisher(store, renderSlug, publish.WithLogger(quietLogger()))

	n, err := pub.Publish(context.Background(), testPages(2))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("published %d pages, want 2", n)
	}

	client.mu.Lock()
	keys := make(map[string]bool, len(client.puts))
	for _, put := range client.puts {
		keys[put.key] = true
	}
	client.mu.Unlock()

	for _, want := range []string{"comments/post-1/comments.html", "comments/post-2/comments.html"} {
		if !keys[want] {
			t.Errorf("missing published object %s (have %v)", want, keys)
		}
	}
}
