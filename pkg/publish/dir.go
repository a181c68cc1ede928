package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadPath is returned when a destination path escapes the store root.
var ErrBadPath = errors.New("publish: path escapes destination root")

// DirStore writes published files into a local directory tree.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DirStore{root: dir}, nil
}

// Root returns the destination directory.
func (s *DirStore) Root() string {
	return s.root
}

// Put writes body to path under the root. The write lands in a temp file
// first and moves into place with a rename, so readers never observe a
// half-written page.
func (s *DirStore) Put(ctx context.Context, path string, contentType string, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".publish-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dst)
}

// resolve maps a forward-slash path onto the root, rejecting traversal.
func (s *DirStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: %q", ErrBadPath, path)
	}
	return filepath.Join(s.root, clean), nil
}
