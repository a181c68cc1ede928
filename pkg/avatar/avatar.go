// Package avatar resolves commenter avatar images. The default source is
// Gravatar; hosts with their own avatar storage implement Source.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/colloquy-dev/colloquy/pkg/markup"
)

// DefaultSize is used when a caller asks for a non-positive size.
const DefaultSize = 80

// Source maps an email address to an avatar image URL of the given pixel
// size.
type Source interface {
	URL(email string, size int) string
}

// Gravatar is the built-in Source. The zero value is ready to use.
type Gravatar struct {
	// Base is the endpoint prefix. Defaults to the secure gravatar host.
	Base string

	// Default is the fallback image parameter (gravatar's d=), e.g. "mm".
	Default string
}

// URL implements Source. Email is trimmed and lowercased before hashing, so
// equivalent addresses resolve to the same image.
func (g Gravatar) URL(email string, size int) string {
	base := g.Base
	if base == "" {
		base = "https://secure.gravatar.com/avatar/"
	}
	if size <= 0 {
		size = DefaultSize
	}

	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))

	q := url.Values{}
	q.Set("s", strconv.Itoa(size))
	if g.Default != "" {
		q.Set("d", g.Default)
	}

	return base + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}

// Fixed is a Source that always returns the same URL, for profiles that
// carry an explicit avatar address.
type Fixed string

func (f Fixed) URL(email string, size int) string { return string(f) }

// Img builds the avatar image node for an email at the given size. A nil
// source falls back to Gravatar.
func Img(src Source, email, alt string, size int) *markup.Node {
	if src == nil {
		src = Gravatar{}
	}
	if size <= 0 {
		size = DefaultSize
	}

	return markup.Img(
		markup.Src(src.URL(email, size)),
		markup.Class("avatar", "avatar-"+strconv.Itoa(size), "photo"),
		markup.Width(size),
		markup.Height(size),
		markup.Alt(alt),
		markup.Loading("lazy"),
	)
}
