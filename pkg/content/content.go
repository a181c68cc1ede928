// Package content holds the page and comment model the rendering pipeline
// presents. Storage and moderation live in the host system; this package only
// describes already-resolved content.
package content

import "time"

// Page is a single content page with its resolved comment tree.
type Page struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Permalink string     `json:"permalink"`
	Body      string     `json:"body,omitempty"`
	Comments  []*Comment `json:"comments,omitempty"`
}

// Comment kinds. Pings (pingbacks and trackbacks) render in a short notation
// distinct from ordinary comments.
const (
	TypeComment   = "comment"
	TypePingback  = "pingback"
	TypeTrackback = "trackback"
)

// Author is a comment byline. Email is used for avatar lookups and is never
// emitted directly.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Comment is one node of a comment tree.
type Comment struct {
	ID        int64      `json:"id"`
	ParentID  int64      `json:"parent_id,omitempty"`
	Type      string     `json:"type,omitempty"`
	Author    Author     `json:"author"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Children  []*Comment `json:"children,omitempty"`
}

// IsPing reports whether the comment is a pingback or trackback.
func (c *Comment) IsPing() bool {
	return c.Type == TypePingback || c.Type == TypeTrackback
}

// Thread arranges a flat comment list into a tree by parent id. Comments
// whose parent is missing become top-level. Input order is preserved within
// each level.
func Thread(flat []*Comment) []*Comment {
	byID := make(map[int64]*Comment, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	var roots []*Comment
	for _, c := range flat {
		if c.ParentID != 0 {
			if parent, ok := byID[c.ParentID]; ok && parent != c {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

// Total counts all comments in a tree, children included.
func Total(tree []*Comment) int {
	n := 0
	for _, c := range tree {
		n += 1 + Total(c.Children)
	}
	return n
}
