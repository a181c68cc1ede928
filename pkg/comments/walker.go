package comments

import (
	"context"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/colloquy-dev/colloquy/pkg/avatar"
	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/markup"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// Walker is the built-in TreeFormatter. It emits one list item per comment
// in tree order: top-level comments sorted by the order option and windowed
// by the page options, replies nested chronologically inside
// <ol class="children"> wrappers up to the depth cap.
//
// Comment content is emitted raw; the host is responsible for sanitizing it
// before storage.
type Walker struct {
	// Avatars resolves per-comment avatar images. Nil falls back to
	// Gravatar.
	Avatars avatar.Source

	// Translator localizes the ping labels.
	Translator theme.Translator
}

// NewWalker creates a Walker with the default avatar source.
func NewWalker() *Walker {
	return &Walker{Avatars: avatar.Gravatar{}, Translator: theme.NopTranslator}
}

// FormatTree implements TreeFormatter.
func (wk *Walker) FormatTree(ctx context.Context, w io.Writer, page *content.Page, opts Options) error {
	top := sortedTop(page.Comments, Order(opts.String(OptOrder)))
	top = pageWindow(top, opts.Int(OptPage), opts.Int(OptPerPage))

	maxDepth := opts.Int(OptMaxDepth)
	if maxDepth <= 0 {
		maxDepth = 1
	}

	mw := markup.NewWriter(w)
	for _, c := range top {
		if err := mw.WriteNode(wk.item(c, 1, maxDepth, opts)); err != nil {
			return err
		}
	}
	return nil
}

// item renders one comment with its reply subtree. At the depth cap,
// replies continue as siblings at the current depth instead of nesting
// further.
func (wk *Walker) item(c *content.Comment, depth, maxDepth int, opts Options) *markup.Node {
	li := wk.itemBody(c, depth, opts)

	if len(c.Children) == 0 {
		return li
	}

	if depth < maxDepth {
		children := markup.CustomElement(childWrapperTag(opts), markup.Class("children"))
		for _, reply := range c.Children {
			children.Children = append(children.Children, wk.item(reply, depth+1, maxDepth, opts))
		}
		li.Children = append(li.Children, children)
		return li
	}

	// Depth cap reached: flatten the subtree into the current level.
	flat := markup.Fragment(li)
	for _, reply := range c.Children {
		flat.Children = append(flat.Children, wk.item(reply, depth, maxDepth, opts))
	}
	return flat
}

// itemBody renders the list item for a single comment, without replies.
func (wk *Walker) itemBody(c *content.Comment, depth int, opts Options) *markup.Node {
	id := "comment-" + strconv.FormatInt(c.ID, 10)

	if c.IsPing() && opts.Bool(OptShortPing) {
		return markup.Li(
			markup.ID(id),
			markup.Class("pingback"),
			markup.P(
				markup.Text(wk.pingLabel(c)+" "),
				markup.A(
					markup.Href(c.Author.URL),
					markup.Rel("external nofollow"),
					markup.Text(c.Author.Name),
				),
			),
		)
	}

	return markup.Li(
		markup.ID(id),
		markup.Classes("comment", "depth-"+strconv.Itoa(depth)),
		markup.Article(
			markup.Class("comment-body"),
			markup.Footer(
				markup.Class("comment-meta"),
				avatar.Img(wk.Avatars, c.Author.Email, c.Author.Name, opts.Int(OptAvatarSize)),
				wk.authorName(c),
				markup.Time_(
					markup.Attr{Key: "datetime", Value: c.CreatedAt.Format(time.RFC3339)},
					markup.Text(c.CreatedAt.Format("January 2, 2006")),
				),
			),
			markup.Div(
				markup.Class("comment-content"),
				markup.Raw(c.Content),
			),
		),
	)
}

func (wk *Walker) authorName(c *content.Comment) *markup.Node {
	name := markup.Text(c.Author.Name)
	if c.Author.URL == "" {
		return markup.B(markup.Class("comment-author"), name)
	}
	return markup.B(
		markup.Class("comment-author"),
		markup.A(markup.Href(c.Author.URL), markup.Rel("external nofollow"), name),
	)
}

func (wk *Walker) pingLabel(c *content.Comment) string {
	tr := wk.Translator
	if tr == nil {
		tr = theme.NopTranslator
	}
	if c.Type == content.TypeTrackback {
		return tr("Trackback:")
	}
	return tr("Pingback:")
}

// childWrapperTag returns the reply wrapper tag from the style option.
func childWrapperTag(opts Options) string {
	if tag := opts.String(OptStyle); tag != "" {
		return tag
	}
	return forcedStyle
}

// sortedTop returns a sorted copy of the top-level comments. Reply order
// inside each thread is left as resolved.
func sortedTop(top []*content.Comment, order Order) []*content.Comment {
	out := make([]*content.Comment, len(top))
	copy(out, top)

	sort.SliceStable(out, func(i, j int) bool {
		if order == Desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// pageWindow slices the top-level list to the requested page. Page numbers
// start at 1; a non-positive page size disables windowing.
func pageWindow(top []*content.Comment, page, perPage int) []*content.Comment {
	if perPage <= 0 {
		return top
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(top) {
		return nil
	}
	end := start + perPage
	if end > len(top) {
		end = len(top)
	}
	return top[start:end]
}
