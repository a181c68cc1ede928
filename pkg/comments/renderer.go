package comments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/markup"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// liveListTag is the custom element wrapping a live-polling comment list.
const liveListTag = "amp-live-list"

// ErrNilPage is returned when Render is called without a page.
var ErrNilPage = errors.New("comments: nil page")

// TreeFormatter turns a resolved comment tree into per-item markup, written
// directly to the render sink. Ordering and windowing are owned by the
// formatter, driven by the merged options it receives.
type TreeFormatter interface {
	FormatTree(ctx context.Context, w io.Writer, page *content.Page, opts Options) error
}

// Navigator produces the prev/next comments navigation for a page. The
// returned markup is treated as an opaque string; in live mode it passes
// through the pagination patch before emission. Empty output suppresses the
// navigation section.
type Navigator interface {
	Navigation(ctx context.Context, page *content.Page, opts Options) (string, error)
}

// ListConfig configures a ListRenderer.
type ListConfig struct {
	// LiveList is the capability flag for the live-polling layout.
	LiveList bool

	// Support, when set, gates the live-polling layout on the theme
	// declaring theme.FeatureLiveCommentList. A nil registry leaves
	// LiveList solely in charge.
	Support *theme.Support

	// Settings are the site discussion settings.
	Settings Settings

	// UnpagedCap overrides DefaultUnpagedCap for unpaged live lists.
	UnpagedCap int

	// Formatter and Navigator replace the built-in collaborators.
	Formatter TreeFormatter
	Navigator Navigator

	// Hooks, when set, is the host filter registry. Navigation markup runs
	// through its FilterCommentNavigation chain, and the live pagination
	// patch installs there for the duration of its window. Without a
	// registry the patch is applied directly.
	Hooks *theme.Hooks

	// Translator localizes emitted labels.
	Translator theme.Translator

	// Logger receives per-render debug logging.
	Logger *slog.Logger
}

// ListRenderer emits the comment list for one page, choosing between the
// static and live layouts per render.
type ListRenderer struct {
	cfg ListConfig
}

// NewListRenderer creates a ListRenderer, filling in the built-in walker,
// navigator, translator and logger where the config leaves them nil.
func NewListRenderer(cfg ListConfig) *ListRenderer {
	if cfg.Formatter == nil {
		cfg.Formatter = NewWalker()
	}
	if cfg.Navigator == nil {
		cfg.Navigator = &PageNavigator{Translator: cfg.Translator}
	}
	if cfg.Translator == nil {
		cfg.Translator = theme.NopTranslator
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ListRenderer{cfg: cfg}
}

// liveEnabled resolves the effective capability flag: the config flag,
// additionally requiring the declared theme feature when a support
// registry is attached. Checked per render so runtime Add/Remove on the
// registry takes effect immediately.
func (r *ListRenderer) liveEnabled() bool {
	if r.cfg.Support != nil && !r.cfg.Support.Supports(theme.FeatureLiveCommentList) {
		return false
	}
	return r.cfg.LiveList
}

// LiveListID returns the live-list container id derived from the page
// identity. The update control targets the same id.
func LiveListID(page *content.Page) string {
	return "live-comment-list-" + strconv.FormatInt(page.ID, 10)
}

// Render emits the comment list markup for page to w.
//
// The mode is resolved once up front. In live mode the list is wrapped in a
// live-list container carrying the client polling contract, and the
// pagination patch is active from the container open until just before the
// update control. The patch is released on every exit path, including
// formatter failure.
func (r *ListRenderer) Render(ctx context.Context, w io.Writer, page *content.Page, opts Options) error {
	if page == nil {
		return ErrNilPage
	}

	mode := ResolveMode(r.liveEnabled(), r.cfg.Settings, r.cfg.UnpagedCap)
	merged := opts.withDefaults(r.cfg.Settings)
	mw := markup.NewWriter(w)

	r.cfg.Logger.Debug("rendering comment list",
		"page", page.ID,
		"mode", mode.String(),
		"comments", content.Total(page.Comments))

	release := func() {}
	if mode.Live {
		if err := mw.OpenTag(r.liveContainer(page, mode)); err != nil {
			return err
		}
		if r.cfg.Hooks != nil {
			release = r.cfg.Hooks.Intercept(theme.FilterCommentNavigation, PatchNavigation)
		}
	}
	defer release()

	ol := markup.Ol(
		markup.Class("comment-list"),
		markup.AttrIf(mode.Live, markup.BoolAttr("items")),
	)
	if err := mw.OpenTag(ol); err != nil {
		return err
	}
	if err := r.cfg.Formatter.FormatTree(ctx, w, page, merged); err != nil {
		return fmt.Errorf("comments: format tree: %w", err)
	}
	if err := mw.CloseTag("ol"); err != nil {
		return err
	}

	if err := r.renderNavigation(ctx, mw, page, merged, mode); err != nil {
		return err
	}

	if mode.Live {
		// The patch window closes here, before the update control.
		release()

		if err := mw.WriteNode(r.updateControl(page)); err != nil {
			return err
		}
		if err := mw.CloseTag(liveListTag); err != nil {
			return err
		}
	}

	return nil
}

// renderNavigation emits the navigation markup, run through the host filter
// chain when a registry is attached, or through the pagination patch
// directly in live mode when none is.
func (r *ListRenderer) renderNavigation(ctx context.Context, mw *markup.Writer, page *content.Page, opts Options, mode Mode) error {
	nav, err := r.cfg.Navigator.Navigation(ctx, page, opts)
	if err != nil {
		return fmt.Errorf("comments: navigation: %w", err)
	}

	if r.cfg.Hooks != nil {
		nav = r.cfg.Hooks.Apply(theme.FilterCommentNavigation, nav, &theme.FilterArgs{
			Data: map[string]any{"page_id": page.ID},
		})
	} else if mode.Live {
		nav = PatchNavigation(nav)
	}

	if nav == "" {
		return nil
	}
	return mw.WriteRaw(nav)
}

// liveContainer builds the live-list open element with the polling contract
// attributes. The sort attribute appears only for ascending order.
func (r *ListRenderer) liveContainer(page *content.Page, mode Mode) *markup.Node {
	return markup.CustomElement(liveListTag,
		markup.ID(LiveListID(page)),
		markup.AttrIf(r.cfg.Settings.Order == Asc, markup.Attr{Key: "sort", Value: "ascending"}),
		markup.Data("poll-interval", strconv.Itoa(mode.PollIntervalMs)),
		markup.Data("max-items-per-page", strconv.Itoa(mode.PageCap)),
	)
}

// updateControl builds the new-comments affordance bound to the container id.
func (r *ListRenderer) updateControl(page *content.Page) *markup.Node {
	return markup.Div(
		markup.BoolAttr("update"),
		markup.Button(
			markup.Class("comment-update-button"),
			markup.On("tap:"+LiveListID(page)+".update"),
			markup.Text(r.cfg.Translator("New comment(s)")),
		),
	)
}
