package form

import (
	"errors"
	"io"
	"strconv"

	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/markup"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// ErrNilPage is returned when Render is called without a page.
var ErrNilPage = errors.New("form: nil page")

// Builder renders the comment submission form for a page.
type Builder struct {
	site   identity.Site
	hooks  *theme.Hooks
	notice *LoggedIn
	tr     theme.Translator
	action func(page *content.Page) string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithHooks routes the signed-in notice through the filter registry.
// Without a registry the stock LoggedIn decoration applies directly.
func WithHooks(h *theme.Hooks) BuilderOption {
	return func(b *Builder) {
		b.hooks = h
	}
}

// WithNotice replaces the stock signed-in decoration used when no filter
// registry is configured.
func WithNotice(n *LoggedIn) BuilderOption {
	return func(b *Builder) {
		b.notice = n
	}
}

// WithTranslator sets the label translator. Default: no translation.
func WithTranslator(tr theme.Translator) BuilderOption {
	return func(b *Builder) {
		b.tr = tr
	}
}

// WithAction sets how the form's submit target is derived from the page.
// The default posts back to the page permalink anchored at the form.
func WithAction(fn func(page *content.Page) string) BuilderOption {
	return func(b *Builder) {
		b.action = fn
	}
}

// NewBuilder creates a comment form builder for site.
func NewBuilder(site identity.Site, opts ...BuilderOption) *Builder {
	b := &Builder{
		site:   site,
		notice: NewLoggedIn(site),
		tr:     theme.NopTranslator,
		action: func(page *content.Page) string {
			return page.Permalink + "#respond"
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render writes the comment form markup for page to w. A nil user renders
// the signed-out form with name/email/url fields.
func (b *Builder) Render(w io.Writer, page *content.Page, user *identity.User) error {
	if page == nil {
		return ErrNilPage
	}
	return markup.Render(w, b.Node(page, user))
}

// Node builds the form as a markup tree.
func (b *Builder) Node(page *content.Page, user *identity.User) *markup.Node {
	return markup.Section(
		markup.ID("respond"),
		markup.Class("comment-respond"),
		markup.H3(
			markup.Class("comment-reply-title"),
			markup.Text(b.tr("Leave a Comment")),
		),
		markup.Form(
			markup.Action(b.action(page)),
			markup.Method("post"),
			markup.Class("comment-form"),
			markup.Novalidate(),
			b.identityFields(page, user),
			b.commentField(),
			b.submitRow(page),
		),
	)
}

// identityFields returns the signed-in notice or the guest fields.
func (b *Builder) identityFields(page *content.Page, user *identity.User) *markup.Node {
	if user != nil {
		notice := b.noticeFor(page, user)
		if notice == "" {
			return markup.Nothing()
		}
		return markup.Raw(notice)
	}

	return markup.Fragment(
		markup.P(
			markup.Class("comment-form-author"),
			markup.Label(markup.For("author"), markup.Text(b.tr("Name"))),
			markup.Input(
				markup.ID("author"),
				markup.Type("text"),
				markup.Name("author"),
				markup.MaxLength(245),
				markup.Autocomplete("name"),
				markup.Required(),
			),
		),
		markup.P(
			markup.Class("comment-form-email"),
			markup.Label(markup.For("email"), markup.Text(b.tr("Email"))),
			markup.Input(
				markup.ID("email"),
				markup.Type("email"),
				markup.Name("email"),
				markup.MaxLength(100),
				markup.Autocomplete("email"),
				markup.Required(),
			),
		),
		markup.P(
			markup.Class("comment-form-url"),
			markup.Label(markup.For("url"), markup.Text(b.tr("Website"))),
			markup.Input(
				markup.ID("url"),
				markup.Type("url"),
				markup.Name("url"),
				markup.MaxLength(200),
				markup.Autocomplete("url"),
			),
		),
	)
}

// noticeFor produces the signed-in notice markup, routed through the
// filter registry when one is configured.
func (b *Builder) noticeFor(page *content.Page, user *identity.User) string {
	stock := markup.String(markup.P(
		markup.Class("logged-in-as"),
		markup.Textf("%s %s.", b.tr("Logged in as"), user.DisplayName),
	))

	if b.hooks != nil {
		return b.hooks.Apply(theme.FilterLoggedInNotice, stock, &theme.FilterArgs{
			Data: map[string]any{
				"user":      user,
				"permalink": page.Permalink,
			},
		})
	}
	return b.notice.Fragment(stock, user, page.Permalink)
}

func (b *Builder) commentField() *markup.Node {
	return markup.P(
		markup.Class("comment-form-comment"),
		markup.Label(markup.For("comment"), markup.Text(b.tr("Comment"))),
		markup.Textarea(
			markup.ID("comment"),
			markup.Name("comment"),
			markup.Rows(8),
			markup.Cols(45),
			markup.MaxLength(65525),
			markup.Required(),
		),
	)
}

func (b *Builder) submitRow(page *content.Page) *markup.Node {
	return markup.P(
		markup.Class("form-submit"),
		markup.Input(
			markup.Type("hidden"),
			markup.Name("page_id"),
			markup.Value(strconv.FormatInt(page.ID, 10)),
		),
		markup.Button(
			markup.Type("submit"),
			markup.Class("submit"),
			markup.Text(b.tr("Post Comment")),
		),
	)
}
