package preview

import (
	"fmt"
	"sort"

	. "github.com/colloquy-dev/colloquy/el"
	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/identity"
)

// previewStyle keeps the demo pages readable without a build pipeline.
const previewStyle = `
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.5; }
.comment-list { padding-left: 1.25rem; }
.comment-list .children { list-style: none; }
.comment-meta .avatar { vertical-align: middle; border-radius: 50%; margin-right: .5rem; }
.comment-navigation a { margin-right: 1rem; }
.logged-in-as { color: #555; }
nav.site { display: flex; gap: 1rem; margin-bottom: 2rem; border-bottom: 1px solid #ddd; padding-bottom: .5rem; }
`

// headNode builds the document head for a preview page.
func headNode(title string) *Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		Title(Text(title+" · colloquy preview")),
		Style(Raw(previewStyle)),
	)
}

// siteNav builds the shared navigation bar with the session controls.
func siteNav(user *identity.User, users identity.StaticUsers, currentPath string) *Node {
	var account *Node
	if user != nil {
		account = Span(Class("logged-in-as"),
			Textf("Signed in as %s ", user.DisplayName),
			A(Href("/logout?redirect_to="+currentPath), Text("Log Out")),
		)
	} else {
		account = loginForm(users, currentPath)
	}

	return Nav(Class("site"),
		A(Href("/"), Text("Pages")),
		A(Href("/metrics"), Text("Metrics")),
		account,
	)
}

// loginForm renders a one-click sign-in selector over the fixture accounts.
func loginForm(users identity.StaticUsers, currentPath string) *Node {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	options := make([]*Node, 0, len(ids))
	for _, id := range ids {
		options = append(options, Option(Value(id), Text(users[id].DisplayName)))
	}

	return Form(Action("/login"), Method("post"),
		Input(Type("hidden"), Name("redirect_to"), Value(currentPath)),
		Select(Name("user"), options),
		Button(Type("submit"), Text("Sign In")),
	)
}

// indexNode builds the page listing for the preview root.
func indexNode(pages []*content.Page) *Node {
	return Main(
		H1(Text("Preview pages")),
		Ul(Range(pages, func(p *content.Page, _ int) *Node {
			return Li(
				A(Href(p.Permalink), Text(p.Title)),
				Textf(" — %d comment(s)", content.Total(p.Comments)),
			)
		})),
	)
}

// pageHeader builds the article portion shown above the comment section.
func pageHeader(p *content.Page) *Node {
	return Fragment(
		H1(Text(p.Title)),
		If(p.Body != "", P(Text(p.Body))),
		H2(Textf("%d comment(s)", content.Total(p.Comments))),
	)
}

// notFoundNode builds the 404 body.
func notFoundNode(slug string) *Node {
	return Main(
		H1(Text("Page not found")),
		P(Textf("No fixture page has the slug %q.", slug)),
		P(A(Href("/"), Text("Back to the page list"))),
	)
}

// document wraps a body fragment in the full HTML shell. Used for pages
// that render in one piece; the comment view streams instead.
func document(title string, user *identity.User, users identity.StaticUsers, currentPath string, body *Node, hotReload bool) *Node {
	return Fragment(
		Raw("<!doctype html>\n"),
		Html(Lang("en"),
			headNode(title),
			Body(
				siteNav(user, users, currentPath),
				body,
				If(hotReload, Raw(ClientScript)),
			),
		),
	)
}

// permalinkFor normalizes a page permalink to the preview route.
func permalinkFor(p *content.Page) string {
	if p.Permalink != "" {
		return p.Permalink
	}
	return fmt.Sprintf("/pages/%s", p.Slug)
}
