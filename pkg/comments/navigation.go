package comments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/markup"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// PageNavigator is the built-in Navigator. It emits older/newer links for
// paged comment lists and nothing when every comment fits one page. Page
// links address the page permalink with a cpage query parameter and the
// comments fragment.
type PageNavigator struct {
	// Translator localizes the link labels.
	Translator theme.Translator
}

// Navigation implements Navigator.
func (n *PageNavigator) Navigation(_ context.Context, page *content.Page, opts Options) (string, error) {
	perPage := opts.Int(OptPerPage)
	if perPage <= 0 {
		return "", nil
	}

	total := len(page.Comments)
	pages := (total + perPage - 1) / perPage
	if pages <= 1 {
		return "", nil
	}

	current := opts.Int(OptPage)
	if current < 1 {
		current = 1
	}

	tr := n.Translator
	if tr == nil {
		tr = theme.NopTranslator
	}

	nav := markup.Nav(
		markup.Class("comment-navigation"),
		markup.Role("navigation"),
		markup.AriaLabel(tr("Comments navigation")),
		markup.When(current > 1, func() *markup.Node {
			return markup.Div(
				markup.Class("nav-previous"),
				markup.A(
					markup.Href(pageURL(page, current-1)),
					markup.Text(tr("Older Comments")),
				),
			)
		}),
		markup.When(current < pages, func() *markup.Node {
			return markup.Div(
				markup.Class("nav-next"),
				markup.A(
					markup.Href(pageURL(page, current+1)),
					markup.Text(tr("Newer Comments")),
				),
			)
		}),
	)

	return markup.String(nav), nil
}

func pageURL(page *content.Page, n int) string {
	return fmt.Sprintf("%s?cpage=%s#comments", page.Permalink, strconv.Itoa(n))
}
