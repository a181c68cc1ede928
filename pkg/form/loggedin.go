package form

import (
	"github.com/colloquy-dev/colloquy/pkg/avatar"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/markup"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// NoticeAvatarSize is the pixel size of the avatar in the signed-in notice.
const NoticeAvatarSize = 32

// Filter priorities on theme.FilterLoggedInNotice. The blank override runs
// first so the stock notice never leaks through a partially configured
// chain; the decoration rebuilds the fragment afterwards.
const (
	blankPriority    = 10
	decoratePriority = 20
)

// LoggedIn rebuilds the comment form's "logged in as" fragment for a
// signed-in reader. It is a filter on theme.FilterLoggedInNotice: with no
// user in the filter args it passes its input through untouched, with a
// user it discards the input and builds the fragment fresh.
type LoggedIn struct {
	// Site supplies the profile and logout URLs.
	Site identity.Site

	// Avatars resolves avatar images for identities without an explicit
	// avatar URL. Nil falls back to Gravatar.
	Avatars avatar.Source

	// Translator localizes the logout label. Nil means no translation.
	Translator theme.Translator
}

// NewLoggedIn creates the stock signed-in notice decoration.
func NewLoggedIn(site identity.Site) *LoggedIn {
	return &LoggedIn{
		Site:       site,
		Avatars:    avatar.Gravatar{},
		Translator: theme.NopTranslator,
	}
}

// Register installs the blank override and the decoration on hooks.
// The returned func removes both.
func (l *LoggedIn) Register(hooks *theme.Hooks) (remove func()) {
	blankID := hooks.AddFilter(theme.FilterLoggedInNotice, blankNotice, blankPriority)
	decorateID := hooks.AddFilter(theme.FilterLoggedInNotice, l.filter, decoratePriority)
	return func() {
		hooks.RemoveFilter(theme.FilterLoggedInNotice, blankID)
		hooks.RemoveFilter(theme.FilterLoggedInNotice, decorateID)
	}
}

// blankNotice discards whatever notice an earlier layer produced.
func blankNotice(string, *theme.FilterArgs) string { return "" }

func (l *LoggedIn) filter(value string, args *theme.FilterArgs) string {
	user, _ := args.Raw("user").(*identity.User)
	return l.Fragment(value, user, args.String("permalink"))
}

// Fragment returns the signed-in notice for user, or current unchanged when
// user is nil. The fragment carries the avatar, the display name wrapped in
// a profile link, and a logout link that returns the reader to permalink.
func (l *LoggedIn) Fragment(current string, user *identity.User, permalink string) string {
	if user == nil {
		return current
	}

	tr := l.Translator
	if tr == nil {
		tr = theme.NopTranslator
	}

	notice := markup.P(
		markup.Class("logged-in-as"),
		l.avatarNode(user),
		markup.A(
			markup.Href(l.Site.ProfileURL()),
			markup.Class("comment-author-link"),
			markup.Text(user.DisplayName),
		),
		markup.Text(" "),
		markup.A(
			markup.Href(l.Site.LogoutURL(permalink)),
			markup.Class("comment-logout-link"),
			markup.Text(tr("Log Out")),
		),
	)

	return markup.String(notice)
}

func (l *LoggedIn) avatarNode(user *identity.User) *markup.Node {
	src := l.Avatars
	if user.AvatarURL != "" {
		src = avatar.Fixed(user.AvatarURL)
	}
	return avatar.Img(src, user.Email, user.DisplayName, NoticeAvatarSize)
}
