// Package colloquy renders blog comment lists and comment forms as HTML.
//
// This is the recommended import for most hosts:
//
//	import "github.com/colloquy-dev/colloquy"
//
// Usage:
//
//	cfg := colloquy.DefaultConfig()
//	cfg.Site.BaseURL = "https://blog.example.com"
//	cfg.Comments.LiveList = true
//	engine := colloquy.New(cfg)
//	err := engine.ListComments(ctx, w, page, nil)
package colloquy

import (
	"github.com/colloquy-dev/colloquy/pkg/avatar"
	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/form"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/publish"
	"github.com/colloquy-dev/colloquy/pkg/session"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// =============================================================================
// Content model (re-export from pkg/content)
// =============================================================================

// Page is a single content page with its resolved comment tree.
type Page = content.Page

// Comment is one node of a comment tree.
type Comment = content.Comment

// Author is a comment byline.
type Author = content.Author

// Comment kinds.
const (
	TypeComment   = content.TypeComment
	TypePingback  = content.TypePingback
	TypeTrackback = content.TypeTrackback
)

// Thread arranges a flat comment list into a tree by parent id.
var Thread = content.Thread

// Total counts all comments in a tree, children included.
var Total = content.Total

// =============================================================================
// Discussion settings and render modes (re-export from pkg/comments)
// =============================================================================

// Settings are the site-wide discussion settings.
type Settings = comments.Settings

// Order is the comment sort direction.
type Order = comments.Order

const (
	Asc  = comments.Asc
	Desc = comments.Desc
)

// Mode is the resolved rendering mode for one pass.
type Mode = comments.Mode

// ResolveMode decides between the static and live list layouts.
var ResolveMode = comments.ResolveMode

// PollIntervalMs is the poll cadence advertised on live-list containers.
const PollIntervalMs = comments.PollIntervalMs

// DefaultUnpagedCap is the item cap advertised when pagination is off.
const DefaultUnpagedCap = comments.DefaultUnpagedCap

// LiveListID returns the live-list container id for a page.
var LiveListID = comments.LiveListID

// =============================================================================
// Render options (re-export from pkg/comments)
// =============================================================================

// Options is the per-render option mapping passed to ListComments.
type Options = comments.Options

// Option keys understood by the built-in collaborators.
const (
	OptOrder      = comments.OptOrder
	OptPage       = comments.OptPage
	OptPerPage    = comments.OptPerPage
	OptMaxDepth   = comments.OptMaxDepth
	OptAvatarSize = comments.OptAvatarSize
)

// =============================================================================
// Theme hooks (re-export from pkg/theme)
// =============================================================================

// Hooks is a registry of named filter chains, scoped to one engine.
type Hooks = theme.Hooks

// FilterArgs carries contextual values alongside a filtered string.
type FilterArgs = theme.FilterArgs

// FilterFunc rewrites a markup string.
type FilterFunc = theme.FilterFunc

// NewHooks creates an empty filter registry.
var NewHooks = theme.NewHooks

// Filter names used by the engine. Hosts may add their own.
const (
	FilterCommentNavigation = theme.FilterCommentNavigation
	FilterLoggedInNotice    = theme.FilterLoggedInNotice
)

// Translator localizes emitted labels.
type Translator = theme.Translator

// Support tracks which optional features the active theme declares.
type Support = theme.Support

// NewSupport creates a feature registry pre-declaring features.
var NewSupport = theme.NewSupport

// FeatureLiveCommentList is the theme feature gating the live list layout.
const FeatureLiveCommentList = theme.FeatureLiveCommentList

// =============================================================================
// Identity (re-export from pkg/identity)
// =============================================================================

// User is the signed-in reader as rendering sees it.
type User = identity.User

// IdentityProvider resolves the signed-in user for a request.
type IdentityProvider = identity.Provider

// UserSource looks up users by ID for session resolution.
type UserSource = identity.UserSource

// StaticUsers is a fixed in-memory UserSource, handy for fixtures.
type StaticUsers = identity.StaticUsers

// =============================================================================
// Sessions (re-export from pkg/session)
// =============================================================================

// Session is one commenter session.
type Session = session.Session

// NewMemoryStore creates an in-process session store.
var NewMemoryStore = session.NewMemoryStore

// NewRedisStore creates a Redis-backed session store.
var NewRedisStore = session.NewRedisStore

// NewSQLStore creates a SQL-backed session store.
var NewSQLStore = session.NewSQLStore

// =============================================================================
// Avatars (re-export from pkg/avatar)
// =============================================================================

// AvatarSource resolves avatar image URLs.
type AvatarSource = avatar.Source

// Gravatar resolves avatars through gravatar.com email hashes.
type Gravatar = avatar.Gravatar

// FixedAvatar serves one fixed image URL for every lookup.
type FixedAvatar = avatar.Fixed

// =============================================================================
// Publishing (re-export from pkg/publish)
// =============================================================================

// PublishStore is a destination for rendered pages.
type PublishStore = publish.Store

// NewDirStore creates a filesystem publish destination.
var NewDirStore = publish.NewDirStore

// NewS3Store creates an S3 publish destination.
var NewS3Store = publish.NewS3Store

// =============================================================================
// Form collaborators (re-export from pkg/form)
// =============================================================================

// LoggedInNotice builds the signed-in fragment shown in place of the
// guest identity fields. Exposed for hosts that render forms outside the
// engine.
type LoggedInNotice = form.LoggedIn
