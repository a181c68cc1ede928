// Package form builds the comment submission form.
//
// The form adapts to login state: signed-out readers get name/email/url
// fields, signed-in readers get a "logged in as" notice instead. The notice
// goes through the theme filter registry (theme.FilterLoggedInNotice) so
// hosts can replace it; LoggedIn is the stock decoration, registered as a
// filter behind a blank override:
//
//	hooks := theme.NewHooks()
//	notice := form.NewLoggedIn(site)
//	notice.Register(hooks)
//
//	builder := form.NewBuilder(site, form.WithHooks(hooks))
//	builder.Render(w, page, user)
//
// Submission handling is a host concern; this package renders markup only.
package form
