// Package theme is the integration surface between the comment engine and a
// host templating system.
//
// Hosts customize output through named filter chains: a filter receives a
// markup string and returns a (possibly rewritten) replacement. The engine
// itself uses the same mechanism for its scoped navigation intercept.
//
// Usage:
//
//	hooks := theme.NewHooks()
//	hooks.AddFilter(theme.FilterCommentNavigation, func(s string, _ *theme.FilterArgs) string {
//	    return strings.ReplaceAll(s, "Older", "Earlier")
//	}, 10)
package theme
