// Package comments renders the comment list for a content page.
//
// A ListRenderer resolves one of two layouts per render: a plain ordered
// list, or a live-polling list whose container carries the client polling
// contract (poll interval and page cap) as data attributes. Per-comment
// markup comes from a TreeFormatter and the prev/next navigation from a
// Navigator; both default to built-in implementations and both can be
// replaced by the host.
//
// Usage:
//
//	r := comments.NewListRenderer(comments.ListConfig{
//	    LiveList: true,
//	    Settings: comments.DefaultSettings(),
//	})
//	err := r.Render(ctx, w, page, comments.Options{"avatar_size": 48})
package comments
