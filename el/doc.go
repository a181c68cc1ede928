// Package el provides the markup DSL for colloquy.
//
// It re-exports element constructors, attribute helpers, and common node
// utilities from github.com/colloquy-dev/colloquy/pkg/markup so themes and
// custom collaborators can dot-import one package:
//
//	import . "github.com/colloquy-dev/colloquy/el"
//
//	node := Div(Class("comment-meta"),
//	    A(Href(url), Text(author)),
//	)
//
// This keeps the DSL in a dedicated package while the tree model and the
// writer live in markup.
package el
