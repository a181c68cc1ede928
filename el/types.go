package el

import "github.com/colloquy-dev/colloquy/pkg/markup"

// Type aliases for the markup primitives used by the DSL.
type Node = markup.Node
type Kind = markup.Kind
type Attr = markup.Attr
