// This file re-exports markup helper functions for the el package.
package el

import "github.com/colloquy-dev/colloquy/pkg/markup"

func Text(content string) *Node {
	return markup.Text(content)
}
func Textf(format string, args ...any) *Node {
	return markup.Textf(format, args...)
}
func Raw(html string) *Node {
	return markup.Raw(html)
}
func Fragment(children ...any) *Node {
	return markup.Fragment(children...)
}
func If(condition bool, node *Node) *Node {
	return markup.If(condition, node)
}
func IfElse(condition bool, ifTrue, ifFalse *Node) *Node {
	return markup.IfElse(condition, ifTrue, ifFalse)
}
func When(condition bool, fn func() *Node) *Node {
	return markup.When(condition, fn)
}
func Unless(condition bool, node *Node) *Node {
	return markup.Unless(condition, node)
}
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	return markup.Range(items, fn)
}
func Repeat(n int, fn func(i int) *Node) []*Node {
	return markup.Repeat(n, fn)
}
func Nothing() *Node {
	return markup.Nothing()
}
func Either(first, second *Node) *Node {
	return markup.Either(first, second)
}
func Group(children ...any) *Node {
	return markup.Group(children...)
}
func String(n *Node) string {
	return markup.String(n)
}
