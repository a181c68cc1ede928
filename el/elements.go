// This file re-exports markup element constructors for the el package.
package el

import "github.com/colloquy-dev/colloquy/pkg/markup"

func IsVoidElement(tag string) bool {
	return markup.IsVoidElement(tag)
}
func Html(args ...any) *Node {
	return markup.Html(args...)
}
func Head(args ...any) *Node {
	return markup.Head(args...)
}
func Body(args ...any) *Node {
	return markup.Body(args...)
}
func Title(args ...any) *Node {
	return markup.Title(args...)
}
func Meta(args ...any) *Node {
	return markup.Meta(args...)
}
func LinkEl(args ...any) *Node {
	return markup.Link(args...)
}
func Header(args ...any) *Node {
	return markup.Header(args...)
}
func Footer(args ...any) *Node {
	return markup.Footer(args...)
}
func Main(args ...any) *Node {
	return markup.Main(args...)
}
func Nav(args ...any) *Node {
	return markup.Nav(args...)
}
func Section(args ...any) *Node {
	return markup.Section(args...)
}
func Article(args ...any) *Node {
	return markup.Article(args...)
}
func Aside(args ...any) *Node {
	return markup.Aside(args...)
}
func H1(args ...any) *Node {
	return markup.H1(args...)
}
func H2(args ...any) *Node {
	return markup.H2(args...)
}
func H3(args ...any) *Node {
	return markup.H3(args...)
}
func H4(args ...any) *Node {
	return markup.H4(args...)
}
func Div(args ...any) *Node {
	return markup.Div(args...)
}
func P(args ...any) *Node {
	return markup.P(args...)
}
func Span(args ...any) *Node {
	return markup.Span(args...)
}
func Pre(args ...any) *Node {
	return markup.Pre(args...)
}
func Blockquote(args ...any) *Node {
	return markup.Blockquote(args...)
}
func Ul(args ...any) *Node {
	return markup.Ul(args...)
}
func Ol(args ...any) *Node {
	return markup.Ol(args...)
}
func Li(args ...any) *Node {
	return markup.Li(args...)
}
func Hr(args ...any) *Node {
	return markup.Hr(args...)
}
func Figure(args ...any) *Node {
	return markup.Figure(args...)
}
func Figcaption(args ...any) *Node {
	return markup.Figcaption(args...)
}
func A(args ...any) *Node {
	return markup.A(args...)
}
func Strong(args ...any) *Node {
	return markup.Strong(args...)
}
func Em(args ...any) *Node {
	return markup.Em(args...)
}
func B(args ...any) *Node {
	return markup.B(args...)
}
func I(args ...any) *Node {
	return markup.I(args...)
}
func Small(args ...any) *Node {
	return markup.Small(args...)
}
func Mark(args ...any) *Node {
	return markup.Mark(args...)
}
func Code(args ...any) *Node {
	return markup.Code(args...)
}
func Abbr(args ...any) *Node {
	return markup.Abbr(args...)
}
func Time_(args ...any) *Node {
	return markup.Time_(args...)
}
func Cite(args ...any) *Node {
	return markup.Cite(args...)
}
func Q(args ...any) *Node {
	return markup.Q(args...)
}
func Br(args ...any) *Node {
	return markup.Br(args...)
}
func Form(args ...any) *Node {
	return markup.Form(args...)
}
func Input(args ...any) *Node {
	return markup.Input(args...)
}
func Textarea(args ...any) *Node {
	return markup.Textarea(args...)
}
func Select(args ...any) *Node {
	return markup.Select(args...)
}
func Option(args ...any) *Node {
	return markup.Option(args...)
}
func Button(args ...any) *Node {
	return markup.Button(args...)
}
func Label(args ...any) *Node {
	return markup.Label(args...)
}
func Fieldset(args ...any) *Node {
	return markup.Fieldset(args...)
}
func Legend(args ...any) *Node {
	return markup.Legend(args...)
}
func Img(args ...any) *Node {
	return markup.Img(args...)
}
func Details(args ...any) *Node {
	return markup.Details(args...)
}
func Summary(args ...any) *Node {
	return markup.Summary(args...)
}
func Script(args ...any) *Node {
	return markup.Script(args...)
}
func Noscript(args ...any) *Node {
	return markup.Noscript(args...)
}
func Template(args ...any) *Node {
	return markup.Template(args...)
}
func Style(args ...any) *Node {
	return markup.Style(args...)
}
func CustomElement(tag string, args ...any) *Node {
	return markup.CustomElement(tag, args...)
}
