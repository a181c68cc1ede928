// This file re-exports markup attribute helpers for the el package.
package el

import "github.com/colloquy-dev/colloquy/pkg/markup"

func ID(id string) Attr {
	return markup.ID(id)
}
func Class(classes ...string) Attr {
	return markup.Class(classes...)
}
func StyleAttr(style string) Attr {
	return markup.StyleAttr(style)
}
func Data(key, value string) Attr {
	return markup.Data(key, value)
}
func BoolAttr(key string) Attr {
	return markup.BoolAttr(key)
}
func On(action string) Attr {
	return markup.On(action)
}
func Role(role string) Attr {
	return markup.Role(role)
}
func AriaLabel(label string) Attr {
	return markup.AriaLabel(label)
}
func AriaHidden(hidden bool) Attr {
	return markup.AriaHidden(hidden)
}
func TitleAttr(title string) Attr {
	return markup.TitleAttr(title)
}
func Lang(lang string) Attr {
	return markup.Lang(lang)
}
func Href(url string) Attr {
	return markup.Href(url)
}
func Target(target string) Attr {
	return markup.Target(target)
}
func Rel(rel string) Attr {
	return markup.Rel(rel)
}
func Name(name string) Attr {
	return markup.Name(name)
}
func Value(value string) Attr {
	return markup.Value(value)
}
func Type(t string) Attr {
	return markup.Type(t)
}
func Placeholder(text string) Attr {
	return markup.Placeholder(text)
}
func Disabled() Attr {
	return markup.Disabled()
}
func Required() Attr {
	return markup.Required()
}
func Checked() Attr {
	return markup.Checked()
}
func Autocomplete(value string) Attr {
	return markup.Autocomplete(value)
}
func MaxLength(n int) Attr {
	return markup.MaxLength(n)
}
func Rows(n int) Attr {
	return markup.Rows(n)
}
func Cols(n int) Attr {
	return markup.Cols(n)
}
func Action(url string) Attr {
	return markup.Action(url)
}
func Method(method string) Attr {
	return markup.Method(method)
}
func Novalidate() Attr {
	return markup.Novalidate()
}
func For(id string) Attr {
	return markup.For(id)
}
func Src(url string) Attr {
	return markup.Src(url)
}
func Alt(text string) Attr {
	return markup.Alt(text)
}
func Width(w int) Attr {
	return markup.Width(w)
}
func Height(h int) Attr {
	return markup.Height(h)
}
func Loading(mode string) Attr {
	return markup.Loading(mode)
}
func Charset(charset string) Attr {
	return markup.Charset(charset)
}
func Content(content string) Attr {
	return markup.Content(content)
}
func Hidden() Attr {
	return markup.Hidden()
}
func Open() Attr {
	return markup.Open()
}
func ClassIf(condition bool, class string) Attr {
	return markup.ClassIf(condition, class)
}
func AttrIf(condition bool, a Attr) Attr {
	return markup.AttrIf(condition, a)
}
func Classes(classes ...any) Attr {
	return markup.Classes(classes...)
}
