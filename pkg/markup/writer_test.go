package markup

import (
	"strings"
	"testing"
)

func TestWriteText(t *testing.T) {
	got := String(Text("Hello, World!"))
	if got != "Hello, World!" {
		t.Errorf("got %q, want %q", got, "Hello, World!")
	}
}

func TestWriteTextEscaping(t *testing.T) {
	got := String(Text("<script>alert('xss')</script>"))

	if strings.Contains(got, "<script>") {
		t.Errorf("HTML should be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", got)
	}
}

func TestWriteElement(t *testing.T) {
	node := Div(Class("container"),
		H1(Text("Title")),
		P(Text("Content")),
	)
	got := String(node)

	if !strings.Contains(got, `<div class="container">`) {
		t.Errorf("should contain div with class, got %q", got)
	}
	if !strings.Contains(got, `<h1>Title</h1>`) {
		t.Errorf("should contain h1, got %q", got)
	}
	if !strings.Contains(got, `<p>Content</p>`) {
		t.Errorf("should contain p, got %q", got)
	}
}

func TestWriteVoidElements(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "input",
			node: Input(Type("text"), Name("email")),
			want: `<input type="text" name="email">`,
		},
		{
			name: "br",
			node: Br(),
			want: `<br>`,
		},
		{
			name: "img",
			node: Img(Src("/image.png"), Alt("test")),
			want: `<img src="/image.png" alt="test">`,
		},
		{
			name: "hr",
			node: Hr(),
			want: `<hr>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(tt.node)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "</"+tt.name+">") {
				t.Errorf("void element should not have closing tag, got %q", got)
			}
		})
	}
}

func TestAttributeOrderPreserved(t *testing.T) {
	node := CustomElement("amp-live-list",
		ID("list-1"),
		Data("poll-interval", "60000"),
		Data("max-items-per-page", "25"),
	)
	got := String(node)

	want := `<amp-live-list id="list-1" data-poll-interval="60000" data-max-items-per-page="25"></amp-live-list>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBooleanAttributes(t *testing.T) {
	node := Input(
		Type("checkbox"),
		Checked(),
		Disabled(),
	)
	got := String(node)

	if !strings.Contains(got, " checked") {
		t.Errorf("should contain bare checked attribute, got %q", got)
	}
	if !strings.Contains(got, " disabled") {
		t.Errorf("should contain bare disabled attribute, got %q", got)
	}
	if strings.Contains(got, `checked="`) {
		t.Errorf("boolean attribute should have no value, got %q", got)
	}
}

func TestBoolAttrMarker(t *testing.T) {
	got := String(Ol(Class("comment-list"), BoolAttr("items")))
	want := `<ol class="comment-list" items></ol>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFalseBooleanOmitted(t *testing.T) {
	node := Input(Type("text"), Attr{Key: "disabled", Value: false})
	got := String(node)

	if strings.Contains(got, "disabled") {
		t.Errorf("false boolean should be omitted, got %q", got)
	}
}

func TestEmptyStringAttributeEmitted(t *testing.T) {
	got := String(Img(Src("/a.png"), Alt("")))
	if !strings.Contains(got, `alt=""`) {
		t.Errorf("empty alt should still be emitted, got %q", got)
	}
}

func TestAttributeEscaping(t *testing.T) {
	node := Div(TitleAttr(`He said "hi" & left`))
	got := String(node)

	if !strings.Contains(got, "&quot;hi&quot;") {
		t.Errorf("quotes should be escaped, got %q", got)
	}
	if !strings.Contains(got, "&amp;") {
		t.Errorf("ampersand should be escaped, got %q", got)
	}
}

func TestIntAttributeValues(t *testing.T) {
	got := String(Img(Src("/x.png"), Alt("x"), Width(32), Height(32)))
	if !strings.Contains(got, `width="32"`) || !strings.Contains(got, `height="32"`) {
		t.Errorf("int attributes should render, got %q", got)
	}
}

func TestWriteRawUnescaped(t *testing.T) {
	got := String(Div(Raw("<em>already markup</em>")))
	if !strings.Contains(got, "<em>already markup</em>") {
		t.Errorf("raw content should pass through unescaped, got %q", got)
	}
}

func TestWriteFragment(t *testing.T) {
	node := Fragment(
		Li(Text("one")),
		Li(Text("two")),
	)
	got := String(node)

	want := "<li>one</li><li>two</li>"
	if got != want {
		t.Errorf("fragment should emit children without wrapper, got %q, want %q", got, want)
	}
}

func TestOpenCloseStreaming(t *testing.T) {
	var sb strings.Builder
	wr := NewWriter(&sb)

	ol := Ol(Class("comment-list"))
	if err := wr.OpenTag(ol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Body arrives from a collaborator, not from the node tree.
	if err := wr.WriteRaw("<li>streamed</li>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wr.CloseTag("ol"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := sb.String()
	want := `<ol class="comment-list"><li>streamed</li></ol>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOpenTagRejectsNonElement(t *testing.T) {
	var sb strings.Builder
	wr := NewWriter(&sb)

	if err := wr.OpenTag(Text("nope")); err == nil {
		t.Error("expected error for non-element node")
	}
}

func TestSetAttrUpsert(t *testing.T) {
	n := Div(Class("a"), ID("x"))
	n.SetAttr("class", "b")

	got := String(n)
	want := `<div class="b" id="x"></div>`
	if got != want {
		t.Errorf("SetAttr should replace in place, got %q, want %q", got, want)
	}
}

func TestNilChildrenIgnored(t *testing.T) {
	node := Div(
		If(false, Span(Text("hidden"))),
		If(true, Span(Text("shown"))),
		nil,
	)
	got := String(node)

	if strings.Contains(got, "hidden") {
		t.Errorf("false If branch should not render, got %q", got)
	}
	if !strings.Contains(got, "shown") {
		t.Errorf("true If branch should render, got %q", got)
	}
}

func TestRangeHelper(t *testing.T) {
	items := []string{"a", "b", "c"}
	node := Ul(Range(items, func(s string, i int) *Node {
		return Li(Text(s))
	}))
	got := String(node)

	want := "<ul><li>a</li><li>b</li><li>c</li></ul>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
