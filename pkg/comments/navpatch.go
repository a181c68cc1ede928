package comments

// PaginationAttr is the marker the live-list client looks for to locate its
// pagination anchor inside the navigation markup.
const PaginationAttr = "pagination"

// PatchNavigation inserts the pagination marker as a bare boolean attribute
// immediately after the tag name of the first opening tag in markup.
//
// This is a single-pass transform over an opaque collaborator string: it
// inspects only the tag at the start of the string (leading whitespace
// allowed) and never recurses into nested tags. Strings that do not begin
// with an opening tag are returned unchanged. Everything this package emits
// itself is built structurally; this transform exists solely because the
// navigation markup arrives as a finished string.
func PatchNavigation(markup string) string {
	i := 0
	for i < len(markup) && isSpace(markup[i]) {
		i++
	}
	if i >= len(markup) || markup[i] != '<' {
		return markup
	}

	j := i + 1
	if j >= len(markup) || !isTagNameStart(markup[j]) {
		return markup
	}
	for j < len(markup) && isTagNameChar(markup[j]) {
		j++
	}

	return markup[:j] + " " + PaginationAttr + markup[j:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isTagNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return isTagNameStart(c) || (c >= '0' && c <= '9') || c == '-'
}
