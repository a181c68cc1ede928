package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer emits nodes as HTML on an underlying io.Writer.
//
// Besides whole-tree emission (WriteNode), it supports streaming a wrapper
// element open tag, letting a collaborator write the body directly to the
// same sink, and closing the tag afterwards. Output is produced in strict
// document order; nothing is buffered or reordered.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// String renders a node tree to an HTML string.
func String(n *Node) string {
	var sb strings.Builder
	NewWriter(&sb).WriteNode(n)
	return sb.String()
}

// Render writes a node tree to w.
func Render(w io.Writer, n *Node) error {
	return NewWriter(w).WriteNode(n)
}

// WriteNode emits a node and its subtree.
func (wr *Writer) WriteNode(n *Node) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindElement:
		return wr.writeElement(n)
	case KindText:
		return wr.WriteText(n.Text)
	case KindFragment:
		for _, child := range n.Children {
			if err := wr.WriteNode(child); err != nil {
				return err
			}
		}
		return nil
	case KindRaw:
		return wr.WriteRaw(n.Text)
	default:
		return fmt.Errorf("unknown node kind: %d", n.Kind)
	}
}

// OpenTag emits only the opening tag of an element node, attributes
// included. Void elements are complete after OpenTag; for all others the
// caller owns emitting the body and calling CloseTag.
func (wr *Writer) OpenTag(n *Node) error {
	if n == nil || n.Kind != KindElement {
		return fmt.Errorf("open tag requires an element node")
	}
	if _, err := io.WriteString(wr.w, "<"+n.Tag); err != nil {
		return err
	}
	if err := wr.writeAttrs(n); err != nil {
		return err
	}
	_, err := io.WriteString(wr.w, ">")
	return err
}

// CloseTag emits a closing tag.
func (wr *Writer) CloseTag(tag string) error {
	_, err := io.WriteString(wr.w, "</"+tag+">")
	return err
}

// WriteText emits escaped text content.
func (wr *Writer) WriteText(s string) error {
	_, err := io.WriteString(wr.w, EscapeText(s))
	return err
}

// WriteRaw emits a string verbatim, without escaping.
func (wr *Writer) WriteRaw(s string) error {
	_, err := io.WriteString(wr.w, s)
	return err
}

// writeElement emits an element with its attributes and children.
func (wr *Writer) writeElement(n *Node) error {
	if err := wr.OpenTag(n); err != nil {
		return err
	}

	if IsVoidElement(n.Tag) {
		return nil
	}

	for _, child := range n.Children {
		if err := wr.WriteNode(child); err != nil {
			return err
		}
	}

	return wr.CloseTag(n.Tag)
}

// writeAttrs emits attributes in construction order.
// A true value renders as a bare boolean attribute, false and nil render
// nothing, everything else renders as an escaped key="value" pair.
func (wr *Writer) writeAttrs(n *Node) error {
	for _, a := range n.Attrs {
		if a.Key == "" || a.Value == nil {
			continue
		}

		if b, ok := a.Value.(bool); ok {
			if b {
				if _, err := io.WriteString(wr.w, " "+a.Key); err != nil {
					return err
				}
			}
			continue
		}

		escaped := EscapeAttr(attrString(a.Value))
		if _, err := io.WriteString(wr.w, ` `+a.Key+`="`+escaped+`"`); err != nil {
			return err
		}
	}
	return nil
}

// attrString converts an attribute value to its string form.
func attrString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
