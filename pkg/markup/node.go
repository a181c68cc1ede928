// Package markup provides the element tree model and HTML emission used by
// the comment rendering pipeline. Trees are built with element constructors
// (Div, Ol, A, CustomElement, ...) and written out either as a whole or as
// streamed open/close tags around collaborator output.
package markup

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <ol>, <a>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without wrapper
	KindRaw                  // Raw HTML (dangerous)
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Node is a markup tree node.
//
// Attrs preserve construction order so emitted tags read the way they were
// built; setting an existing key updates it in place.
type Node struct {
	Kind     Kind    // Node type
	Tag      string  // Element tag name (e.g., "ol")
	Attrs    []Attr  // Attributes, in construction order
	Children []*Node // Child nodes
	Text     string  // For KindText and KindRaw
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// SetAttr sets an attribute, replacing the value in place if the key is
// already present.
func (n *Node) SetAttr(key string, value any) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
}

// AttrValue returns the value of the named attribute and whether it is set.
func (n *Node) AttrValue(key string) (any, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			return n.Attrs[i].Value, true
		}
	}
	return nil, false
}
