package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingTag is returned when a parent node is built without a tag
	ErrMissingTag = errors.New("parent node requires a tag")
	// ErrMissingValue is returned when a value-less leaf is built for a tag
	// that renders its content from the value
	ErrMissingValue = errors.New("leaf node requires a value")
)

// Attr is a single HTML attribute
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list. Rendering follows insertion order.
type Attrs []Attr

// Get returns the value stored under key
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (a Attrs) render(b *strings.Builder) {
	for _, attr := range a {
		fmt.Fprintf(b, ` %s="%s"`, attr.Key, attr.Value)
	}
}

// clone copies the list so no two nodes share backing storage
func (a Attrs) clone() Attrs {
	if len(a) == 0 {
		return Attrs{}
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Node is an element of the output HTML tree
type Node interface {
	// Tag returns the element name, empty for raw text leaves
	Tag() string
	// Render serializes the node and its descendants
	Render() string

	render(b *strings.Builder)
}

// Leaf is a terminal node holding text
type Leaf struct {
	tag      string
	value    string
	hasValue bool
	attrs    Attrs
}

// NewText creates an untagged leaf that renders its value verbatim
func NewText(value string) *Leaf {
	return &Leaf{value: value, hasValue: true, attrs: Attrs{}}
}

// NewLeaf creates a tagged leaf with inner text
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{tag: tag, value: value, hasValue: true, attrs: Attrs(attrs).clone()}
}

// NewAttrLeaf creates a leaf without inner text. Only anchors and images
// may omit the value since they carry their content in attributes.
func NewAttrLeaf(tag string, attrs ...Attr) (*Leaf, error) {
	switch tag {
	case "a", "img":
	default:
		return nil, fmt.Errorf("%w: <%s>", ErrMissingValue, tag)
	}
	return &Leaf{tag: tag, attrs: Attrs(attrs).clone()}, nil
}

func (l *Leaf) Tag() string { return l.tag }

// Value returns the inner text and whether one was set
func (l *Leaf) Value() (string, bool) { return l.value, l.hasValue }

// Attrs returns a copy of the attribute list
func (l *Leaf) Attrs() Attrs { return l.attrs.clone() }

func (l *Leaf) Render() string {
	var b strings.Builder
	l.render(&b)
	return b.String()
}

func (l *Leaf) render(b *strings.Builder) {
	if l.tag == "" {
		b.WriteString(l.value)
		return
	}
	b.WriteString("<" + l.tag)
	l.attrs.render(b)
	b.WriteString(">")
	b.WriteString(l.value)
	b.WriteString("</" + l.tag + ">")
}

func (l *Leaf) String() string {
	return fmt.Sprintf("Leaf(%q, %q, %v)", l.tag, l.value, l.attrs)
}

// Parent is a container node
type Parent struct {
	tag      string
	children []Node
	attrs    Attrs
}

// NewParent creates a container node. The children slice is copied.
func NewParent(tag string, children []Node, attrs ...Attr) (*Parent, error) {
	if tag == "" {
		return nil, ErrMissingTag
	}
	kids := make([]Node, len(children))
	copy(kids, children)
	return &Parent{tag: tag, children: kids, attrs: Attrs(attrs).clone()}, nil
}

func (p *Parent) Tag() string { return p.tag }

// Children returns the direct children in order
func (p *Parent) Children() []Node {
	out := make([]Node, len(p.children))
	copy(out, p.children)
	return out
}

// Attrs returns a copy of the attribute list
func (p *Parent) Attrs() Attrs { return p.attrs.clone() }

func (p *Parent) Render() string {
	var b strings.Builder
	p.render(&b)
	return b.String()
}

func (p *Parent) render(b *strings.Builder) {
	b.WriteString("<" + p.tag)
	p.attrs.render(b)
	b.WriteString(">")
	for _, child := range p.children {
		child.render(b)
	}
	b.WriteString("</" + p.tag + ">")
}

func (p *Parent) String() string {
	return fmt.Sprintf("Parent(%q, %d children, %v)", p.tag, len(p.children), p.attrs)
}
