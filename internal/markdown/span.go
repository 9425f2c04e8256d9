package markdown

import (
	"fmt"

	"github.com/gerunddev/mdsite/internal/htmlnode"
)

// SpanKind identifies how an inline fragment is formatted
type SpanKind int

const (
	Plain SpanKind = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (k SpanKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("SpanKind(%d)", int(k))
	}
}

// TextSpan is one inline fragment of a block. URL is only set for links and
// images.
type TextSpan struct {
	Text string
	Kind SpanKind
	URL  string
}

// Text returns a plain span
func Text(s string) TextSpan { return TextSpan{Text: s, Kind: Plain} }

func (s TextSpan) String() string {
	if s.URL != "" {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Text, s.URL)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Text)
}

// SpanToNode maps a span onto its HTML leaf
func SpanToNode(s TextSpan) (htmlnode.Node, error) {
	switch s.Kind {
	case Plain:
		return htmlnode.NewText(s.Text), nil
	case Bold:
		return htmlnode.NewLeaf("b", s.Text), nil
	case Italic:
		return htmlnode.NewLeaf("i", s.Text), nil
	case Code:
		return htmlnode.NewLeaf("code", s.Text), nil
	case Link:
		return htmlnode.NewAttrLeaf("a",
			htmlnode.Attr{Key: "href", Value: s.URL},
			htmlnode.Attr{Key: "alt", Value: s.Text})
	case Image:
		return htmlnode.NewAttrLeaf("img",
			htmlnode.Attr{Key: "src", Value: s.URL},
			htmlnode.Attr{Key: "alt", Value: s.Text})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpanKind, s.Kind)
	}
}

// spansToNodes converts a span sequence, stopping at the first failure
func spansToNodes(spans []TextSpan) ([]htmlnode.Node, error) {
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, s := range spans {
		n, err := SpanToNode(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
