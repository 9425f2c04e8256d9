package markdown

import (
	"fmt"
	"strings"

	"github.com/gerunddev/mdsite/internal/htmlnode"
)

// BuildDocument converts a whole document into a tree rooted at a div.
// The first failing block aborts the build; no partial tree is returned.
func BuildDocument(markdown string) (*htmlnode.Parent, error) {
	blocks := ParseBlocks(markdown)
	children := make([]htmlnode.Node, 0, len(blocks))

	for i, text := range blocks {
		node, err := blockToNode(ClassifyBlock(text))
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		children = append(children, node)
	}

	return htmlnode.NewParent("div", children)
}

func blockToNode(b Block) (htmlnode.Node, error) {
	switch b.Type {
	case Paragraph:
		return inlineParent("p", joinLines(b.Text))
	case Heading:
		text := strings.TrimLeft(b.Text[b.Level:], " ")
		return inlineParent(fmt.Sprintf("h%d", b.Level), joinLines(text))
	case CodeBlock:
		return codeToNode(b.Text)
	case Quote:
		return quoteToNode(b.Text)
	case UnorderedList:
		return listToNode("ul", b.Text, func(int) string { return "- " })
	case OrderedList:
		return listToNode("ol", b.Text, orderedMarker)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlockType, b.Type)
	}
}

// inlineParent parses text into spans and wraps them in tag
func inlineParent(tag, text string) (*htmlnode.Parent, error) {
	spans, err := ParseInline(text)
	if err != nil {
		return nil, err
	}
	nodes, err := spansToNodes(spans)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(tag, nodes)
}

// codeToNode drops the fence lines, including any language tag on the
// opening fence, and nests the body in <pre><code>
func codeToNode(block string) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	body := lines[1 : len(lines)-1]

	text := ""
	if len(body) > 0 {
		text = strings.Join(body, "\n") + "\n"
	}

	code, err := inlineParent("code", text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("pre", []htmlnode.Node{code})
}

func quoteToNode(block string) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimPrefix(line, ">")
		// A bare ">" line carries no text
		if line = strings.TrimPrefix(line, " "); line != "" {
			stripped = append(stripped, line)
		}
	}
	return inlineParent("blockquote", strings.Join(stripped, " "))
}

func listToNode(tag, block string, marker func(int) string) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		item, err := inlineParent("li", strings.TrimPrefix(line, marker(i)))
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return htmlnode.NewParent(tag, items)
}

// joinLines folds source line breaks into spaces
func joinLines(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}
