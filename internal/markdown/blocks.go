package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BlockType is the structural role of a block
type BlockType int

const (
	Paragraph BlockType = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

func (t BlockType) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	default:
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
}

// Block is a normalized block together with its classification.
// Level is 1-6 for headings and 0 otherwise.
type Block struct {
	Text  string
	Type  BlockType
	Level int
}

const fence = "```"

var headingPattern = regexp.MustCompile(`^(#{1,6}) \S`)

// ParseBlocks splits a document on blank lines. Lines are trimmed, lines that
// end up empty are dropped, and blocks with nothing left are discarded.
func ParseBlocks(markdown string) []string {
	content := strings.TrimSpace(strings.ReplaceAll(markdown, "\r\n", "\n"))
	if content == "" {
		return nil
	}

	var blocks []string
	for _, candidate := range strings.Split(content, "\n\n") {
		var lines []string
		for _, line := range strings.Split(candidate, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return blocks
}

// ClassifyBlock determines the type of a normalized block. Quote and list
// blocks require every line to carry the marker; a single stray line turns
// the whole block into a paragraph.
func ClassifyBlock(block string) Block {
	lines := strings.Split(block, "\n")

	if m := headingPattern.FindStringSubmatch(lines[0]); m != nil {
		return Block{Text: block, Type: Heading, Level: len(m[1])}
	}
	if len(lines) >= 2 && strings.HasPrefix(lines[0], fence) && lines[len(lines)-1] == fence {
		return Block{Text: block, Type: CodeBlock}
	}
	if allLines(lines, func(_ int, l string) bool { return strings.HasPrefix(l, ">") }) {
		return Block{Text: block, Type: Quote}
	}
	if allLines(lines, func(_ int, l string) bool { return strings.HasPrefix(l, "- ") }) {
		return Block{Text: block, Type: UnorderedList}
	}
	if allLines(lines, func(i int, l string) bool { return strings.HasPrefix(l, orderedMarker(i)) }) {
		return Block{Text: block, Type: OrderedList}
	}
	return Block{Text: block, Type: Paragraph}
}

func allLines(lines []string, ok func(int, string) bool) bool {
	for i, l := range lines {
		if !ok(i, l) {
			return false
		}
	}
	return true
}

// orderedMarker returns the expected prefix of the i-th (0-based) list line
func orderedMarker(i int) string {
	return strconv.Itoa(i+1) + ". "
}
