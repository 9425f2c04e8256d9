package markdown

import (
	"fmt"
	"strings"
)

// delimiters are applied in order; each pass only splits plain spans left
// over by the previous one
var delimiters = []struct {
	marker string
	kind   SpanKind
}{
	{"`", Code},
	{"_", Italic},
	{"**", Bold},
}

// ParseInline splits the text of one block into formatted spans.
// Empty input yields no spans.
func ParseInline(text string) ([]TextSpan, error) {
	if text == "" {
		return nil, nil
	}

	spans := []TextSpan{Text(text)}
	var err error
	for _, d := range delimiters {
		spans, err = SplitDelimiter(spans, d.marker, d.kind)
		if err != nil {
			return nil, err
		}
	}

	// Images first: ![alt](url) contains [alt](url)
	if spans, err = SplitImages(spans); err != nil {
		return nil, err
	}
	if spans, err = SplitLinks(spans); err != nil {
		return nil, err
	}
	return spans, nil
}

// SplitDelimiter splits every plain span on delim. Odd-indexed sections
// become spans of the given kind. An even section count means a delimiter was
// left open.
func SplitDelimiter(spans []TextSpan, delim string, kind SpanKind) ([]TextSpan, error) {
	out := make([]TextSpan, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		sections := strings.Split(s.Text, delim)
		if len(sections)%2 == 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnterminatedDelimiter, delim, s.Text)
		}
		for i, section := range sections {
			if section == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, Text(section))
			} else {
				out = append(out, TextSpan{Text: section, Kind: kind})
			}
		}
	}
	return out, nil
}

// SplitImages extracts ![alt](url) constructs from plain spans
func SplitImages(spans []TextSpan) ([]TextSpan, error) {
	return splitBrackets(spans, Image)
}

// SplitLinks extracts [text](url) constructs from plain spans. A bracket
// directly preceded by '!' is never treated as a link.
func SplitLinks(spans []TextSpan) ([]TextSpan, error) {
	return splitBrackets(spans, Link)
}

func splitBrackets(spans []TextSpan, kind SpanKind) ([]TextSpan, error) {
	out := make([]TextSpan, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		rest := s.Text
		for {
			m, ok, err := nextBracket(rest, kind == Image)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if m.start > 0 {
				out = append(out, Text(rest[:m.start]))
			}
			out = append(out, TextSpan{Text: m.label, Kind: kind, URL: m.url})
			rest = rest[m.end:]
		}
		if rest != "" {
			out = append(out, Text(rest))
		}
	}
	return out, nil
}

// bracketMatch locates one [label](url) construct; start and end are byte
// offsets covering the whole construct including a leading '!' for images
type bracketMatch struct {
	start, end int
	label, url string
}

// nextBracket scans text left to right for the first well-formed construct.
// An opening bracket whose ']' or ')' never arrives is an error, even when
// nothing before it matched.
func nextBracket(text string, image bool) (bracketMatch, bool, error) {
	unclosed := ErrUnterminatedLink
	if image {
		unclosed = ErrUnterminatedImage
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		bang := i > 0 && text[i-1] == '!'
		if bang != image {
			continue
		}
		start := i
		if image {
			start = i - 1
		}

		labelEnd := strings.IndexByte(text[i+1:], ']')
		if labelEnd < 0 {
			return bracketMatch{}, false, fmt.Errorf("%w: %q", unclosed, text[start:])
		}
		labelEnd += i + 1

		if labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
			continue
		}

		urlEnd := strings.IndexByte(text[labelEnd+2:], ')')
		if urlEnd < 0 {
			return bracketMatch{}, false, fmt.Errorf("%w: %q", unclosed, text[start:])
		}
		urlEnd += labelEnd + 2

		return bracketMatch{
			start: start,
			end:   urlEnd + 1,
			label: text[i+1 : labelEnd],
			url:   text[labelEnd+2 : urlEnd],
		}, true, nil
	}
	return bracketMatch{}, false, nil
}
