package markdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		delim    string
		kind     SpanKind
		expected []TextSpan
	}{
		{
			name:  "bold",
			input: "This is text with a **bolded** word",
			delim: "**",
			kind:  Bold,
			expected: []TextSpan{
				Text("This is text with a "),
				{Text: "bolded", Kind: Bold},
				Text(" word"),
			},
		},
		{
			name:  "bold twice, trailing delimiter",
			input: "This is text with a **bolded** word and **another**",
			delim: "**",
			kind:  Bold,
			expected: []TextSpan{
				Text("This is text with a "),
				{Text: "bolded", Kind: Bold},
				Text(" word and "),
				{Text: "another", Kind: Bold},
			},
		},
		{
			name:  "italic",
			input: "This is text with an _italic_ word",
			delim: "_",
			kind:  Italic,
			expected: []TextSpan{
				Text("This is text with an "),
				{Text: "italic", Kind: Italic},
				Text(" word"),
			},
		},
		{
			name:  "code",
			input: "This is text with a `code block` word",
			delim: "`",
			kind:  Code,
			expected: []TextSpan{
				Text("This is text with a "),
				{Text: "code block", Kind: Code},
				Text(" word"),
			},
		},
		{
			name:     "adjacent delimiters dropped",
			input:    "a``b",
			delim:    "`",
			kind:     Code,
			expected: []TextSpan{Text("a"), Text("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitDelimiter([]TextSpan{Text(tt.input)}, tt.delim, tt.kind)
			if err != nil {
				t.Fatalf("SplitDelimiter() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("SplitDelimiter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitDelimiterPassesThroughFormatted(t *testing.T) {
	in := []TextSpan{{Text: "x_y", Kind: Code}, Text("**b**")}
	got, err := SplitDelimiter(in, "**", Bold)
	if err != nil {
		t.Fatalf("SplitDelimiter() error = %v", err)
	}
	want := []TextSpan{{Text: "x_y", Kind: Code}, {Text: "b", Kind: Bold}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitImages(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TextSpan
	}{
		{
			name:  "trailing image",
			input: "This is text with an ![image](https://i.imgur.com/zjjcJKZ.png)",
			expected: []TextSpan{
				Text("This is text with an "),
				{Text: "image", Kind: Image, URL: "https://i.imgur.com/zjjcJKZ.png"},
			},
		},
		{
			name:  "image only",
			input: "![image](https://www.example.COM/IMAGE.PNG)",
			expected: []TextSpan{
				{Text: "image", Kind: Image, URL: "https://www.example.COM/IMAGE.PNG"},
			},
		},
		{
			name:  "two images",
			input: "This is text with an ![image](https://i.imgur.com/zjjcJKZ.png) and another ![second image](https://i.imgur.com/3elNhQu.png)",
			expected: []TextSpan{
				Text("This is text with an "),
				{Text: "image", Kind: Image, URL: "https://i.imgur.com/zjjcJKZ.png"},
				Text(" and another "),
				{Text: "second image", Kind: Image, URL: "https://i.imgur.com/3elNhQu.png"},
			},
		},
		{
			name:     "empty alt",
			input:    "![](empty_alt.png)",
			expected: []TextSpan{{Text: "", Kind: Image, URL: "empty_alt.png"}},
		},
		{
			name:     "links left alone",
			input:    "a [link](https://boot.dev)",
			expected: []TextSpan{Text("a [link](https://boot.dev)")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitImages([]TextSpan{Text(tt.input)})
			if err != nil {
				t.Fatalf("SplitImages() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("SplitImages() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitLinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TextSpan
	}{
		{
			name:  "two links",
			input: "This is text with a [link](https://boot.dev) and [another link](https://blog.boot.dev) with text that follows",
			expected: []TextSpan{
				Text("This is text with a "),
				{Text: "link", Kind: Link, URL: "https://boot.dev"},
				Text(" and "),
				{Text: "another link", Kind: Link, URL: "https://blog.boot.dev"},
				Text(" with text that follows"),
			},
		},
		{
			name:  "special characters",
			input: "Special chars in [text with-symbols!](https://example.com/path?query=value#fragment)",
			expected: []TextSpan{
				Text("Special chars in "),
				{Text: "text with-symbols!", Kind: Link, URL: "https://example.com/path?query=value#fragment"},
			},
		},
		{
			name:  "empty url",
			input: "This is a [link with empty URL]().",
			expected: []TextSpan{
				Text("This is a "),
				{Text: "link with empty URL", Kind: Link},
				Text("."),
			},
		},
		{
			name:     "nested brackets are not a link",
			input:    "This is a [[nested] bracket](https://example.com) link.",
			expected: []TextSpan{Text("This is a [[nested] bracket](https://example.com) link.")},
		},
		{
			name:     "bang prefix is not a link",
			input:    "wow![x](y)",
			expected: []TextSpan{Text("wow![x](y)")},
		},
		{
			name:     "closed brackets without url",
			input:    "see [1] and [2]",
			expected: []TextSpan{Text("see [1] and [2]")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitLinks([]TextSpan{Text(tt.input)})
			if err != nil {
				t.Fatalf("SplitLinks() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("SplitLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TextSpan
	}{
		{
			name:     "plain",
			input:    "This is plain text",
			expected: []TextSpan{Text("This is plain text")},
		},
		{
			name:  "bold italic code",
			input: "This is **bold** and _italic_ and `code`.",
			expected: []TextSpan{
				Text("This is "),
				{Text: "bold", Kind: Bold},
				Text(" and "),
				{Text: "italic", Kind: Italic},
				Text(" and "),
				{Text: "code", Kind: Code},
				Text("."),
			},
		},
		{
			name:     "image alone",
			input:    "![alt](x.png)",
			expected: []TextSpan{{Text: "alt", Kind: Image, URL: "x.png"}},
		},
		{
			name:  "everything",
			input: "This is **text** with an _italic_ word and a `code block` and an ![obi wan image](https://i.imgur.com/fJRm4Vk.jpeg) and a [link](https://boot.dev)",
			expected: []TextSpan{
				Text("This is "),
				{Text: "text", Kind: Bold},
				Text(" with an "),
				{Text: "italic", Kind: Italic},
				Text(" word and a "),
				{Text: "code block", Kind: Code},
				Text(" and an "),
				{Text: "obi wan image", Kind: Image, URL: "https://i.imgur.com/fJRm4Vk.jpeg"},
				Text(" and a "),
				{Text: "link", Kind: Link, URL: "https://boot.dev"},
			},
		},
		{
			name:  "code protects delimiters",
			input: "use `a_b` here",
			expected: []TextSpan{
				Text("use "),
				{Text: "a_b", Kind: Code},
				Text(" here"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInline(tt.input)
			if err != nil {
				t.Fatalf("ParseInline(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseInline(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseInlineEmpty(t *testing.T) {
	spans, err := ParseInline("")
	if err != nil {
		t.Fatalf("ParseInline(\"\") error = %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans, got %v", spans)
	}
}

func TestParseInlineErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"This is `unclosed code", ErrUnterminatedDelimiter},
		{"This is _unclosed italic", ErrUnterminatedDelimiter},
		{"This is **unclosed bold", ErrUnterminatedDelimiter},
		{"This is [unclosed](link", ErrUnterminatedLink},
		{"This is [unclosed", ErrUnterminatedLink},
		{"[ok](fine) then [broken", ErrUnterminatedLink},
		{"This is ![unclosed](image", ErrUnterminatedImage},
		{"This is ![unclosed", ErrUnterminatedImage},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseInline(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseInline(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestParseInlinePreservesText(t *testing.T) {
	inputs := []string{
		"This is **bold** and _italic_ and `code`.",
		"**a**_b_`c` d",
		"no formatting at all",
	}
	strip := strings.NewReplacer("**", "", "_", "", "`", "")

	for _, in := range inputs {
		spans, err := ParseInline(in)
		if err != nil {
			t.Fatalf("ParseInline(%q) error = %v", in, err)
		}
		var b strings.Builder
		for _, s := range spans {
			if s.Kind == Plain && s.Text == "" {
				t.Errorf("ParseInline(%q) emitted an empty plain span", in)
			}
			b.WriteString(s.Text)
		}
		if got, want := b.String(), strip.Replace(in); got != want {
			t.Errorf("joined spans = %q, want %q", got, want)
		}
	}
}

func TestSpanToNode(t *testing.T) {
	tests := []struct {
		span     TextSpan
		tag      string
		expected string
	}{
		{Text("This is a text node"), "", "This is a text node"},
		{TextSpan{Text: "bold", Kind: Bold}, "b", "<b>bold</b>"},
		{TextSpan{Text: "italic", Kind: Italic}, "i", "<i>italic</i>"},
		{TextSpan{Text: "x := 1", Kind: Code}, "code", "<code>x := 1</code>"},
		{TextSpan{Text: "boot", Kind: Link, URL: "https://www.boot.dev"}, "a", `<a href="https://www.boot.dev" alt="boot"></a>`},
		{TextSpan{Text: "pic", Kind: Image, URL: "x.png"}, "img", `<img src="x.png" alt="pic"></img>`},
	}

	for _, tt := range tests {
		t.Run(tt.span.Kind.String(), func(t *testing.T) {
			node, err := SpanToNode(tt.span)
			if err != nil {
				t.Fatalf("SpanToNode() error = %v", err)
			}
			if node.Tag() != tt.tag {
				t.Errorf("Tag() = %q, want %q", node.Tag(), tt.tag)
			}
			if got := node.Render(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}

	if _, err := SpanToNode(TextSpan{Text: "?", Kind: SpanKind(42)}); !errors.Is(err, ErrUnknownSpanKind) {
		t.Errorf("SpanToNode(unknown) error = %v, want ErrUnknownSpanKind", err)
	}
}
