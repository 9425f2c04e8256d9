package site

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

const (
	titlePlaceholder   = "{{ Title }}"
	contentPlaceholder = "{{ Content }}"
)

// Template is a page skeleton with {{ Title }} and {{ Content }} slots
type Template struct {
	raw string
}

// NewTemplate wraps template text
func NewTemplate(raw string) *Template {
	return &Template{raw: raw}
}

// LoadTemplate reads a template from disk
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return NewTemplate(string(data)), nil
}

// Execute fills both placeholders in a single pass, so text inside the title
// is never treated as a placeholder
func (t *Template) Execute(title, content string) string {
	r := strings.NewReplacer(titlePlaceholder, title, contentPlaceholder, content)
	return r.Replace(t.raw)
}

// RewritePaths prefixes root-relative href and src values with basePath so a
// site can be served from a sub-path. Protocol-relative URLs are left alone.
func RewritePaths(doc, basePath string) (string, error) {
	if basePath == "" || basePath == "/" {
		return doc, nil
	}
	prefix := strings.TrimSuffix(basePath, "/")

	z := html.NewTokenizer(strings.NewReader(doc))
	var out bytes.Buffer
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String(), nil
			}
			return "", fmt.Errorf("failed to tokenize page: %w", z.Err())
		}

		raw := append([]byte(nil), z.Raw()...)
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.Write(raw)
			continue
		}

		tok := z.Token()
		rewritten := false
		for i, attr := range tok.Attr {
			if attr.Namespace != "" || (attr.Key != "href" && attr.Key != "src") {
				continue
			}
			if strings.HasPrefix(attr.Val, "/") && !strings.HasPrefix(attr.Val, "//") {
				tok.Attr[i].Val = prefix + attr.Val
				rewritten = true
			}
		}

		if rewritten {
			out.WriteString(tok.String())
		} else {
			out.Write(raw)
		}
	}
}
