package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gerunddev/mdsite/internal/markdown"
)

// Options controls how pages are rendered
type Options struct {
	BasePath string
	Sanitize bool
}

// Page is a rendered content page
type Page struct {
	Title string
	Draft bool
	HTML  string
}

// RenderPage converts one Markdown source into a complete HTML page
func RenderPage(source string, tmpl *Template, opts Options) (*Page, error) {
	fm, body, err := SplitFrontMatter(source)
	if err != nil {
		return nil, err
	}

	title := fm.Title
	if title == "" {
		if title, err = ExtractTitle(body); err != nil {
			return nil, err
		}
	}

	root, err := markdown.BuildDocument(body)
	if err != nil {
		return nil, err
	}

	content := root.Render()
	if opts.Sanitize {
		content = bluemonday.UGCPolicy().Sanitize(content)
	}

	doc, err := RewritePaths(tmpl.Execute(title, content), opts.BasePath)
	if err != nil {
		return nil, err
	}

	return &Page{Title: title, Draft: fm.Draft, HTML: doc}, nil
}

// GeneratePage renders src with tmpl and writes the result to dest,
// creating parent directories as needed
func GeneratePage(src, dest string, tmpl *Template, opts Options) (*Page, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	page, err := RenderPage(string(data), tmpl, opts)
	if err != nil {
		return nil, err
	}
	if page.Draft {
		return page, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, []byte(page.HTML), 0644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	return page, nil
}
