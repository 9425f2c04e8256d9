package diff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/mdsite/internal/site"
)

// Format represents the output format for diffs
type Format int

const (
	// FormatTerminal renders diffs with Glamour (default)
	FormatTerminal Format = iota
	// FormatPlain returns the fenced unified diff as is
	FormatPlain
)

// Unified returns the unified diff between the page on disk and its
// regenerated output. Generated pages are a single line, so both sides are
// split at tag boundaries first to keep hunks readable.
func Unified(change site.PageChange) string {
	name := filepath.Base(change.Dest)
	before := splitTags(change.Old)
	after := splitTags(change.New)

	to := name + " (regenerated)"
	if change.New == "" {
		to = name + " (removed)"
	}

	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (current)", to, before, edits))
}

// Generate renders the diffs of all changes in the given format
func Generate(changes []site.PageChange, format Format) (string, error) {
	var md strings.Builder
	for _, change := range changes {
		fmt.Fprintf(&md, "### %s\n\n", change.Source)
		// Wrap in markdown diff code fence
		fmt.Fprintf(&md, "```diff\n%s```\n\n", Unified(change))
	}
	diffMarkdown := md.String()

	switch format {
	case FormatPlain:
		return diffMarkdown, nil
	case FormatTerminal:
		return render(diffMarkdown), nil
	default:
		return "", fmt.Errorf("unsupported diff format: %d", format)
	}
}

// render renders markdown with Glamour, falling back to the plain text
func render(diffMarkdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}

// splitTags puts every tag that closes a block-level element on its own
// line ending
func splitTags(html string) string {
	if html == "" {
		return ""
	}
	r := strings.NewReplacer(
		"</p>", "</p>\n",
		"</h1>", "</h1>\n", "</h2>", "</h2>\n", "</h3>", "</h3>\n",
		"</h4>", "</h4>\n", "</h5>", "</h5>\n", "</h6>", "</h6>\n",
		"</li>", "</li>\n",
		"</pre>", "</pre>\n",
		"</blockquote>", "</blockquote>\n",
		"><div>", ">\n<div>",
	)
	out := r.Replace(html)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}
