package site

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoTitle is returned when a page has neither a front matter title nor a
// level-one heading
var ErrNoTitle = errors.New("no title found")

// FrontMatter holds the YAML header of a content page
type FrontMatter struct {
	Title string `yaml:"title"`
	Draft bool   `yaml:"draft"`
}

var titlePattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)

// SplitFrontMatter separates a leading ---/--- delimited YAML block from the
// Markdown body. Content without a closed header is returned unchanged.
func SplitFrontMatter(source string) (FrontMatter, string, error) {
	var fm FrontMatter

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, source, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return fm, source, nil
	}

	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return fm, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	return fm, strings.Join(lines[end+1:], "\n"), nil
}

// ExtractTitle returns the text of the first level-one heading
func ExtractTitle(source string) (string, error) {
	m := titlePattern.FindStringSubmatch(source)
	if m == nil {
		return "", ErrNoTitle
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
