package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/state"
)

// Generator builds a site from a content tree
type Generator struct {
	config   *config.Config
	state    *state.State
	log      *logger.Logger
	progress func(status string)
}

// NewGenerator creates a new generator instance
func NewGenerator(cfg *config.Config, st *state.State) *Generator {
	return &Generator{
		config:   cfg,
		state:    st,
		log:      logger.Discard(),
		progress: func(string) {},
	}
}

// SetLogger sets the logger used during builds
func (g *Generator) SetLogger(l *logger.Logger) {
	g.log = l
}

// SetProgress registers fn to receive a short status line as a build moves
// through its steps
func (g *Generator) SetProgress(fn func(status string)) {
	if fn == nil {
		fn = func(string) {}
	}
	g.progress = fn
}

// BuildResult represents the result of a build
type BuildResult struct {
	BuildID     string
	Pages       []string
	Skipped     int
	Removed     int
	StaticFiles int
	Bytes       int64
	Errors      []error
	StartTime   time.Time
	EndTime     time.Time
}

// PageChange describes how a regenerated page differs from what is on disk.
// New is empty when the output would be removed.
type PageChange struct {
	Source string
	Dest   string
	Old    string
	New    string
}

// Build removes the public directory, copies static files and generates
// every content page
func (g *Generator) Build(ctx context.Context) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(g.config.PublicDir); err != nil {
		return nil, fmt.Errorf("failed to clean public directory: %w", err)
	}
	g.state.Reset()
	return g.run(ctx, true)
}

// Rebuild regenerates only pages whose source changed since the last build,
// or every page when the template changed
func (g *Generator) Rebuild(ctx context.Context) (*BuildResult, error) {
	return g.run(ctx, false)
}

func (g *Generator) run(ctx context.Context, full bool) (*BuildResult, error) {
	result := &BuildResult{
		BuildID:   uuid.NewString(),
		StartTime: time.Now(),
	}
	g.log.BuildStarted(result.BuildID, g.config.ContentDir, g.config.PublicDir)

	tmpl, err := LoadTemplate(g.config.TemplatePath)
	if err != nil {
		return nil, err
	}
	templateChanged, templateHash, err := g.state.TemplateChanged(g.config.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash template: %w", err)
	}
	if templateChanged {
		full = true
	}

	g.progress("Copying static files...")
	copied, err := CopyStatic(g.config.StaticDir, g.config.PublicDir, g.log)
	if err != nil {
		return nil, fmt.Errorf("failed to copy static files: %w", err)
	}
	result.StaticFiles = copied.Files
	result.Bytes += copied.Bytes

	sources, err := FindPages(g.config.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	opts := Options{BasePath: g.config.BasePath, Sanitize: g.config.Sanitize}
	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seen[src] = true
		g.progress(fmt.Sprintf("Generating %s (%d/%d)", filepath.Base(src), i+1, len(sources)))

		if !full {
			changed, err := g.state.HasChanged(src)
			if err != nil {
				g.log.PageError(src, err)
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", src, err))
				continue
			}
			if !changed {
				g.log.Skipped(src, "unchanged")
				result.Skipped++
				continue
			}
		}

		dest, err := g.OutputPath(src)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		page, err := GeneratePage(src, dest, tmpl, opts)
		if err != nil {
			g.log.PageError(src, err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", src, err))
			continue
		}
		if err := g.state.Update(src, dest); err != nil {
			g.log.StateError("update", err)
		}
		if page.Draft {
			if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
				g.log.StateError("remove draft page", err)
			}
			g.log.Skipped(src, "draft")
			result.Skipped++
			continue
		}
		g.log.PageGenerated(src, dest)
		result.Pages = append(result.Pages, dest)
		result.Bytes += int64(len(page.HTML))
	}

	for _, out := range g.state.Forget(seen) {
		if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
			g.log.StateError("remove stale page", err)
			continue
		}
		result.Removed++
	}

	g.state.TemplateHash = templateHash

	result.EndTime = time.Now()
	g.state.RecordBuild(result.BuildID, result.EndTime)
	g.log.BuildCompleted(result.BuildID, len(result.Pages), len(result.Errors), result.EndTime.Sub(result.StartTime))

	return result, nil
}

// Plan renders every page without writing anything and returns the pages
// whose output would change, including drafts whose output would be removed
func (g *Generator) Plan(ctx context.Context) ([]PageChange, error) {
	tmpl, err := LoadTemplate(g.config.TemplatePath)
	if err != nil {
		return nil, err
	}

	sources, err := FindPages(g.config.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	opts := Options{BasePath: g.config.BasePath, Sanitize: g.config.Sanitize}
	var changes []PageChange
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}
		page, err := RenderPage(string(data), tmpl, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}
		dest, err := g.OutputPath(src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		old, err := os.ReadFile(dest)
		if err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("%s: %w", dest, err))
			continue
		}

		// A draft's existing output is removed by the next build
		if page.Draft {
			if err == nil {
				changes = append(changes, PageChange{Source: src, Dest: dest, Old: string(old)})
			}
			continue
		}
		if string(old) == page.HTML {
			continue
		}

		changes = append(changes, PageChange{Source: src, Dest: dest, Old: string(old), New: page.HTML})
	}

	return changes, errors.Join(errs...)
}

// OutputPath maps a content file onto its location under the public
// directory, swapping the .md extension for .html
func (g *Generator) OutputPath(src string) (string, error) {
	rel, err := filepath.Rel(g.config.ContentDir, src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", src, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the content directory", src)
	}
	return filepath.Join(g.config.PublicDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html"), nil
}

// FindPages returns every Markdown file under dir in lexical order
func FindPages(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ".md" {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// String returns a human-readable summary of the build result
func (r *BuildResult) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Build complete: %d pages generated, %d skipped, %d static files, %d errors (took %v)",
		len(r.Pages),
		r.Skipped,
		r.StaticFiles,
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
