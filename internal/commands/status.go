package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/watcher"
)

// Status shows configuration and the last recorded build
func Status(args []string) {
	cfg := loadConfig(args)

	st, err := state.Load(cfg.StatePath())
	if err != nil {
		fail("Error loading state: %v", err)
	}

	fmt.Print(statusReport(cfg, st))
	fmt.Println(watcherStatus(watcher.New(cfg.PIDPath())))

	if hasFlag(args, "--pages") {
		fmt.Print(pageList(st))
	}

	if _, err := os.Stat(cfg.TemplatePath); err != nil {
		fmt.Println(styles.WarningStyle.Render("! Template not found: " + cfg.TemplatePath))
	}
}

func statusReport(cfg *config.Config, st *state.State) string {
	out := styles.TitleStyle.Render("mdsite status") + "\n\n"
	out += styles.Field("Content", cfg.ContentDir) + "\n"
	out += styles.Field("Static", cfg.StaticDir) + "\n"
	out += styles.Field("Output", cfg.PublicDir) + "\n"
	out += styles.Field("Template", cfg.TemplatePath) + "\n"
	out += styles.Field("Base path", cfg.BasePath) + "\n"
	out += styles.Field("Pages", fmt.Sprintf("%d tracked", len(st.Pages))) + "\n"

	if st.LastBuildID == "" {
		out += styles.Field("Last build", styles.DimStyle.Render("never")) + "\n"
		return out
	}
	out += styles.Field("Last build", humanize.Time(st.LastBuild)) + "\n"
	out += styles.Field("Build ID", st.LastBuildID) + "\n"
	return out
}

func trackedPages(st *state.State) []string {
	pages := make([]string, 0, len(st.Pages))
	for path := range st.Pages {
		pages = append(pages, path)
	}
	sort.Strings(pages)
	return pages
}

func watcherStatus(pf *watcher.PIDFile) string {
	running, pid, started := pf.Running()
	if !running {
		return styles.Field("Watcher", styles.DimStyle.Render("stopped"))
	}
	value := fmt.Sprintf("running (PID %d, started %s)", pid, humanize.Time(started))
	return styles.Field("Watcher", styles.SuccessStyle.Render(value)) + "\n" +
		styles.Field("PID file", styles.PathStyle.Render(pf.Path()))
}

// pageList renders tracked sources with the modification time recorded at
// their last generation
func pageList(st *state.State) string {
	var out string
	for _, path := range trackedPages(st) {
		out += "  " + styles.PathStyle.Render(path) + " " +
			styles.DimStyle.Render(humanize.Time(st.GetMTime(path))) + "\n"
	}
	return out
}
