package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/diff"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
)

// Build generates the whole site from scratch
func Build(args []string) {
	cfg := loadConfig(args)

	if hasFlag(args, "--dry-run") {
		dryRun(cfg)
		return
	}

	st, err := state.Load(cfg.StatePath())
	if err != nil {
		fail("Error loading state: %v", err)
	}

	interactive := isTerminal() && !hasFlag(args, "--plain")

	// With the spinner on screen, log lines only go to the log file
	var logOut io.Writer = os.Stderr
	if interactive {
		logOut = io.Discard
	}
	log, cleanup := newLogger(cfg, logOut)
	defer cleanup()
	log.ConfigLoaded(cfg.ContentDir, cfg.PublicDir, cfg.BasePath)

	gen := site.NewGenerator(cfg, st)
	gen.SetLogger(log)

	var result *site.BuildResult
	if interactive {
		result, err = buildWithSpinner(gen)
	} else {
		result, err = gen.Build(context.Background())
		fmt.Print(tui.Summary(result, err))
	}
	if err != nil {
		os.Exit(1)
	}

	if err := st.Save(cfg.StatePath()); err != nil {
		log.StateError("save", err)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// buildWithSpinner runs the build behind the progress TUI. Quitting the TUI
// cancels the build and waits for it to stop writing.
func buildWithSpinner(gen *site.Generator) (*site.BuildResult, error) {
	p := tea.NewProgram(tui.InitBuildModel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startBuild(ctx, gen, p.Send)

	final, err := p.Run()
	cancel()
	<-done
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		return nil, err
	}

	result, err := final.(tui.BuildModel).Result()
	if result == nil && err == nil {
		fmt.Println(styles.WarningStyle.Render("! Build interrupted"))
		return nil, fmt.Errorf("build interrupted")
	}
	return result, err
}

// startBuild runs a full build in the background, reporting progress and
// the outcome through send. The returned channel closes once the build has
// returned.
func startBuild(ctx context.Context, gen *site.Generator, send func(tea.Msg)) <-chan struct{} {
	done := make(chan struct{})
	gen.SetProgress(func(status string) { send(tui.StatusMsg(status)) })

	go func() {
		defer close(done)
		result, err := gen.Build(ctx)
		send(tui.BuildMsg{Result: result, Err: err})
	}()

	return done
}

// dryRun prints what a build would change without touching the output
func dryRun(cfg *config.Config) {
	gen := site.NewGenerator(cfg, state.NewState())

	changes, err := gen.Plan(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
	}

	if len(changes) == 0 {
		fmt.Println(styles.SuccessStyle.Render("✓ Output is up to date"))
	} else {
		format := diff.FormatPlain
		if isTerminal() {
			format = diff.FormatTerminal
		}
		out, derr := diff.Generate(changes, format)
		if derr != nil {
			fail("Error rendering diff: %v", derr)
		}
		fmt.Print(out)
		fmt.Println(styles.HighlightStyle.Render(fmt.Sprintf("%d page(s) would change", len(changes))))
	}

	if err != nil {
		os.Exit(1)
	}
}
