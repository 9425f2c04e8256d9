package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/watcher"
)

// Watch builds the site and then rebuilds changed pages on every tick
// until interrupted
func Watch(args []string) {
	cfg := loadConfig(args)
	interval := parseInterval(args, cfg.Interval)

	if hasFlag(args, "--background") {
		background(cfg, args)
		return
	}

	log, cleanup := newLogger(cfg, os.Stderr)
	defer cleanup()
	log.ConfigLoaded(cfg.ContentDir, cfg.PublicDir, cfg.BasePath)

	pid := watcher.New(cfg.PIDPath())
	if err := pid.Acquire(); err != nil {
		fail("%v", err)
	}
	defer func() {
		if err := pid.Release(); err != nil {
			log.StateError("release pid", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(styles.TitleStyle.Render("Watching " + cfg.ContentDir))
	fmt.Println(styles.DimStyle.Render(fmt.Sprintf("Polling every %s, press Ctrl+C to stop", interval)))

	if err := watchLoop(ctx, cfg, interval, log); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Error: "+err.Error()))
		return
	}
	fmt.Println(styles.DimStyle.Render("Stopped"))
}

// watchLoop runs an initial full build, then incremental rebuilds until ctx
// is cancelled. Page failures are logged and polling continues.
func watchLoop(ctx context.Context, cfg *config.Config, interval time.Duration, log *logger.Logger) error {
	statePath := cfg.StatePath()
	st, err := state.Load(statePath)
	if err != nil {
		log.StateError("load", err)
		st = state.NewState()
	}

	gen := site.NewGenerator(cfg, st)
	gen.SetLogger(log)

	if _, err := gen.Build(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	saveState(st, statePath, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := gen.Rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Error("Rebuild failed", "error", err)
				continue
			}
			saveState(st, statePath, log)
		}
	}
}

func saveState(st *state.State, path string, log *logger.Logger) {
	if err := st.Save(path); err != nil {
		log.StateError("save", err)
	}
}

// Stop signals the running watcher of the configured site to exit
func Stop(args []string) {
	cfg := loadConfig(args)
	pid, err := watcher.New(cfg.PIDPath()).Stop()
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("✓ Sent stop signal to watcher (PID %d)", pid)))
}

// background re-runs watch detached from the terminal
func background(cfg *config.Config, args []string) {
	pf := watcher.New(cfg.PIDPath())
	if running, pid, _ := pf.Running(); running {
		fail("Watcher already running with PID %d", pid)
	}

	childArgs := []string{"watch"}
	for _, arg := range args {
		if arg != "--background" {
			childArgs = append(childArgs, arg)
		}
	}

	pid, err := watcher.Spawn(childArgs)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("✓ Watcher started with PID %d", pid)))
	fmt.Println(styles.DimStyle.Render("  Stop it with: mdsite stop"))
}
