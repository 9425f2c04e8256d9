package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdsite/internal/commands"
	"github.com/gerunddev/mdsite/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		commands.Build(os.Args[2:])
	case "watch", "serve":
		commands.Watch(os.Args[2:])
	case "stop":
		commands.Stop(os.Args[2:])
	case "status":
		commands.Status(os.Args[2:])
	case "init":
		commands.Init(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("mdsite v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`mdsite - Static site generator for a small Markdown dialect

Usage:
  mdsite <command> [options]

Commands:
  build       Generate the whole site (use --dry-run to preview)
  watch       Build, then rebuild changed pages as they are edited
  stop        Stop the running watcher of this site
  status      Display configuration and the last build
  init        Write the default configuration file
  version     Show version information
  help        Show this help message

Options:
  --config <path>     Use a different configuration file
  --dry-run           Show what build would change without writing
  --plain             Disable the progress spinner
  --interval <dur>    Polling interval for watch (default from config)
  --background        Run watch detached (stop with mdsite stop)
  --pages             List tracked pages in status
  --force             Overwrite an existing config with init

Examples:
  mdsite init
  mdsite build
  mdsite build --dry-run
  mdsite watch --interval 500ms
  mdsite stop
  mdsite status --pages

Configuration:
  Config file: %s
  State dir:   %s
               (one state file and watcher per content directory)
`, config.ConfigPath(), config.StateDir())
	fmt.Print(usage)
}
