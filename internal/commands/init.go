package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/styles"
)

// Init writes the default configuration file. An existing file is left
// alone unless --force is given.
func Init(args []string) {
	path := configPath(args)

	if _, err := os.Stat(path); err == nil && !hasFlag(args, "--force") {
		fmt.Println(styles.WarningStyle.Render("! Config already exists: " + path))
		fmt.Println(styles.DimStyle.Render("  Use --force to overwrite"))
		return
	}

	if err := config.DefaultConfig().SaveFile(path); err != nil {
		fail("Error writing config: %v", err)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Wrote " + path))
}
