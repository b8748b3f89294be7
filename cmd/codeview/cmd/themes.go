package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/codeview/pkg/config"
	"github.com/go-drift/codeview/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "themes",
		Short: "List the available themes",
		Long: `List the engine-native themes and every theme in the theme table,
including the theme files configured in codeview.yaml or codeview.toml in
the current directory (or DIR).`,
		Usage: "codeview themes [DIR]",
		Run:   runThemes,
	})
}

func runThemes(args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	} else if wd, err := os.Getwd(); err == nil {
		dir = wd
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := cfg.LoadThemes(); err != nil {
		return fmt.Errorf("failed to load themes: %w", err)
	}

	for _, base := range []theme.Base{theme.BaseLight, theme.BaseDark, theme.BaseHighContrast} {
		fmt.Fprintf(stdout, "  %-20s native\n", base)
	}
	for _, name := range theme.Names() {
		def, _ := theme.Lookup(name)
		bg := def.Colors["editor.background"]
		if bg == "" {
			bg = "-"
		}
		fmt.Fprintf(stdout, "  %-20s %-8s %s\n", name, def.Base, bg)
	}
	return nil
}
