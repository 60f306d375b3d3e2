package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/adapter/output"
	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/core"
)

var categoriesOpts struct {
	format string
	used   bool
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category name table",
	Long: `Show the table of category ids and their display names for the
current language, as read from the desktop-directories/*.directory files.

With --used, only the top-level categories that hold at least one visible
application are listed, one localized label per line.

Examples:
  tilemenu categories
  tilemenu categories --lang de_DE --format json
  tilemenu categories --used`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVarP(&categoriesOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, ids)")
	categoriesCmd.Flags().BoolVar(&categoriesOpts.used, "used", false,
		"Only list top-level categories used by installed applications")
}

func runCategories(cmd *cobra.Command, args []string) error {
	if !categoriesOpts.used {
		table := category.Resolve(menuLang(), nil)
		return output.FormatTable(os.Stdout, table, output.FormatType(strings.ToLower(categoriesOpts.format)))
	}

	catalog := loadCatalog()
	apps := visibleApps(catalog.Apps, cfg.Menu.ShowHidden)

	used := make(category.Table)
	for _, id := range core.UniqueCategories(apps) {
		used[id] = catalog.Table.Label(id)
	}

	if categoriesOpts.format == "plain" {
		for _, sec := range core.Group(apps, catalog.Table) {
			fmt.Printf("%s (%d)\n", sec.Label, len(sec.Apps))
		}
		return nil
	}
	return output.FormatTable(os.Stdout, used, output.FormatType(strings.ToLower(categoriesOpts.format)))
}
