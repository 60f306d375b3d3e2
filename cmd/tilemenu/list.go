package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/adapter/output"
	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/core"
	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/jmylchreest/tilemenu/internal/xdg"
)

var listOpts struct {
	// Filter options
	category string
	filter   string
	search   string
	all      bool
	limit    int

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format   string
	field    string
	template string
}

var listCmd = &cobra.Command{
	Use:   "list [index|id]",
	Short: "List installed applications",
	Long: `List the applications found in the XDG share directories.

Without arguments, outputs every visible application in dmenu format. With an
index (1-based, after filtering and sorting) or desktop ID, outputs that
single application.

Filter expressions combine conditions with commas:
  name, id, exec, comment, category, terminal, dbus
  with = (equal), != (not equal), ~ (contains), ~= (regex)

Examples:
  # Everything in the Development section
  tilemenu list --category Development

  # Terminal programs as JSON
  tilemenu list --filter terminal=true --format json

  # Most used first
  tilemenu list --sort usage --order desc

  # Pipe into any picker and launch the choice
  tilemenu list --format ids | fuzzel -d | xargs tilemenu launch`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.category, "category", "c", "",
		"Only applications in this top-level category (id or localized label)")
	listCmd.Flags().StringVar(&listOpts.filter, "filter", "",
		"Filter expression (e.g. \"name~term,terminal=true\")")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Search names, comments, keywords and Exec")
	listCmd.Flags().BoolVarP(&listOpts.all, "all", "a", false,
		"Include NoDisplay and desktop-restricted entries")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of applications to show (0=unlimited)")

	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", "name",
		"Sort by field (name, category, usage)")
	listCmd.Flags().StringVar(&listOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "dmenu",
		"Output format (dmenu, plain, json, yaml, ids)")
	listCmd.Flags().StringVar(&listOpts.field, "field", "",
		"Output a single field (id, name, exec, comment, icon, path, category)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Go template or name of a configured template")
}

func runList(cmd *cobra.Command, args []string) error {
	catalog := loadCatalog()

	apps, err := applyListFilters(catalog.Apps, catalog.Table)
	if err != nil {
		return err
	}
	applyListSort(apps)

	if len(args) > 0 {
		app, err := findApp(apps, args[0])
		if err != nil {
			return err
		}
		if listOpts.field != "" {
			fmt.Println(output.FormatField(app, listOpts.field))
			return nil
		}
		switch listOpts.format {
		case "dmenu", "json":
			return output.NewJSONFormatter(output.DefaultFormatterOptions()).FormatSingle(os.Stdout, app)
		}
		return createFormatter(catalog.Table).Format(os.Stdout, []*model.Application{app})
	}

	if listOpts.limit > 0 && len(apps) > listOpts.limit {
		apps = apps[:listOpts.limit]
	}
	if listOpts.field != "" {
		for _, a := range apps {
			fmt.Println(output.FormatField(a, listOpts.field))
		}
		return nil
	}
	return createFormatter(catalog.Table).Format(os.Stdout, apps)
}

// applyListFilters applies visibility, category, filter and search options.
func applyListFilters(apps []*model.Application, table category.Table) ([]*model.Application, error) {
	opts := core.FilterOptions{
		Desktops:   xdg.CurrentDesktops(),
		ShowHidden: listOpts.all || cfg.Menu.ShowHidden,
	}
	if listOpts.category != "" {
		opts.Category = resolveCategory(listOpts.category, table)
	}
	apps = core.Filter(apps, opts)

	if listOpts.filter != "" {
		expr, err := core.ParseFilter(listOpts.filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		apps = core.FilterWithExpr(apps, expr)
	}

	if listOpts.search != "" {
		apps = core.Search(apps, listOpts.search)
	}
	return apps, nil
}

// resolveCategory maps a localized label or sub-category to its top-level id.
func resolveCategory(name string, table category.Table) string {
	if category.IsTopLevel(name) {
		return name
	}
	id := name
	for tid, label := range table {
		if strings.EqualFold(label, name) || strings.EqualFold(tid, name) {
			id = tid
			break
		}
	}
	// sub-categories select the bucket they belong to
	if main, ok := category.AdditionalToMain(id); ok {
		return main
	}
	return id
}

func applyListSort(apps []*model.Application) {
	field, _ := core.ParseSortField(listOpts.sortBy)
	order, _ := core.ParseSortOrder(listOpts.sortOrder)

	opts := core.SortOptions{Field: field, Order: order}
	if field == core.SortByUsage {
		opts.Usage = history.Counts()
	}
	core.Sort(apps, opts)
}

// createFormatter creates the output formatter based on options.
func createFormatter(table category.Table) output.Formatter {
	var format output.FormatType
	switch strings.ToLower(listOpts.format) {
	case "json":
		format = output.FormatJSON
	case "yaml", "yml":
		format = output.FormatYAML
	case "plain":
		format = output.FormatPlain
	case "ids":
		format = output.FormatIDs
	default:
		format = output.FormatDmenu
	}

	opts := output.DefaultFormatterOptions()
	opts.Labels = table
	opts.Template = listOpts.template
	if named := cfg.GetTemplate(opts.Template); named != "" {
		opts.Template = named
	}
	if opts.Template == "" && format == output.FormatDmenu {
		opts.Template = cfg.Templates.Dmenu
	}

	return output.NewFormatter(format, opts)
}
