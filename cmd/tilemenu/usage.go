package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var usageOpts struct {
	limit  int
	format string
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show launch counts per application",
	Long: `Show how often each application was launched through tilemenu, most
launched first. These counts decide the favourites offered at the top of the
menu.`,
	RunE: runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().IntVarP(&usageOpts.limit, "limit", "n", 0,
		"Maximum number of applications to show (0=unlimited)")
	usageCmd.Flags().StringVarP(&usageOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

func runUsage(cmd *cobra.Command, args []string) error {
	usage := history.Usage()
	if usageOpts.limit > 0 && len(usage) > usageOpts.limit {
		usage = usage[:usageOpts.limit]
	}

	switch strings.ToLower(usageOpts.format) {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(usage)
	case "yaml", "yml":
		return yaml.NewEncoder(os.Stdout).Encode(usage)
	}

	if len(usage) == 0 {
		fmt.Println("No launches in history")
		return nil
	}
	for _, u := range usage {
		fmt.Printf("%6s  %-14s  %s (%s)\n",
			humanize.Comma(int64(u.Count)),
			humanize.Time(time.Unix(u.LastLaunched, 0)),
			u.Name, u.DesktopID)
	}
	return nil
}
