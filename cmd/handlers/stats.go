package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"interlink/internal/catalog"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show link catalog statistics",
		Long: `Load the link catalog and print how many entries each source and
category contributed, along with any load warnings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newLinker(linkerOptions()).Catalog()
			if asJSON {
				return printStatsJSON(cmd.OutOrStdout(), c)
			}
			printStats(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}

func printStats(w io.Writer, c *catalog.Catalog) {
	stats := c.Statistics()
	report := c.Report()

	fmt.Fprintln(w, headerStyle.Render("Link catalog"))
	rows := []struct {
		label string
		value int
	}{
		{"Total links", stats.TotalLinks},
		{"Product services", stats.ProductServices},
		{"Product solutions", stats.ProductSolutions},
		{"Product features", stats.ProductFeatures},
		{"Learning content", stats.LearningContent},
		{"Unique keywords", stats.UniqueKeywords},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s %d\n", labelStyle.Render(fmt.Sprintf("%-18s", row.label)), row.value)
	}

	if report.CuratedEntries > 0 {
		fmt.Fprintf(w, "  %s %d\n", labelStyle.Render(fmt.Sprintf("%-18s", "Curated entries")), report.CuratedEntries)
	}
	if report.LearningFromSitemap {
		fmt.Fprintln(w, labelStyle.Render("  Learning entries came from the sitemap fallback"))
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("warning:"), warning)
	}
}

func printStatsJSON(w io.Writer, c *catalog.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Statistics map[string]int     `json:"statistics"`
		Report     catalog.LoadReport `json:"report"`
	}{c.Statistics().Map(), c.Report()})
}
