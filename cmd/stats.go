package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var statsHTMLPath string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	Long: `Analyze the library and display useful statistics.

Includes:
  - Asset, group, favorite, and archive counts
  - Total cataloged file size
  - Asset type distribution
  - Top tags

With --html an interactive chart report is written instead.`,
	Example: `  ax stats
  ax stats --html report.html`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsHTMLPath, "html", "", "Write an HTML chart report to this path")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	assets := catalogService.GetAll(ctx)

	totalAssets := 0
	groups := 0
	favorites := 0
	archived := 0
	var totalSize int64
	typeCounts := make(map[string]int)
	tagCounts := make(map[string]int)

	for _, a := range assets {
		if a.State.IsGroup {
			groups++
			continue
		}
		totalAssets++
		if a.State.IsFavorite {
			favorites++
		}
		if a.State.IsArchived {
			archived++
		}
		totalSize += a.FileInfo.FileSizeBytes

		assetType := a.Metadata.AssetType
		if assetType == "" {
			assetType = "(untyped)"
		}
		typeCounts[assetType]++
		for _, t := range a.Metadata.Tags {
			tagCounts[t]++
		}
	}

	if statsHTMLPath != "" {
		if err := writeStatsReport(statsHTMLPath, typeCounts, tagCounts); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Wrote report to " + statsHTMLPath))
		return nil
	}

	fmt.Println(ui.FormatTitle("Library Statistics"))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Assets:"), totalAssets)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Groups:"), groups)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Favorites:"), favorites)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Archived:"), archived)
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Total size:"), formatSize(totalSize))
	w.Flush()
	fmt.Println()

	renderCountBars("Asset Types", typeCounts, 0)
	renderCountBars("Top Tags", tagCounts, 10)
	return nil
}

// renderCountBars displays a horizontal bar chart of label counts,
// largest first. limit of 0 means show everything.
func renderCountBars(title string, counts map[string]int, limit int) {
	if len(counts) == 0 {
		return
	}

	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(counts))
	maxCount := 0
	for label, count := range counts {
		entries = append(entries, entry{label, count})
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	fmt.Println(ui.StyleHeader.Render(title))
	const barWidth = 30
	for _, e := range entries {
		filled := e.count * barWidth / maxCount
		if filled == 0 {
			filled = 1
		}
		bar := strings.Repeat("█", filled)
		fmt.Printf("  %-16s %s %d\n", ui.Truncate(e.label, 16), ui.StyleAccent.Render(bar), e.count)
	}
	fmt.Println()
}

// writeStatsReport renders an HTML page with a type pie chart and a tag
// bar chart.
func writeStatsReport(path string, typeCounts, tagCounts map[string]int) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Assets by Type"}),
	)
	pieData := make([]opts.PieData, 0, len(typeCounts))
	for label, count := range typeCounts {
		pieData = append(pieData, opts.PieData{Name: label, Value: count})
	}
	pie.AddSeries("types", pieData)

	labels := make([]string, 0, len(tagCounts))
	for label := range tagCounts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if tagCounts[labels[i]] != tagCounts[labels[j]] {
			return tagCounts[labels[i]] > tagCounts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Assets by Tag"}),
	)
	barData := make([]opts.BarData, 0, len(labels))
	for _, label := range labels {
		barData = append(barData, opts.BarData{Value: tagCounts[label]})
	}
	bar.SetXAxis(labels).AddSeries("tags", barData)

	page := components.NewPage()
	page.PageTitle = "Library Statistics"
	page.AddCharts(pie, bar)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create report %s: %v", domain.ErrIOFailure, path, err)
	}
	defer f.Close()
	return page.Render(f)
}
