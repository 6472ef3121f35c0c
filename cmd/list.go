package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/services"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var (
	listTag       string
	listType      string
	listFavorites bool
	listArchived  bool
	listSortBy    string
	listReverse   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets in the library",
	Long: `List top-level assets in a table.

Assets inside groups do not appear in the flat listing; use
'ax group children' to inspect a group's contents.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Filter by exact tag")
	listCmd.Flags().StringVarP(&listType, "type", "y", "", "Filter by exact asset type")
	listCmd.Flags().BoolVarP(&listFavorites, "favorites", "f", false, "Only favorites")
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Include archived assets")
	listCmd.Flags().StringVarP(&listSortBy, "sort", "s", "", "Sort by: name, created, modified, size, author, type")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "Reverse sort order")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	criteria := services.AdvancedCriteria{FavoritesOnly: listFavorites}
	if listTag != "" {
		criteria.Tags = []string{listTag}
	}
	if listType != "" {
		criteria.AssetTypes = []string{listType}
	}

	sortBy := listSortBy
	if sortBy == "" {
		sortBy = appConfig.DefaultSort
	}
	reverse := listReverse || appConfig.ReverseSort

	result, err := searchService.SearchAdvanced(ctx, criteria, parseSortSpec(sortBy, reverse))
	if err != nil {
		return err
	}

	showArchived := listArchived || appConfig.ShowArchived

	table := ui.NewTable([]ui.TableColumn{
		{Header: "NAME", Width: 24},
		{Header: "TYPE", Width: 10},
		{Header: "AUTHOR", Width: 12},
		{Header: "TAGS", Width: 20},
		{Header: "SIZE", Width: 8, Align: "right"},
	})

	shown := 0
	for _, id := range result.IDs {
		asset, err := catalogService.Get(ctx, id)
		if err != nil {
			continue
		}
		if asset.State.IsArchived && !showArchived {
			continue
		}
		table.AddRow([]string{
			decorateName(asset),
			asset.Metadata.AssetType,
			ui.Truncate(asset.Metadata.AuthorName, 12),
			ui.Truncate(strings.Join(asset.Metadata.Tags, ", "), 20),
			formatSize(asset.FileInfo.FileSizeBytes),
		})
		shown++
	}

	if shown == 0 {
		fmt.Println(ui.FormatInfo("No assets found."))
		return nil
	}

	fmt.Print(table.Render())
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d asset(s)", shown)))
	return nil
}

func decorateName(asset domain.Asset) string {
	name := ui.Truncate(asset.Metadata.Name, 24)
	if asset.State.IsGroup {
		name = ui.IconGroup + " " + name
	}
	if asset.State.IsFavorite {
		name = ui.IconFavorite + " " + name
	}
	return name
}
