package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/services"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var (
	searchFields        string
	searchCaseSensitive bool
	searchRegexp        bool

	searchTags      []string
	searchAllTags   bool
	searchTypes     []string
	searchAllTypes  bool
	searchAuthor    string
	searchAfter     string
	searchBefore    string
	searchMinSize   int64
	searchMaxSize   int64
	searchFavorites bool
	searchNoGroups  bool
	searchAny       bool

	searchSortBy  string
	searchReverse bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the library",
	Long: `Search assets with a free-text query or structured criteria.

The free-text query matches name, description, author, tags, file path,
and asset type; restrict it with --fields. Structured flags (tags, types,
date and size ranges) combine with AND unless --any is given. The tag and
type sets have their own --all-tags / --all-types toggles, independent of
--any.`,
	Example: `  ax search hat
  ax search -T cute -T leather --all-tags
  ax search --after 2026-01-01 --favorites
  ax search "v[0-9]+" --regexp --fields name`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFields, "fields", "", "Comma-separated fields for the text query (name,description,author,tags,path,type)")
	searchCmd.Flags().BoolVarP(&searchCaseSensitive, "case-sensitive", "c", false, "Case-sensitive matching")
	searchCmd.Flags().BoolVarP(&searchRegexp, "regexp", "E", false, "Treat the query as a regular expression")

	searchCmd.Flags().StringSliceVarP(&searchTags, "tag", "T", nil, "Require tag (repeatable)")
	searchCmd.Flags().BoolVar(&searchAllTags, "all-tags", false, "Require every tag instead of any")
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "y", nil, "Require asset type (repeatable)")
	searchCmd.Flags().BoolVar(&searchAllTypes, "all-types", false, "Require every type instead of any")
	searchCmd.Flags().StringVarP(&searchAuthor, "author", "a", "", "Author substring")
	searchCmd.Flags().StringVar(&searchAfter, "after", "", "Created on or after (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchBefore, "before", "", "Created on or before (YYYY-MM-DD)")
	searchCmd.Flags().Int64Var(&searchMinSize, "min-size", -1, "Minimum file size in bytes")
	searchCmd.Flags().Int64Var(&searchMaxSize, "max-size", -1, "Maximum file size in bytes")
	searchCmd.Flags().BoolVarP(&searchFavorites, "favorites", "f", false, "Favorites only")
	searchCmd.Flags().BoolVar(&searchNoGroups, "no-groups", false, "Exclude groups from results")
	searchCmd.Flags().BoolVar(&searchAny, "any", false, "Match any criterion instead of all")

	searchCmd.Flags().StringVarP(&searchSortBy, "sort", "s", "", "Sort by: name, created, modified, size, author, type")
	searchCmd.Flags().BoolVarP(&searchReverse, "reverse", "r", false, "Reverse sort order")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	sortBy := searchSortBy
	if sortBy == "" {
		sortBy = appConfig.DefaultSort
	}
	sort := parseSortSpec(sortBy, searchReverse || appConfig.ReverseSort)

	var result *services.SearchResult
	var err error

	if hasAdvancedFlags() {
		criteria := services.AdvancedCriteria{
			Name:          query,
			Author:        searchAuthor,
			Tags:          searchTags,
			TagsMatchAll:  searchAllTags,
			AssetTypes:    searchTypes,
			TypesMatchAll: searchAllTypes,
			FavoritesOnly: searchFavorites,
			ExcludeGroups: searchNoGroups,
			MatchAny:      searchAny,
		}
		criteria.Created, err = parseDateRange(searchAfter, searchBefore)
		if err != nil {
			return err
		}
		if searchMinSize >= 0 || searchMaxSize >= 0 {
			criteria.Size = services.SizeRange{Enabled: true, Min: max64(searchMinSize, 0), Max: searchMaxSize}
			if searchMaxSize < 0 {
				criteria.Size.Max = int64(1) << 62
			}
		}
		result, err = searchService.SearchAdvanced(ctx, criteria, sort)
	} else {
		criteria := services.BasicCriteria{
			Query:         query,
			Fields:        parseFieldMask(searchFields),
			CaseSensitive: searchCaseSensitive,
			UseRegexp:     searchRegexp,
		}
		result, err = searchService.SearchBasic(ctx, criteria, sort)
	}
	if err != nil {
		return err
	}

	if result.Total == 0 {
		fmt.Println(ui.FormatInfo("No matches."))
		return nil
	}

	limit := appConfig.MaxSearchResults
	table := ui.NewTable([]ui.TableColumn{
		{Header: "NAME", Width: 24},
		{Header: "TYPE", Width: 10},
		{Header: "AUTHOR", Width: 12},
		{Header: "TAGS", Width: 20},
	})
	for i, id := range result.IDs {
		if i >= limit {
			break
		}
		asset, err := catalogService.Get(ctx, id)
		if err != nil {
			continue
		}
		table.AddRow([]string{
			decorateName(asset),
			asset.Metadata.AssetType,
			ui.Truncate(asset.Metadata.AuthorName, 12),
			ui.Truncate(strings.Join(asset.Metadata.Tags, ", "), 20),
		})
	}

	fmt.Print(table.Render())
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d match(es) in %s", result.Total, result.Elapsed.Round(time.Microsecond))))
	return nil
}

func hasAdvancedFlags() bool {
	return len(searchTags) > 0 || len(searchTypes) > 0 || searchAuthor != "" ||
		searchAfter != "" || searchBefore != "" || searchMinSize >= 0 ||
		searchMaxSize >= 0 || searchFavorites || searchNoGroups || searchAny
}

func parseFieldMask(fields string) services.FieldMask {
	if fields == "" {
		return services.FieldAll
	}
	var mask services.FieldMask
	for _, field := range strings.Split(fields, ",") {
		switch strings.TrimSpace(strings.ToLower(field)) {
		case "name":
			mask |= services.FieldName
		case "description":
			mask |= services.FieldDescription
		case "author":
			mask |= services.FieldAuthor
		case "tags":
			mask |= services.FieldTags
		case "path":
			mask |= services.FieldPath
		case "type":
			mask |= services.FieldType
		}
	}
	if mask == 0 {
		return services.FieldAll
	}
	return mask
}

func parseDateRange(after, before string) (services.DateRange, error) {
	if after == "" && before == "" {
		return services.DateRange{}, nil
	}
	r := services.DateRange{Enabled: true, From: time.Time{}, To: time.Now().AddDate(100, 0, 0)}
	if after != "" {
		from, err := time.Parse("2006-01-02", after)
		if err != nil {
			return services.DateRange{}, fmt.Errorf("invalid --after date: %s", after)
		}
		r.From = from
	}
	if before != "" {
		to, err := time.Parse("2006-01-02", before)
		if err != nil {
			return services.DateRange{}, fmt.Errorf("invalid --before date: %s", before)
		}
		// Inclusive end of day
		r.To = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return r, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
