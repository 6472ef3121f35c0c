package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var (
	addDescription string
	addAuthor      string
	addType        string
	addTags        string
	addFile        string
	addFavorite    bool
	addBoothURL    string
	addBoothTitle  string
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an asset to the library",
	Example: `  ax add "Fluffy Hat" -t Accessory -T "cute, winter" -f ~/Downloads/hat.zip
  ax add "Leather Boots" -a "BootSmith" --booth-url https://example.booth.pm/items/12345`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Asset description")
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "Author name")
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "Asset type (e.g. Avatar, Accessory, Texture)")
	addCmd.Flags().StringVarP(&addTags, "tags", "T", "", "Comma-separated tags")
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "Path to the asset's source file")
	addCmd.Flags().BoolVar(&addFavorite, "favorite", false, "Mark as favorite")
	addCmd.Flags().StringVar(&addBoothURL, "booth-url", "", "Marketplace item URL")
	addCmd.Flags().StringVar(&addBoothTitle, "booth-title", "", "Marketplace item title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	now := time.Now()

	asset, err := domain.NewAsset(args[0], now)
	if err != nil {
		return err
	}

	if addDescription != "" {
		asset = asset.WithDescription(addDescription, now)
	}
	if addAuthor != "" {
		asset = asset.WithAuthor(addAuthor, now)
	}
	if addType != "" {
		asset = asset.WithAssetType(addType, now)
	}
	if addTags != "" {
		asset = asset.WithAddedTags(now, strings.Split(addTags, ",")...)
	}
	if addFavorite {
		asset = asset.WithFavorite(true)
	}

	if addFile != "" {
		info := domain.FileInfo{FilePath: addFile}
		if stat, err := os.Stat(addFile); err == nil {
			info.FileSizeBytes = stat.Size()
		} else {
			fmt.Println(ui.FormatWarning("File not found: " + addFile))
		}
		asset = asset.WithFileInfo(info, now)
	}

	if addBoothURL != "" {
		asset = asset.WithBoothItem(&domain.BoothItem{
			ItemURL:   addBoothURL,
			ItemTitle: addBoothTitle,
		})
	}

	// Surface validation findings before saving so typos are caught at
	// entry, but never block the add on them.
	lib := libraryStore.Load(ctx, libraryPath)
	for _, finding := range validationService.ValidateAsset(lib, asset) {
		fmt.Printf("  %s %s: %s\n", ui.FormatLevel(finding.Level.String()), finding.Field, finding.Message)
	}

	if err := catalogService.Add(ctx, asset); err != nil {
		return err
	}

	fmt.Println(ui.FormatSuccess("Added '" + asset.Metadata.Name + "'"))
	fmt.Print(ui.RenderKeyValue("ID", asset.ID.String()))
	return nil
}
