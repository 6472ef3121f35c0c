package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [asset]",
	Short: "Show the full record of an asset",
	Long: `Show every field of an asset: metadata, file facts, state flags,
group membership, and marketplace provenance. With no argument an
interactive picker opens.`,
	Example: `  ax show
  ax show hat
  ax show 8f14e45f-ceea-4671-94b5-08f0f1a0e57b`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	asset, err := resolveAsset(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle(decorateName(asset)))
	fmt.Print(ui.RenderKeyValue("ID", asset.ID.String()))
	if asset.Metadata.Description != "" {
		fmt.Print(ui.RenderKeyValue("Description", asset.Metadata.Description))
	}
	fmt.Print(ui.RenderKeyValue("Author", asset.Metadata.AuthorName))
	fmt.Print(ui.RenderKeyValue("Type", asset.Metadata.AssetType))
	fmt.Print(ui.RenderKeyValue("Tags", strings.Join(asset.Metadata.Tags, ", ")))
	if len(asset.Metadata.Dependencies) > 0 {
		fmt.Print(ui.RenderKeyValue("Dependencies", strings.Join(asset.Metadata.Dependencies, ", ")))
	}
	fmt.Print(ui.RenderKeyValue("Created", asset.Metadata.CreatedDate.Format(appConfig.DisplayDateFormat)))
	fmt.Print(ui.RenderKeyValue("Modified", asset.Metadata.ModifiedDate.Format(appConfig.DisplayDateFormat)))
	if !asset.LastAccessed.IsZero() {
		fmt.Print(ui.RenderKeyValue("Last accessed", asset.LastAccessed.Format(appConfig.DisplayDateFormat)))
	}

	if asset.FileInfo.FilePath != "" {
		fmt.Print(ui.RenderKeyValue("File", asset.FileInfo.FilePath))
		fmt.Print(ui.RenderKeyValue("Size", formatSize(asset.FileInfo.FileSizeBytes)))
	}

	var flags []string
	if asset.State.IsFavorite {
		flags = append(flags, "favorite")
	}
	if asset.State.IsArchived {
		flags = append(flags, "archived")
	}
	if asset.State.IsGroup {
		flags = append(flags, "group")
	}
	if len(flags) > 0 {
		fmt.Print(ui.RenderKeyValue("Flags", strings.Join(flags, ", ")))
	}

	if !asset.ParentGroupID.IsZero() {
		if parent, err := catalogService.Get(ctx, asset.ParentGroupID); err == nil {
			fmt.Print(ui.RenderKeyValue("Group", parent.Metadata.Name))
		}
	}
	if asset.State.IsGroup {
		children, err := hierarchyService.GroupChildren(ctx, asset.ID)
		if err == nil && len(children) > 0 {
			names := make([]string, 0, len(children))
			for _, child := range children {
				names = append(names, child.Metadata.Name)
			}
			fmt.Print(ui.RenderKeyValue("Members", strings.Join(names, ", ")))
		}
	}

	if booth := asset.BoothItem; booth != nil {
		fmt.Println()
		fmt.Println(ui.FormatTitle("Booth"))
		fmt.Print(ui.RenderKeyValue("Title", booth.ItemTitle))
		fmt.Print(ui.RenderKeyValue("URL", booth.ItemURL))
		if booth.Price != "" {
			fmt.Print(ui.RenderKeyValue("Price", booth.Price))
		}
	}

	return catalogService.Touch(ctx, asset.ID)
}
