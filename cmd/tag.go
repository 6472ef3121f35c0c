package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage asset tags",
	Long:  `Add and remove tags on assets, or list every tag the library has seen.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <asset> <tag>...",
	Short: "Add tags to an asset",
	Example: `  ax tag add hat cute
  ax tag add hat cute leather`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <asset> <tag>...",
	Aliases: []string{"rm"},
	Short:   "Remove tags from an asset",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runTagRemove,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every known tag",
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagListCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	asset, err := resolveAsset(ctx, args[0])
	if err != nil {
		return err
	}
	tags := args[1:]
	if err := catalogService.Tag(ctx, asset.ID, tags...); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Tagged %s with: %s", asset.Metadata.Name, strings.Join(tags, ", "))))
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	asset, err := resolveAsset(ctx, args[0])
	if err != nil {
		return err
	}
	tags := args[1:]
	if err := catalogService.Untag(ctx, asset.ID, tags...); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Untagged %s: %s", asset.Metadata.Name, strings.Join(tags, ", "))))
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	tags := catalogService.KnownTags(ctx)
	if len(tags) == 0 {
		fmt.Println(ui.FormatInfo("No tags yet."))
		return nil
	}
	fmt.Println(ui.FormatTitle(fmt.Sprintf("Tags (%d)", len(tags))))
	fmt.Print(ui.RenderSimpleList(tags))
	return nil
}
