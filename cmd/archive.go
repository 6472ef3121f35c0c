package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var archiveUnset bool

var archiveCmd = &cobra.Command{
	Use:   "archive [asset]",
	Short: "Archive an asset",
	Long: `Archive an asset so default listings skip it. The record and its file
stay intact; use --unset to bring it back.`,
	Example: `  ax archive old-hat
  ax archive old-hat --unset`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().BoolVarP(&archiveUnset, "unset", "u", false, "Clear the archived flag")
}

func runArchive(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	asset, err := resolveAsset(ctx, query)
	if err != nil {
		return err
	}

	if err := catalogService.SetArchived(ctx, asset.ID, !archiveUnset); err != nil {
		return err
	}
	if archiveUnset {
		fmt.Println(ui.FormatSuccess("Unarchived " + asset.Metadata.Name))
	} else {
		fmt.Println(ui.FormatSuccess("Archived " + asset.Metadata.Name))
	}
	return nil
}
