package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var favoriteUnset bool

var favoriteCmd = &cobra.Command{
	Use:     "favorite [asset]",
	Aliases: []string{"fav"},
	Short:   "Mark an asset as a favorite",
	Example: `  ax favorite hat
  ax favorite hat --unset`,
	RunE: runFavorite,
}

func init() {
	favoriteCmd.Flags().BoolVarP(&favoriteUnset, "unset", "u", false, "Clear the favorite flag")
}

func runFavorite(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	asset, err := resolveAsset(ctx, query)
	if err != nil {
		return err
	}

	if err := catalogService.SetFavorite(ctx, asset.ID, !favoriteUnset); err != nil {
		return err
	}
	if favoriteUnset {
		fmt.Println(ui.FormatSuccess("Removed favorite: " + asset.Metadata.Name))
	} else {
		fmt.Println(ui.FormatSuccess(ui.IconFavorite + " Favorited " + asset.Metadata.Name))
	}
	return nil
}
