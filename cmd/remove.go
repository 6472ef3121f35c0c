package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove [asset]",
	Aliases: []string{"rm"},
	Short:   "Remove an asset from the library",
	Long: `Remove an asset record from the library. The source file on disk is
left untouched. Removing a group moves its members to the top level.`,
	Example: `  ax remove hat
  ax rm hat --force`,
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	asset, err := resolveAsset(ctx, query)
	if err != nil {
		return err
	}

	if !removeForce {
		prompt := fmt.Sprintf("Remove %q from the library? [y/N]: ", asset.Metadata.Name)
		if asset.State.IsGroup {
			prompt = fmt.Sprintf("Remove group %q? Its members move to the top level. [y/N]: ", asset.Metadata.Name)
		}
		fmt.Print(ui.StyleWarning.Render(prompt))
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println(ui.FormatInfo("Cancelled."))
			return nil
		}
	}

	if err := catalogService.Remove(ctx, asset.ID); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Removed " + asset.Metadata.Name))
	return nil
}
