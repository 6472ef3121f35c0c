package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
	"github.com/kamal-hamza/ax-cli/pkg/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the asset library",
	Long: `Create the library directory structure.

This creates the vault root, the thumbnail cache, and the log directory.
The library document itself is created on first save.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to determine vault paths: %w", err)
	}

	if v.Exists() {
		fmt.Println(ui.FormatInfo("Library already initialized"))
		fmt.Print(ui.RenderKeyValue("Location", v.RootPath))
		return nil
	}

	if err := v.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize library: %w", err)
	}

	fmt.Println(ui.FormatSuccess("Library initialized"))
	fmt.Print(ui.RenderKeyValue("Location", v.RootPath))
	fmt.Print(ui.RenderKeyValue("Document", v.LibraryPath))
	return nil
}
