package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var (
	openCopyPath bool
	openReveal   bool
)

var openCmd = &cobra.Command{
	Use:   "open [asset]",
	Short: "Open an asset's file",
	Long: `Open an asset's source file with the platform handler, or copy its
path to the clipboard. With no argument an interactive picker opens.
Opening an asset records a last-accessed timestamp.`,
	Example: `  ax open
  ax open hat
  ax open hat --copy`,
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVarP(&openCopyPath, "copy", "c", false, "Copy the file path to the clipboard instead of opening")
	openCmd.Flags().BoolVar(&openReveal, "reveal", false, "Reveal the containing directory instead of the file")
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	asset, err := resolveAsset(ctx, query)
	if err != nil {
		return err
	}

	path := asset.FileInfo.FilePath
	if path == "" {
		fmt.Println(ui.FormatWarning("Asset has no file: " + asset.Metadata.Name))
		return nil
	}

	if openCopyPath {
		if err := clipboard.WriteAll(path); err != nil {
			return fmt.Errorf("failed to copy path to clipboard: %w", err)
		}
		fmt.Println(ui.FormatSuccess("Copied path to clipboard"))
		return catalogService.Touch(ctx, asset.ID)
	}

	target := path
	if openReveal {
		target = parentDir(path)
	}
	if err := openWithPlatformHandler(target); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}

	fmt.Println(ui.FormatSuccess("Opened " + asset.Metadata.Name))
	return catalogService.Touch(ctx, asset.ID)
}

func openWithPlatformHandler(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
