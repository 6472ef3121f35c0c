package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var configShow bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the ax configuration file",
	Long:  `Open the configuration file in $EDITOR, or print it with --show.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appVault.ConfigPath

		if configShow {
			out, err := yaml.Marshal(appConfig)
			if err != nil {
				return err
			}
			fmt.Println(ui.FormatMuted(path))
			fmt.Print(string(out))
			return nil
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := appConfig.Save(path); err != nil {
				return fmt.Errorf("failed to write default config: %w", err)
			}
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

func init() {
	configCmd.Flags().BoolVar(&configShow, "show", false, "Print the effective configuration")
}
