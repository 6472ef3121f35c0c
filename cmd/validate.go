package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var (
	validateQuiet bool
	validateLevel string
)

var validateCmd = &cobra.Command{
	Use:   "validate [asset]",
	Short: "Check the library for integrity problems",
	Long: `Run the rule engine over the whole library, or over a single asset.
Findings are reported by severity: info, warning, error, critical. The
exit status is non-zero when anything at error level or above is found.`,
	Example: `  ax validate
  ax validate hat
  ax validate --level error`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Print only the summary line")
	validateCmd.Flags().StringVarP(&validateLevel, "level", "l", "info", "Minimum level to report: info, warning, error, critical")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	minLevel, err := parseLevel(validateLevel)
	if err != nil {
		return err
	}

	lib := libraryStore.Load(ctx, libraryPath)

	var findings domain.Findings
	if len(args) > 0 {
		asset, err := resolveAsset(ctx, args[0])
		if err != nil {
			return err
		}
		findings = validationService.ValidateAsset(lib, asset)
	} else {
		findings = validationService.ValidateLibrary(lib)
	}

	findings = findings.Filter(minLevel)

	if len(findings) == 0 {
		fmt.Println(ui.FormatSuccess("No problems found."))
		return nil
	}

	if !validateQuiet {
		printFindings(lib, findings)
	}

	errors := findings.CountAtLeast(domain.LevelError)
	warnings := findings.CountAtLeast(domain.LevelWarning) - errors
	fmt.Println(ui.FormatWarning(fmt.Sprintf("%d finding(s): %d error(s), %d warning(s)",
		len(findings), errors, warnings)))

	if errors > 0 {
		return fmt.Errorf("library has %d integrity error(s)", errors)
	}
	return nil
}

// printFindings groups findings by asset, worst first within each asset.
func printFindings(lib *domain.Library, findings domain.Findings) {
	byAsset := map[domain.AssetID]domain.Findings{}
	order := []domain.AssetID{}
	for _, f := range findings {
		if _, seen := byAsset[f.AssetID]; !seen {
			order = append(order, f.AssetID)
		}
		byAsset[f.AssetID] = append(byAsset[f.AssetID], f)
	}

	for _, id := range order {
		name := string(id)
		if asset, ok := lib.Get(id); ok {
			name = asset.Metadata.Name
		}
		fmt.Println(ui.FormatTitle(name))
		for _, f := range byAsset[id] {
			field := ""
			if f.Field != "" {
				field = f.Field + ": "
			}
			fmt.Printf("  %s %s%s\n", ui.FormatLevel(f.Level.String()), field, f.Message)
		}
		fmt.Println()
	}
}

func parseLevel(name string) (domain.Level, error) {
	switch name {
	case "info":
		return domain.LevelInfo, nil
	case "warning":
		return domain.LevelWarning, nil
	case "error":
		return domain.LevelError, nil
	case "critical":
		return domain.LevelCritical, nil
	default:
		return domain.LevelInfo, fmt.Errorf("unknown level: %s", name)
	}
}
