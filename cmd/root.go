package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/adapters/store"
	"github.com/kamal-hamza/ax-cli/internal/core/services"
	"github.com/kamal-hamza/ax-cli/pkg/config"
	"github.com/kamal-hamza/ax-cli/pkg/logging"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
	"github.com/kamal-hamza/ax-cli/pkg/vault"
)

var (
	// Global vault instance
	appVault *vault.Vault

	// Configuration
	appConfig *config.Config

	// Logging
	appLogger *logging.Logger

	// Path of the library document all services operate on
	libraryPath string

	// Store
	libraryStore *store.Store

	// Services
	catalogService    *services.CatalogService
	hierarchyService  *services.HierarchyService
	validationService *services.ValidationService
	searchService     *services.SearchService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ax",
	Short: "AX - A local asset library manager",
	Long: ui.StyleTitle.Render("AX") + " - Asset Library Manager\n\n" +
		"A fast, opinionated CLI for cataloging your digital assets.\n" +
		"Track files, tags, groups, and marketplace provenance from one place.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer func() {
		if libraryStore != nil {
			libraryStore.Close()
		}
		if appLogger != nil {
			appLogger.Close()
		}
	}()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for init command
	if cmd.Name() == "init" {
		return nil
	}

	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v

	if !appVault.Exists() {
		fmt.Println(ui.FormatError("Library not initialized"))
		fmt.Println(ui.FormatInfo("Run 'ax init' to initialize the library"))
		os.Exit(1)
	}

	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	logCfg := logging.Config{Level: logging.ParseLevel(cfg.LogLevel), Service: "cli"}
	if cfg.LogFile {
		logCfg.LogDir = appVault.LogsPath
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	appLogger = logger

	libraryPath = appVault.LibraryPath
	if cfg.LibraryPath != "" {
		libraryPath = cfg.LibraryPath
	}

	// Store and services
	clock := store.SystemClock{}
	fs := store.OSFileSystem{}
	libraryStore = store.New(fs, clock, appLogger.Logger)

	catalogService = services.NewCatalogService(libraryStore, clock, libraryPath)
	hierarchyService = services.NewHierarchyService(libraryStore, clock, libraryPath)
	validationService = services.NewValidationService(fs, clock)
	searchService = services.NewSearchService(libraryStore, libraryPath)

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
