package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var daemonQuiet bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Watch the library document for external changes",
	Long: `Run a foreground watcher that detects external edits to the library
document. When another process rewrites the document, the cache is
invalidated, the library is reloaded, and the rule engine reports any
integrity errors the edit introduced.

Use --quiet to suppress reload notifications.`,
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().BoolVarP(&daemonQuiet, "quiet", "q", false, "Suppress reload notifications")
}

// reloadDebouncer coalesces a burst of file events into a single reload
// call. The pending flag is shared between the event loop and the timer
// goroutine, so both accesses go through the mutex.
type reloadDebouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	delay   time.Duration
	reload  func()
}

func newReloadDebouncer(delay time.Duration, reload func()) *reloadDebouncer {
	return &reloadDebouncer{delay: delay, reload: reload}
}

// Trigger marks a reload as pending and restarts the debounce window.
func (d *reloadDebouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *reloadDebouncer) fire() {
	d.mu.Lock()
	pending := d.pending
	d.pending = false
	d.mu.Unlock()

	if pending {
		d.reload()
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file; editors often replace the file,
	// which drops a watch placed on the file itself.
	libraryDir := filepath.Dir(libraryPath)
	if err := watcher.Add(libraryDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", libraryDir, err)
	}

	if !daemonQuiet {
		fmt.Println(ui.FormatInfo("Starting ax daemon..."))
		fmt.Println(ui.FormatMuted("Watching: " + libraryPath))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond

	doReload := func() {
		if !daemonQuiet {
			fmt.Println(ui.FormatInfo("Library changed on disk, reloading..."))
		}

		lib := libraryStore.ForceReload(ctx, libraryPath)
		appLogger.Info("library reloaded", "assets", lib.Count())

		findings := validationService.ValidateLibrary(lib)
		errors := findings.CountAtLeast(domain.LevelError)
		if !daemonQuiet {
			if errors > 0 {
				fmt.Println(ui.FormatWarning(fmt.Sprintf("Reloaded %d asset(s), %d integrity error(s)", lib.Count(), errors)))
			} else {
				fmt.Println(ui.FormatSuccess(fmt.Sprintf("Reloaded %d asset(s)", lib.Count())))
			}
		}
	}
	debouncer := newReloadDebouncer(debounceDuration, doReload)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != filepath.Clean(libraryPath) {
				continue
			}
			baseName := filepath.Base(event.Name)
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {

				debouncer.Trigger()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger.Error("watcher error", "error", err)

		case <-ctx.Done():
			if !daemonQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Daemon stopped"))
			}
			return nil
		}
	}
}
