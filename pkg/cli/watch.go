package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cfglint/cfglint/pkg/console"
)

const debounceDelay = 300 * time.Millisecond

// changeSet collects modified paths between debounce firings. The
// event loop adds while the timer goroutine drains, so access is
// locked.
type changeSet struct {
	mu    sync.Mutex
	files map[string]struct{}
}

func newChangeSet() *changeSet {
	return &changeSet{files: make(map[string]struct{})}
}

func (c *changeSet) add(file string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[file] = struct{}{}
}

// drain returns the collected paths and resets the set.
func (c *changeSet) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	files := make([]string, 0, len(c.files))
	for file := range c.files {
		files = append(files, file)
	}
	c.files = make(map[string]struct{})
	return files
}

// WatchConfig lints the config files and re-lints whenever one of
// them changes. With no files it watches the tool's own config
// candidates. Blocks until SIGINT or SIGTERM.
func WatchConfig(files []string, verbose bool, mode console.Mode) error {
	if len(files) == 0 {
		files = ConfigDefinition().Paths
	}

	watched := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for i, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		files[i] = abs
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch parent directories so a file recreated after deletion is
	// still seen.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	fmt.Println("Watching for config changes...")
	if verbose {
		fmt.Println("Press Ctrl+C to stop watching.")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var debounceTimer *time.Timer
	modified := newChangeSet()

	lintExisting(files, verbose, mode)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if _, ok := watched[event.Name]; !ok {
				continue
			}

			if verbose {
				fmt.Printf("Detected change: %s (%s)\n", event.Name, event.Op.String())
			}

			switch {
			case event.Has(fsnotify.Remove):
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("%s was removed", event.Name)))
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				modified.add(event.Name)

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					lintExisting(modified.drain(), verbose, mode)
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("watcher error: %v", err)))
			}

		case <-sigChan:
			if verbose {
				fmt.Println("\nStopping watch mode...")
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}

// lintExisting lints the named files that exist on disk, skipping the
// rest so candidate paths that were never created stay quiet.
func lintExisting(files []string, verbose bool, mode console.Mode) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		if verbose {
			fmt.Println("No config files found yet")
		}
		return
	}
	if err := LintConfig(existing, verbose, mode); err != nil {
		fmt.Println(watchFailureLine(err, mode))
	}
}

// watchFailureLine compacts a lint failure's error chain onto one line
// so the watch loop stays scannable between re-lints.
func watchFailureLine(err error, mode console.Mode) string {
	return console.FormatWarningMessage("validation failed" + console.FormatErrorStack(err, console.StackInline, mode))
}
