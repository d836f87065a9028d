// Package watch re-runs XSD conversion when schema files change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher watches directories and reports changes to files matching patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(patterns []string, exclude []string, onChange func(path string, op fsnotify.Op)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   zerolog.Nop(),
	}, nil
}

// WithLogger sets the logger used for watcher errors
func (fw *FileWatcher) WithLogger(logger zerolog.Logger) *FileWatcher {
	fw.logger = logger
	return fw
}

// AddDirectory recursively adds a directory to the watcher, skipping excluded names
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if fw.excluded(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if err := fw.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
		}

		return nil
	})
}

// Start blocks, dispatching matching events until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if fw.shouldWatch(event.Name) {
				fw.onChange(event.Name, event.Op)
			}

			// New directories are watched as they appear
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

func (fw *FileWatcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range fw.exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	if fw.excluded(path) {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range fw.patterns {
		// "**/*.ext" matches the extension at any depth
		if strings.HasPrefix(pattern, "**/*.") {
			if strings.HasSuffix(path, strings.TrimPrefix(pattern, "**/*")) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
