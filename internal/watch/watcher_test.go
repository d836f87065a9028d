package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_shouldWatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		exclude  []string
		path     string
		want     bool
	}{
		{
			name:     "match xsd file",
			patterns: []string{"*.xsd"},
			path:     "/project/schemas/orders.xsd",
			want:     true,
		},
		{
			name:     "match nested xsd with ** pattern",
			patterns: []string{"**/*.xsd"},
			path:     "/project/schemas/v1/orders.xsd",
			want:     true,
		},
		{
			name:     "exclude overrides pattern",
			patterns: []string{"*.xsd"},
			exclude:  []string{"draft-*.xsd"},
			path:     "/project/draft-orders.xsd",
			want:     false,
		},
		{
			name:     "no match",
			patterns: []string{"*.xsd", "**/*.xsd"},
			path:     "/project/readme.md",
			want:     false,
		},
		{
			name:     "editor swap file",
			patterns: []string{"*.xsd"},
			path:     "/project/.orders.xsd.swp",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &FileWatcher{
				patterns: tt.patterns,
				exclude:  tt.exclude,
			}

			assert.Equal(t, tt.want, fw.shouldWatch(tt.path))
		})
	}
}

func TestFileWatcher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "v1")
	require.NoError(t, os.MkdirAll(nested, 0755))
	ignored := filepath.Join(tmpDir, "node_modules")
	require.NoError(t, os.MkdirAll(ignored, 0755))

	var (
		eventsMu sync.Mutex
		events   = map[string]bool{}
	)
	onChange := func(path string, op fsnotify.Op) {
		eventsMu.Lock()
		defer eventsMu.Unlock()
		events[filepath.Base(path)] = true
	}

	fw, err := NewFileWatcher([]string{"*.xsd", "**/*.xsd"}, []string{"node_modules"}, onChange)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, fw.AddDirectory(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "orders.xsd"), []byte("<schema/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "items.xsd"), []byte("<schema/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(ignored, "dep.xsd"), []byte("<schema/>"), 0644))

	assert.Eventually(t, func() bool {
		eventsMu.Lock()
		defer eventsMu.Unlock()
		return events["orders.xsd"] && events["items.xsd"]
	}, 2*time.Second, 20*time.Millisecond)

	eventsMu.Lock()
	defer eventsMu.Unlock()
	assert.False(t, events["notes.txt"])
	assert.False(t, events["dep.xsd"])
}

func TestFileWatcher_StartStopsOnCancel(t *testing.T) {
	fw, err := NewFileWatcher([]string{"*.xsd"}, nil, func(string, fsnotify.Op) {})
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, fw.Start(ctx), context.Canceled)
}

func TestFileWatcher_Close(t *testing.T) {
	fw, err := NewFileWatcher([]string{"*.xsd"}, []string{}, func(string, fsnotify.Op) {})
	require.NoError(t, err)

	assert.NoError(t, fw.Close())
	// Double close should also be safe
	assert.NoError(t, fw.Close())
}
