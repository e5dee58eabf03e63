package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	// watchUntilChange starts watching a project and calls change periodically until a change is reported,
	// the watcher may not be started when change is first called.
	watchUntilChange := func(t *testing.T, change func(dir string)) []string {
		dir := t.TempDir()
		fls, err := afs.NewOsFilesystem(dir)
		require.NoError(t, err)

		for filePath, content := range projectFiles {
			require.NoError(t, afs.WriteFile(fls, filePath, []byte(content)))
		}

		server, err := NewServer(Options{Fs: fls, Config: config.Default(), Logger: zerolog.Nop()})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan []string, 10)
		watchErr := make(chan error, 1)

		go func() {
			watchErr <- Watch(ctx, WatchOptions{
				Server:   server,
				Debounce: 10 * time.Millisecond,
				OnChange: func(ctx context.Context, paths []string) {
					changes <- paths
				},
			})
		}()

		timeout := time.After(5 * time.Second)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		var changed []string

	loop:
		for {
			select {
			case changed = <-changes:
				break loop
			case err := <-watchErr:
				require.NoError(t, err)
				t.Fatal("watch returned")
			case <-ticker.C:
				change(dir)
			case <-timeout:
				t.Fatal("timeout")
			}
		}

		cancel()

		select {
		case err := <-watchErr:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not return")
		}

		return changed
	}

	t.Run("write", func(t *testing.T) {
		changed := watchUntilChange(t, func(dir string) {
			appPath := filepath.Join(dir, filepath.FromSlash(APP_FILE))
			require.NoError(t, os.WriteFile(appPath, []byte(projectFiles[APP_FILE]), 0600))
		})
		assert.Equal(t, []string{APP_FILE}, changed)
	})

	t.Run("temporary file renamed over the original", func(t *testing.T) {
		changed := watchUntilChange(t, func(dir string) {
			appPath := filepath.Join(dir, filepath.FromSlash(APP_FILE))
			tempPath := appPath + ".tmp"

			require.NoError(t, os.WriteFile(tempPath, []byte(projectFiles[APP_FILE]), 0600))
			require.NoError(t, os.Rename(tempPath, appPath))
		})
		assert.Equal(t, []string{APP_FILE}, changed)
	})
}

func TestIsContentChange(t *testing.T) {
	assert.True(t, isContentChange(fsnotify.Write, true))
	assert.True(t, isContentChange(fsnotify.Create, true))
	assert.True(t, isContentChange(fsnotify.Create|fsnotify.Chmod, true))

	//file saved by renaming a temporary file over it.
	assert.True(t, isContentChange(fsnotify.Rename, true))
	assert.True(t, isContentChange(fsnotify.Remove, true))

	//file moved away or deleted.
	assert.False(t, isContentChange(fsnotify.Rename, false))
	assert.False(t, isContentChange(fsnotify.Remove, false))

	assert.False(t, isContentChange(fsnotify.Chmod, true))
}
