package pipeline

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-billy/v5/util"
	"github.com/inoxlang/islands/internal/symbols"
	"github.com/maruel/natural"
)

const DEFAULT_WATCH_DEBOUNCE_DURATION = 100 * time.Millisecond

type WatchOptions struct {
	Server *Server

	// Duration without changes after which the changed files are handled, defaults to DEFAULT_WATCH_DEBOUNCE_DURATION.
	Debounce time.Duration

	// OnChange is called with the changed source files in natural order, it defaults to emitting the files.
	OnChange func(ctx context.Context, paths []string)
}

// Watch watches the source files of the project and handles the changed files until ctx is done.
// The filesystem of the server should be an OS filesystem.
func Watch(ctx context.Context, opts WatchOptions) error {
	server := opts.Server
	fls := server.opts.Fs
	logger := server.opts.Logger.With().Str(SRC_LOG_FIELD_NAME, "watch").Logger()

	debounceDuration := opts.Debounce
	if debounceDuration <= 0 {
		debounceDuration = DEFAULT_WATCH_DEBOUNCE_DURATION
	}

	onChange := opts.OnChange
	if onChange == nil {
		onChange = func(ctx context.Context, paths []string) {
			for _, filePath := range paths {
				if err := server.Emit(ctx, filePath); err != nil {
					logger.Err(err).Str("file", filePath).Msg("failed to emit file")
				}
			}
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	//OS directory -> directory of the project
	watchedDirs := map[string]string{}

	addDir := func(dir string) error {
		absDir, err := fls.Absolute(dir)
		if err != nil {
			return err
		}
		if err := watcher.Add(absDir); err != nil {
			return err
		}
		watchedDirs[filepath.Clean(absDir)] = symbols.CleanPath(dir)
		return nil
	}

	err = util.Walk(fls, ".", func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if server.opts.isIgnoredDir(filePath) {
			return filepath.SkipDir
		}
		return addDir(filePath)
	})
	if err != nil {
		return err
	}

	logger.Info().Int("dirs", len(watchedDirs)).Msg("watching")

	var (
		lock    sync.Mutex
		changed = map[string]struct{}{}
	)

	handleChanges := func() {
		lock.Lock()
		paths := make([]string, 0, len(changed))
		for filePath := range changed {
			paths = append(paths, filePath)
		}
		clear(changed)
		lock.Unlock()

		if len(paths) == 0 || ctx.Err() != nil {
			return
		}
		sort.Sort(natural.StringSlice(paths))
		onChange(ctx, paths)
	}

	debounced := debounce.New(debounceDuration)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			dir, ok := watchedDirs[filepath.Dir(filepath.Clean(event.Name))]
			if !ok {
				continue
			}
			filePath := symbols.CleanPath(path.Join(dir, filepath.Base(event.Name)))

			if event.Has(fsnotify.Create) {
				if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
					if !server.opts.isIgnoredDir(filePath) {
						if err := addDir(filePath); err != nil {
							logger.Err(err).Str("dir", filePath).Msg("failed to watch directory")
						}
					}
					continue
				}
			}

			if !symbols.IsSourceFile(filePath) {
				continue
			}

			server.Invalidate(filePath)

			_, statErr := os.Lstat(event.Name)
			if !isContentChange(event.Op, statErr == nil) {
				continue
			}

			lock.Lock()
			changed[filePath] = struct{}{}
			lock.Unlock()

			debounced(handleChanges)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Err(err).Msg("watcher error")
		}
	}
}

// isContentChange reports whether an event changes the content of a file: writes, creations, and renames
// or removals after which a file exists at the same path (editors saving by renaming a temporary file
// over the original).
func isContentChange(op fsnotify.Op, exists bool) bool {
	switch {
	case op.Has(fsnotify.Write), op.Has(fsnotify.Create):
		return true
	case op.Has(fsnotify.Rename), op.Has(fsnotify.Remove):
		return exists
	}
	return false
}
