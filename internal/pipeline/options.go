package pipeline

import (
	"context"
	"path"
	"strings"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/islands"
	"github.com/inoxlang/islands/internal/symbols"
	"github.com/rs/zerolog"
)

const (
	SRC_LOG_FIELD_NAME = "src"

	CLIENT_OUT_DIR = "client"
	SERVER_OUT_DIR = "server"
	DEV_OUT_DIR    = "dev"
)

// Options are the options shared by the build and serve pipelines.
type Options struct {
	// Filesystem rooted at the project directory.
	Fs afs.Filesystem

	Config config.Config
	Logger zerolog.Logger
}

func (o Options) loadConfig(cache *symbols.ParseCache) symbols.LoadConfig {
	return symbols.LoadConfig{Cache: cache}
}

func (o Options) outDir(subdirs ...string) string {
	return path.Join(append([]string{symbols.CleanPath(o.Config.Build.OutDir)}, subdirs...)...)
}

// isIgnoredDir returns true for directories that are never scanned or watched.
func (o Options) isIgnoredDir(dir string) bool {
	dir = symbols.CleanPath(dir)
	if dir == "." {
		return false
	}
	outDir := o.outDir()
	base := path.Base(dir)
	return base == "node_modules" || strings.HasPrefix(base, ".") || dir == outDir || strings.HasPrefix(dir, outDir+"/")
}

// newResolveFunc returns a module resolver: import specifiers are resolved to files of the program or of
// its filesystem, locally declared components belong to the importing file.
func newResolveFunc(program *symbols.Program, logger zerolog.Logger) islands.ResolveFunc {
	return func(ctx context.Context, tagName, specifierOrFile, importer string) (string, bool, error) {
		if specifierOrFile == importer {
			return importer, true, nil
		}

		moduleID, ok := program.ResolveSpecifier(importer, specifierOrFile)
		if !ok {
			logger.Warn().
				Str("file", importer).
				Str("tag", tagName).
				Str("specifier", specifierOrFile).
				Msg("module of island not resolved, the island is not transformed")
		}
		return moduleID, ok, nil
	}
}

func logParsingErrors(logger zerolog.Logger, unit *symbols.SourceUnit) {
	if unit.ParsingErr == nil {
		return
	}
	for _, line := range strings.Split(unit.ParsingErr.Message, "\n") {
		logger.Warn().Str("file", unit.Path).Msg(line)
	}
}
