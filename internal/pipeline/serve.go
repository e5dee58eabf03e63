package pipeline

import (
	"context"
	"fmt"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/assets"
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/islands"
	"github.com/inoxlang/islands/internal/moduleid"
	"github.com/inoxlang/islands/internal/symbols"
	"github.com/rs/zerolog"
)

// A Server transforms files on demand during development, island modules are identified by the path
// they are served at. Islands are registered as the files using them are transformed.
// A Server is safe for concurrent use.
type Server struct {
	opts     Options
	logger   zerolog.Logger
	registry *islands.Registry
	cache    *symbols.ParseCache
	program  *symbols.Program
}

func NewServer(opts Options) (*Server, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	return &Server{
		opts:     opts,
		logger:   opts.Logger.With().Str(SRC_LOG_FIELD_NAME, "serve").Logger(),
		registry: islands.NewRegistry(),
		cache:    symbols.NewParseCache(),
		program:  symbols.NewProgram(opts.Fs),
	}, nil
}

func (s *Server) Registry() *islands.Registry {
	return s.registry
}

// TransformFile returns the transformed code of a file for the client or the server (ssr).
func (s *Server) TransformFile(ctx context.Context, filePath string, ssr bool) (string, error) {
	filePath = symbols.CleanPath(filePath)

	content, err := afs.ReadFile(s.opts.Fs, filePath, symbols.DEFAULT_MAX_SOURCE_FILE_SIZE)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	unit, err := symbols.ParseSourceUnit(ctx, filePath, string(content), s.opts.loadConfig(s.cache))
	if err != nil {
		return "", err
	}
	logParsingErrors(s.logger, unit)

	discovered := islands.Analyze(unit.Chunk, unit)
	moduleIDs, err := islands.ResolveModuleIDs(ctx, discovered, unit.Path, newResolveFunc(s.program, s.logger))
	if err != nil {
		return "", err
	}

	servePath := moduleid.ServePath("")

	code, records := unitTransform{
		unit:      unit,
		moduleIDs: moduleIDs,
		hash:      servePath,
		siblings: func(moduleID string) []ast.Node {
			return []ast.Node{assets.ModuleScript(servePath(moduleID))}
		},
		registry: s.registry,
	}.rewrite()

	for _, record := range records {
		s.logger.Debug().Str("file", filePath).Str("module", record.ModuleID).Str("tag", record.TagName).Msg("island transformed")
	}

	return finalize(s.opts, code, filePath, ssr, servePath(filePath), s.registry)
}

// Invalidate removes the cached parsing result of a file.
func (s *Server) Invalidate(filePath string) {
	s.cache.InvalidatePath(symbols.CleanPath(filePath))
}

// Emit transforms a file for both sides and writes the outputs under the dev directory of the out dir
// (dev/client/ and dev/server/).
func (s *Server) Emit(ctx context.Context, filePath string) error {
	filePath = symbols.CleanPath(filePath)

	for _, ssr := range []bool{false, true} {
		code, err := s.TransformFile(ctx, filePath, ssr)
		if err != nil {
			return err
		}

		side := CLIENT_OUT_DIR
		if ssr {
			side = SERVER_OUT_DIR
		}
		if err := afs.WriteFile(s.opts.Fs, s.opts.outDir(DEV_OUT_DIR, side, filePath), []byte(code)); err != nil {
			return err
		}
	}

	s.logger.Info().Str("file", filePath).Msg("file emitted")
	return nil
}
