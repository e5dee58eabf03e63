package pipeline

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"time"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/assets"
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/islands"
	"github.com/inoxlang/islands/internal/moduleid"
	"github.com/inoxlang/islands/internal/scan"
	"github.com/inoxlang/islands/internal/symbols"
	"golang.org/x/sync/errgroup"
)

// maximum number of analysis rounds, each round analyzes the island modules discovered by the previous one.
const MAX_ANALYSIS_ROUNDS = 10

type BuildOptions struct {
	Options

	// Stamp is appended to the URLs of the assets, a new stamp is generated if empty.
	Stamp string
}

type BuildResult struct {
	Registry *islands.Registry
	Input    map[string]string //merged input, see MergeInput
	Files    []string          //transformed files
	Outputs  []string          //written files
	Manifest assets.Manifest
	Stamp    string
	Duration time.Duration
}

// Build transforms the project for production. It runs the following phases:
//   - discovery of the files matching the configured patterns
//   - concurrent analysis of the files and batched resolution of the island modules
//   - client pass: islands are wrapped and the island modules receive the imports prelude
//     and the hydration code, the manifest of the client outputs is written
//   - server pass: islands are wrapped and preceded by the script and stylesheets of their module
//
// The outputs are written under the out dir (client/, server/ and .vite/manifest.json).
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	start := time.Now()
	logger := opts.Logger.With().Str(SRC_LOG_FIELD_NAME, "build").Logger()

	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	stamp := opts.Stamp
	if stamp == "" {
		stamp = assets.NewStamp()
	}

	files, err := scan.ScanSources(ctx, opts.Fs, scan.Configuration{
		Patterns: opts.Config.Patterns(),
		Exclude:  []string{opts.outDir("**")},
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("files", len(files)).Msg("potential islands found")

	//Analysis.

	registry := islands.NewRegistry()
	cache := symbols.NewParseCache()

	program, moduleIDs, err := analyze(ctx, opts.Options, files, registry, cache)
	if err != nil {
		return nil, err
	}

	input := MergeInput(opts.Config.Build.Input, registry.ModuleIDs())

	result := &BuildResult{
		Registry: registry,
		Input:    input,
		Stamp:    stamp,
	}

	hash := moduleid.BuildHash("")
	units := program.Units()

	//Client pass.

	manifest := assets.Manifest{}
	css := cssImports(opts.Config)

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, _ := unitTransform{
			unit:      unit,
			moduleIDs: moduleIDs[unit.Path],
			hash:      hash,
			registry:  registry,
		}.rewrite()

		code, err := finalize(opts.Options, code, unit.Path, false, hash(unit.Path), registry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", unit.Path, err)
		}

		outPath := opts.outDir(CLIENT_OUT_DIR, unit.Path)
		if err := afs.WriteFile(opts.Fs, outPath, []byte(code)); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, unit.Path)
		result.Outputs = append(result.Outputs, outPath)

		chunk := assets.ManifestChunk{
			File: path.Join(CLIENT_OUT_DIR, unit.Path),
			Src:  unit.Path,
		}
		if registry.IsIsland(unit.Path) {
			chunk.IsEntry = true
			chunk.CSS = css
		}
		manifest[unit.Path] = chunk
	}

	if err := assets.WriteManifest(opts.Fs, opts.outDir(), manifest); err != nil {
		return nil, err
	}
	result.Outputs = append(result.Outputs, path.Join(opts.outDir(), assets.MANIFEST_PATH))

	//Server pass.

	manifest, err = assets.ReadManifest(opts.Fs, opts.outDir())
	if err != nil {
		return nil, err
	}
	result.Manifest = manifest

	siblings := func(moduleID string) []ast.Node {
		nodes, ok := manifest.Siblings(opts.Config.Build.Base, moduleID, stamp)
		if !ok {
			logger.Error().Str("module", moduleID).Msg("no file manifest found")
		}
		return nodes
	}

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, _ := unitTransform{
			unit:      unit,
			moduleIDs: moduleIDs[unit.Path],
			hash:      hash,
			siblings:  siblings,
			registry:  registry,
		}.rewrite()

		code, err := finalize(opts.Options, code, unit.Path, true, hash(unit.Path), registry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", unit.Path, err)
		}

		outPath := opts.outDir(SERVER_OUT_DIR, unit.Path)
		if err := afs.WriteFile(opts.Fs, outPath, []byte(code)); err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, outPath)
	}

	result.Duration = time.Since(start)

	logger.Info().
		Int("files", len(result.Files)).
		Int("islandModules", registry.Count()).
		Dur("duration", result.Duration).
		Msg("build done")

	return result, nil
}

// analyze loads and analyzes files concurrently, the island modules discovered in a round are loaded and analyzed
// in the next round. The module ids of the islands are registered in registry, the returned map contains
// the module ids of the islands of each unit.
func analyze(ctx context.Context, opts Options, files []string, registry *islands.Registry, cache *symbols.ParseCache) (*symbols.Program, map[string]map[string]string, error) {
	logger := opts.Logger.With().Str(SRC_LOG_FIELD_NAME, "analysis").Logger()

	moduleIDs := map[string]map[string]string{}
	loaded := map[string]bool{}
	var paths []string
	var program *symbols.Program

	toAnalyze := files

	for round := 0; len(toAnalyze) > 0; round++ {
		if round == MAX_ANALYSIS_ROUNDS {
			logger.Warn().Strs("files", toAnalyze).Msg("maximum number of analysis rounds reached")
			break
		}

		for _, file := range toAnalyze {
			loaded[file] = true
		}
		paths = append(paths, toAnalyze...)

		var err error
		program, err = symbols.LoadProgram(ctx, opts.Fs, paths, opts.loadConfig(cache))
		if err != nil {
			return nil, nil, err
		}

		results := make([]map[string]string, len(toAnalyze))
		resolve := newResolveFunc(program, logger)

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(runtime.GOMAXPROCS(0))

		for i, file := range toAnalyze {
			unit, _ := program.Unit(file)

			group.Go(func() error {
				logParsingErrors(logger, unit)

				discovered := islands.Analyze(unit.Chunk, unit)
				ids, err := islands.ResolveModuleIDs(groupCtx, discovered, unit.Path, resolve)
				if err != nil {
					return err
				}

				for tagName, moduleID := range ids {
					registry.Add(moduleID, tagName)
				}
				results[i] = ids
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, nil, err
		}

		for i, file := range toAnalyze {
			moduleIDs[file] = results[i]
		}

		//Island modules that are not loaded yet.

		toAnalyze = nil
		for _, moduleID := range registry.ModuleIDs() {
			if !loaded[moduleID] && symbols.IsSourceFile(moduleID) {
				toAnalyze = append(toAnalyze, moduleID)
			}
		}
	}

	logger.Debug().Strs("modules", registry.ModuleIDs()).Msg("island modules found")

	return program, moduleIDs, nil
}
