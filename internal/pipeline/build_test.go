package pipeline

import (
	"context"
	"testing"

	"github.com/inoxlang/islands/internal/assets"
	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/inoxlang/islands/internal/moduleid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	counterHash := moduleid.BuildHash("")(COUNTER_FILE)

	t.Run("base case", func(t *testing.T) {
		cfg := config.Default()
		cfg.Imports = []string{"./src/style.css", "src/setup.ts"}

		opts := newTestOptions(t, projectFiles, cfg)

		result, err := Build(context.Background(), BuildOptions{Options: opts, Stamp: "01J"})
		require.NoError(t, err)

		assert.Equal(t, []string{COUNTER_FILE}, result.Registry.ModuleIDs())
		assert.Equal(t, []string{"Counter"}, result.Registry.TagNames(COUNTER_FILE))

		//the counter does not match the pattern, it is analyzed because it is an island module.
		assert.Equal(t, []string{APP_FILE, COUNTER_FILE}, result.Files)
		assert.Equal(t, map[string]string{"counter.tsx": COUNTER_FILE}, result.Input)
		assert.Equal(t, "01J", result.Stamp)

		assert.ElementsMatch(t, []string{
			"dist/client/" + APP_FILE,
			"dist/client/" + COUNTER_FILE,
			"dist/.vite/manifest.json",
			"dist/server/" + APP_FILE,
			"dist/server/" + COUNTER_FILE,
		}, result.Outputs)

		//client

		clientApp := readFile(t, opts.Fs, "dist/client/"+APP_FILE)
		assert.Contains(t, clientApp, "/** @jsxImportSource hono/jsx/dom */\n")
		assert.Contains(t, clientApp, `data-island-hash="`+counterHash+`"`)
		assert.Contains(t, clientApp, `data-island-component="Counter"`)
		assert.Contains(t, clientApp, `data-island-props={JSON.stringify(`)
		assert.NotContains(t, clientApp, "<script")
		assert.NotContains(t, clientApp, "querySelectorAll")
		assert.NotContains(t, clientApp, VIRTUAL_IMPORTS_PREFIX)

		clientCounter := readFile(t, opts.Fs, "dist/client/"+COUNTER_FILE)
		assert.Contains(t, clientCounter, "import \"virtual:islands-imports-0\"\nimport \"virtual:islands-imports-1\"\n")
		assert.Contains(t, clientCounter, projectFiles[COUNTER_FILE])
		assert.Contains(t, clientCounter, hydration.Selector(counterHash, "Counter"))

		//manifest

		chunk, ok := result.Manifest[COUNTER_FILE]
		require.True(t, ok)
		assert.True(t, chunk.IsEntry)
		assert.Equal(t, "client/"+COUNTER_FILE, chunk.File)
		assert.Equal(t, []string{"src/style.css"}, chunk.CSS)

		appChunk := result.Manifest[APP_FILE]
		assert.False(t, appChunk.IsEntry)
		assert.Empty(t, appChunk.CSS)

		written, err := assets.ReadManifest(opts.Fs, "dist")
		require.NoError(t, err)
		assert.Equal(t, result.Manifest, written)

		//server

		serverApp := readFile(t, opts.Fs, "dist/server/"+APP_FILE)
		assert.Contains(t, serverApp, "/** @jsxImportSource hono/jsx */\n")
		assert.Contains(t, serverApp, `<script type="module" src="/client/`+COUNTER_FILE+`?t=01J"/>`)
		assert.Contains(t, serverApp, `<link rel="stylesheet" href="/src/style.css?t=01J"/>`)
		assert.Contains(t, serverApp, `data-island-hash="`+counterHash+`"`)

		serverCounter := readFile(t, opts.Fs, "dist/server/"+COUNTER_FILE)
		assert.NotContains(t, serverCounter, "querySelectorAll")
		assert.NotContains(t, serverCounter, VIRTUAL_IMPORTS_PREFIX)
	})

	t.Run("input entries are merged", func(t *testing.T) {
		cfg := config.Default()
		cfg.Build.Input = config.Input{Named: map[string]string{"main": "src/main.ts"}}

		result, err := Build(context.Background(), BuildOptions{Options: newTestOptions(t, projectFiles, cfg)})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"main":        "src/main.ts",
			"counter.tsx": COUNTER_FILE,
		}, result.Input)
		assert.NotEmpty(t, result.Stamp)
	})

	t.Run("no islands", func(t *testing.T) {
		opts := newTestOptions(t, map[string]string{
			APP_FILE: "export const App = () => <main/>\n",
		}, config.Default())

		result, err := Build(context.Background(), BuildOptions{Options: opts})
		require.NoError(t, err)

		assert.Zero(t, result.Registry.Count())
		assert.Equal(t, []string{APP_FILE}, result.Files)
		assert.Equal(t, "/** @jsxImportSource hono/jsx */\nexport const App = () => <main/>\n", readFile(t, opts.Fs, "dist/server/"+APP_FILE))
	})

	t.Run("previous outputs are not scanned", func(t *testing.T) {
		cfg := config.Default()
		cfg.Pattern = config.StringList{"**/*.tsx"}

		opts := newTestOptions(t, projectFiles, cfg)

		_, err := Build(context.Background(), BuildOptions{Options: opts})
		require.NoError(t, err)

		result, err := Build(context.Background(), BuildOptions{Options: opts})
		require.NoError(t, err)
		assert.Equal(t, []string{APP_FILE, COUNTER_FILE}, result.Files)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cfg := config.Default()
		cfg.JSX.Hydrate = config.HydrateConfig{}

		_, err := Build(context.Background(), BuildOptions{Options: newTestOptions(t, projectFiles, cfg)})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Build(ctx, BuildOptions{Options: newTestOptions(t, projectFiles, config.Default())})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
