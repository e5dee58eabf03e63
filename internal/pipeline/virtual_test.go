package pipeline

import (
	"testing"

	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/stretchr/testify/assert"
)

func TestImportsPrelude(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, ImportsPrelude(cfg))

	cfg.Imports = []string{"src/style.css", "./src/setup.ts"}
	assert.Equal(t, "import \"virtual:islands-imports-0\"\nimport \"virtual:islands-imports-1\"\n", ImportsPrelude(cfg))
}

func TestResolveVirtualImport(t *testing.T) {
	cfg := config.Default()
	cfg.Imports = []string{"src/style.css", "./src/setup.ts"}

	t.Run("configured imports", func(t *testing.T) {
		resolved, ok, err := ResolveVirtualImport(cfg, "virtual:islands-imports-1", APP_FILE)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "src/setup.ts", resolved)

		_, ok, err = ResolveVirtualImport(cfg, "virtual:islands-imports-2", APP_FILE)
		assert.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = ResolveVirtualImport(cfg, "virtual:islands-imports-x", APP_FILE)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hydrator entry", func(t *testing.T) {
		_, _, err := ResolveVirtualImport(cfg, hydration.VIRTUAL_HYDRATOR, APP_FILE)
		assert.ErrorContains(t, err, APP_FILE)

		withEntry := cfg
		withEntry.JSX.Hydrate = config.HydrateConfig{Entry: "./src/hydrate.ts"}

		resolved, ok, err := ResolveVirtualImport(withEntry, hydration.VIRTUAL_HYDRATOR, APP_FILE)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "src/hydrate.ts", resolved)
	})

	t.Run("other sources", func(t *testing.T) {
		_, ok, err := ResolveVirtualImport(cfg, "hono/jsx", APP_FILE)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestJSXImportSource(t *testing.T) {
	cfg := config.Default()

	t.Run("pragma", func(t *testing.T) {
		assert.Equal(t, "/** @jsxImportSource hono/jsx/dom */\n", JSXImportSourcePragma(cfg, APP_FILE, false))
		assert.Equal(t, "/** @jsxImportSource hono/jsx */\n", JSXImportSourcePragma(cfg, "src/app.jsx", true))
		assert.Empty(t, JSXImportSourcePragma(cfg, "src/helper.ts", false))
	})

	t.Run("swap", func(t *testing.T) {
		replacement, ok := SwapImportSource(cfg, "hono/jsx", false)
		assert.True(t, ok)
		assert.Equal(t, "hono/jsx/dom", replacement)

		replacement, ok = SwapImportSource(cfg, "hono/jsx/dom", true)
		assert.True(t, ok)
		assert.Equal(t, "hono/jsx", replacement)

		_, ok = SwapImportSource(cfg, "hono/jsx", true)
		assert.False(t, ok)

		_, ok = SwapImportSource(cfg, "react", false)
		assert.False(t, ok)

		same := cfg
		same.JSX.ServerImportSource = same.JSX.ClientImportSource
		_, ok = SwapImportSource(same, "hono/jsx/dom", false)
		assert.False(t, ok)
	})
}

func TestMergeInput(t *testing.T) {
	additions := []string{COUNTER_FILE, "src/menu.tsx"}

	t.Run("no base input", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"counter.tsx": COUNTER_FILE,
			"menu.tsx":    "src/menu.tsx",
		}, MergeInput(config.Input{}, additions))
	})

	t.Run("single", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"src/main.ts": "src/main.ts",
			"counter.tsx": COUNTER_FILE,
		}, MergeInput(config.Input{Single: "src/main.ts"}, additions[:1]))
	})

	t.Run("list", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"main.ts":     "src/main.ts",
			"counter.tsx": COUNTER_FILE,
		}, MergeInput(config.Input{List: []string{"src/main.ts", "lib/counter.tsx"}}, additions[:1]))
	})

	t.Run("named", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"main":     "src/main.ts",
			"menu.tsx": "src/menu.tsx",
		}, MergeInput(config.Input{Named: map[string]string{"main": "src/main.ts", "menu.tsx": "lib/menu.tsx"}}, additions[1:]))
	})
}
