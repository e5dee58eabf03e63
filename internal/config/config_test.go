package config

import (
	"testing"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {

	t.Run("empty", func(t *testing.T) {
		config, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
		assert.NoError(t, config.Validate())
	})

	t.Run("partial jsx configuration", func(t *testing.T) {
		config, err := Parse([]byte("imports: [src/assets/index.css]\njsx:\n  clientImportSource: preact\n"))
		require.NoError(t, err)

		assert.Equal(t, []string{"src/assets/index.css"}, config.Imports)
		assert.Equal(t, "preact", config.JSX.ClientImportSource)
		assert.Equal(t, DEFAULT_SERVER_IMPORT_SOURCE, config.JSX.ServerImportSource)
		assert.Equal(t, hydration.DefaultHydrator(), config.Hydrator())
		assert.Equal(t, StringList{DEFAULT_PATTERN}, config.Pattern)
	})

	t.Run("single pattern", func(t *testing.T) {
		config, err := Parse([]byte(`pattern: "./src/**/*.tsx"`))
		require.NoError(t, err)
		assert.Equal(t, StringList{"./src/**/*.tsx"}, config.Pattern)
		assert.Equal(t, []string{"src/**/*.tsx"}, config.Patterns())
	})

	t.Run("pattern list", func(t *testing.T) {
		config, err := Parse([]byte("pattern:\n  - src/*.tsx\n  - pages/*.jsx\n"))
		require.NoError(t, err)
		assert.Equal(t, StringList{"src/*.tsx", "pages/*.jsx"}, config.Pattern)
	})

	t.Run("hydrate entry file", func(t *testing.T) {
		config, err := Parse([]byte("jsx:\n  hydrate: src/hydrate.ts\n"))
		require.NoError(t, err)
		assert.Equal(t, hydration.Hydrator{Entry: "src/hydrate.ts"}, config.Hydrator())
		assert.NoError(t, config.Validate())
	})

	t.Run("hydrate template", func(t *testing.T) {
		config, err := Parse([]byte("jsx:\n  hydrate:\n    template: 'mount({{element}}, {{container}})'\n"))
		require.NoError(t, err)
		assert.Equal(t, hydration.Hydrator{Template: "mount({{element}}, {{container}})"}, config.Hydrator())
		assert.NoError(t, config.Validate())
	})

	t.Run("inputs", func(t *testing.T) {
		config, err := Parse([]byte("build:\n  input: src/app.tsx\n"))
		require.NoError(t, err)
		assert.Equal(t, Input{Single: "src/app.tsx"}, config.Build.Input)
		assert.Equal(t, DEFAULT_OUT_DIR, config.Build.OutDir)

		config, err = Parse([]byte("build:\n  input: [src/a.tsx, src/b.tsx]\n"))
		require.NoError(t, err)
		assert.Equal(t, Input{List: []string{"src/a.tsx", "src/b.tsx"}}, config.Build.Input)

		config, err = Parse([]byte("build:\n  input:\n    main: src/app.tsx\n"))
		require.NoError(t, err)
		assert.Equal(t, Input{Named: map[string]string{"main": "src/app.tsx"}}, config.Build.Input)
		assert.False(t, config.Build.Input.IsEmpty())
	})

	t.Run("invalid YAML", func(t *testing.T) {
		for _, content := range []string{
			"pattern: [a",
			"pattern: \"unterminated",
			"pattern: 'unterminated",
			"build: {outDir: out",
		} {
			_, err := Parse([]byte(content))
			assert.ErrorIs(t, err, ErrInvalidConfig, content)
		}
	})

	t.Run("multiline template", func(t *testing.T) {
		config, err := Parse([]byte("jsx:\n  hydrate:\n    template: |\n      const { render } = await import(\"hono/jsx/dom\");\n      render({{element}}, {{container}});\n"))
		require.NoError(t, err)
		assert.Equal(t, "const { render } = await import(\"hono/jsx/dom\");\nrender({{element}}, {{container}});\n", config.JSX.Hydrate.Template)
		assert.NoError(t, config.Validate())
	})
}

func TestValidate(t *testing.T) {

	t.Run("all errors are reported", func(t *testing.T) {
		config := Default()
		config.Pattern = StringList{"src/[a"}
		config.JSX.ClientImportSource = ""
		config.JSX.Hydrate = HydrateConfig{Template: "render({{element}}", Entry: ""}
		config.Build.Base = "/app"
		config.Imports = []string{" "}

		err := config.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorContains(t, err, "invalid pattern")
		assert.ErrorContains(t, err, "jsx.clientImportSource")
		assert.ErrorContains(t, err, "jsx.hydrate")
		assert.ErrorContains(t, err, "build.base")
		assert.ErrorContains(t, err, "imports")
	})

	t.Run("both hydrators", func(t *testing.T) {
		config := Default()
		config.JSX.Hydrate.Entry = "src/hydrate.ts"
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
	})

	t.Run("minification", func(t *testing.T) {
		config := Default()
		config.Build.Minify = true
		assert.ErrorContains(t, config.Validate(), "build.minify")

		config.JSX.Hydrate = HydrateConfig{Entry: "src/hydrate.ts"}
		assert.NoError(t, config.Validate())
	})

	t.Run("out dir", func(t *testing.T) {
		config := Default()
		config.Build.OutDir = "./"
		assert.ErrorContains(t, config.Validate(), "build.outDir")
	})
}

func TestLoad(t *testing.T) {
	fls := afs.NewMemFilesystem()

	config, err := Load(fls, CONFIG_FILENAME)
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	require.NoError(t, afs.WriteFile(fls, CONFIG_FILENAME, []byte("build:\n  outDir: out\n")))

	config, err = Load(fls, CONFIG_FILENAME)
	require.NoError(t, err)
	assert.Equal(t, "out", config.Build.OutDir)

	//marshalled configurations are loadable.
	content, err := config.Marshal()
	require.NoError(t, err)

	reparsed, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, config, reparsed)
}
