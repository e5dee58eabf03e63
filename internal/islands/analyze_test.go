package islands

import (
	"context"
	"errors"
	"testing"

	"github.com/inoxlang/islands/internal/parse"
	"github.com/inoxlang/islands/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {

	t.Run("no islands", func(t *testing.T) {
		chunk := parse.MustParseChunk(`import Foo from './foo'; <div island-load><Foo/></div>`)
		assert.Empty(t, Analyze(chunk, symbols.NewScopeResolver(chunk)))
	})

	t.Run("nested islands come first", func(t *testing.T) {
		chunk := parse.MustParseChunk(`
			import { Outer, Inner } from './widgets';
			const Local = () => null;
			<Outer island-load><Inner island-load/><Local island-load/><Inner island-load/></Outer>
		`)

		discovered := Analyze(chunk, symbols.NewScopeResolver(chunk))
		require.Len(t, discovered, 4)

		assert.Equal(t, "Inner", discovered[0].TagName)
		assert.Equal(t, symbols.Origin{Kind: symbols.ImportOrigin, ModuleSpecifier: "./widgets"}, discovered[0].Origin)
		assert.Equal(t, "Local", discovered[1].TagName)
		assert.Equal(t, symbols.VariableOrigin, discovered[1].Origin.Kind)
		assert.Equal(t, "Inner", discovered[2].TagName)
		assert.Equal(t, "Outer", discovered[3].TagName)

		assert.Equal(t, []string{"Inner", "Local", "Outer"}, TagNames(discovered))
	})
}

func TestResolveModuleIDs(t *testing.T) {
	source := `
		import { Outer, Inner } from './widgets';
		import * as UI from 'ui';
		function Local() { return null }
		<Outer island-load><Inner island-load/><Inner island-load/><Local island-load/><UI.Button island-load/></Outer>
	`

	discover := func(t *testing.T) []Discovered {
		chunk := parse.MustParseChunk(source)
		return Analyze(chunk, symbols.NewScopeResolver(chunk))
	}

	type call struct {
		tagName, specifierOrFile, importer string
	}

	t.Run("base case", func(t *testing.T) {
		var calls []call

		moduleIDs, err := ResolveModuleIDs(context.Background(), discover(t), "/src/app.tsx",
			func(ctx context.Context, tagName, specifierOrFile, importer string) (string, bool, error) {
				calls = append(calls, call{tagName, specifierOrFile, importer})
				if tagName == "UI.Button" {
					return "", false, nil
				}
				return "id:" + tagName, true, nil
			})

		require.NoError(t, err)
		assert.Equal(t, []call{
			{"Inner", "./widgets", "/src/app.tsx"},
			{"Local", "/src/app.tsx", "/src/app.tsx"},
			{"UI.Button", "ui", "/src/app.tsx"},
			{"Outer", "./widgets", "/src/app.tsx"},
		}, calls)

		assert.Equal(t, map[string]string{
			"Inner": "id:Inner",
			"Local": "id:Local",
			"Outer": "id:Outer",
		}, moduleIDs)
	})

	t.Run("error", func(t *testing.T) {
		resolveErr := errors.New("not found")

		_, err := ResolveModuleIDs(context.Background(), discover(t), "/src/app.tsx",
			func(ctx context.Context, tagName, specifierOrFile, importer string) (string, bool, error) {
				return "", false, resolveErr
			})

		assert.ErrorIs(t, err, resolveErr)
		assert.ErrorContains(t, err, "Inner")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		_, err := ResolveModuleIDs(ctx, discover(t), "/src/app.tsx",
			func(ctx context.Context, tagName, specifierOrFile, importer string) (string, bool, error) {
				called = true
				return "", false, nil
			})

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}
