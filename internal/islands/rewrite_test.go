package islands

import (
	"testing"

	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/parse"
	"github.com/inoxlang/islands/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewriteResult struct {
	chunk   *ast.Chunk
	result  *ast.Chunk
	code    string
	records []IslandRecord
}

func rewrite(t *testing.T, source string, moduleIDs map[string]string, siblings ...ast.Node) rewriteResult {
	chunk := parse.MustParseChunk(source)

	var records []IslandRecord
	result := Rewrite(chunk, RewriteConfig{
		Classifier: symbols.NewScopeResolver(chunk),
		Hash: func(moduleID string) string {
			return "hash:" + moduleID
		},
		ModuleID: ModuleIDLookup(moduleIDs),
		Siblings: func(moduleID string) []ast.Node {
			return siblings
		},
		OnIsland: func(record IslandRecord) {
			records = append(records, record)
		},
	})

	//the input tree is never mutated.
	require.Equal(t, source, ast.PrintChunk(chunk))

	return rewriteResult{
		chunk:   chunk,
		result:  result,
		code:    ast.Print(result, chunk.Source),
		records: records,
	}
}

func wrapperOpeningTag(hash, component string) string {
	return `<div style="display:contents" data-island-hash="` + hash + `" data-island-component="` + component +
		`" data-island-hydrated="false"`
}

func TestRewrite(t *testing.T) {
	fooModule := map[string]string{"Foo": "src/foo.tsx"}

	t.Run("elements without marker are not changed", func(t *testing.T) {
		res := rewrite(t, `
			import Foo from "./foo"
			const a = <Foo x="1" y={2}><div>text</div>{[<span/>]}</Foo>
		`, fooModule)

		assert.Same(t, res.chunk, res.result)
		assert.Empty(t, res.records)
	})

	t.Run("literal tags are not changed", func(t *testing.T) {
		res := rewrite(t, `const a = <div island-load/>`, map[string]string{"div": "src/div.tsx"})

		assert.Same(t, res.chunk, res.result)
		assert.Equal(t, `const a = <div island-load/>`, res.code)
		assert.Empty(t, res.records)
	})

	t.Run("tags of unknown origin are not changed", func(t *testing.T) {
		sources := []string{
			"import Foo = Lib.Foo\nconst a = <Foo island-load/>",
			"function render(Foo) { return <Foo island-load/> }",
			"const a = <this.Foo island-load/>",
			"enum Foo {}\nconst a = <Foo island-load/>",
		}

		for _, source := range sources {
			res := rewrite(t, source, fooModule)
			assert.Same(t, res.chunk, res.result, source)
			assert.Empty(t, res.records, source)
		}
	})

	t.Run("unresolved module ids", func(t *testing.T) {
		res := rewrite(t, "import Foo from './foo'\nconst a = <Foo island-load/>", nil)

		assert.Same(t, res.chunk, res.result)
		assert.Empty(t, res.records)
	})

	t.Run("imported component", func(t *testing.T) {
		res := rewrite(t, "import Foo from './foo'\nconst a = <Foo island-load/>;", fooModule)

		assert.Equal(t,
			"import Foo from './foo'\nconst a = <>"+wrapperOpeningTag("hash:src/foo.tsx", "Foo")+"><Foo island-load/></div></>;",
			res.code)

		require.Len(t, res.records, 1)
		record := res.records[0]
		assert.Equal(t, "hash:src/foo.tsx", record.Hash)
		assert.Equal(t, "src/foo.tsx", record.ModuleID)
		assert.Equal(t, "Foo", record.TagName)
		assert.Empty(t, record.Props)
		assert.Same(t, ast.FindFirstNode(res.chunk, (*ast.Element)(nil)), record.OriginalNode)
	})

	t.Run("locally declared component", func(t *testing.T) {
		res := rewrite(t, "const Local = () => <b/>\nexport default () => <Local island-load={true}/>", map[string]string{
			"Local": "src/app.tsx",
		})

		assert.Equal(t,
			"const Local = () => <b/>\nexport default () => <>"+wrapperOpeningTag("hash:src/app.tsx", "Local")+
				"><Local island-load={true}/></div></>",
			res.code)
		assert.Len(t, res.records, 1)
	})

	t.Run("member and namespaced tags", func(t *testing.T) {
		res := rewrite(t, "import * as UI from 'ui';\nimport svg from 'svg';\n<UI.Button island-load/>;<svg:icon island-load/>", map[string]string{
			"UI.Button": "ui/button.tsx",
			"svg.icon":  "svg/icon.tsx",
		})

		assert.Equal(t,
			"import * as UI from 'ui';\nimport svg from 'svg';\n"+
				"<>"+wrapperOpeningTag("hash:ui/button.tsx", "UI.Button")+"><UI.Button island-load/></div></>;"+
				"<>"+wrapperOpeningTag("hash:svg/icon.tsx", "svg.icon")+"><svg:icon island-load/></div></>",
			res.code)
	})

	t.Run("attributes", func(t *testing.T) {
		res := rewrite(t, `import Foo from './foo'; <Foo a b="x" {...rest} island-load />`, fooModule)

		assert.Equal(t,
			`import Foo from './foo'; <>`+wrapperOpeningTag("hash:src/foo.tsx", "Foo")+
				` data-island-props={JSON.stringify({"a": true, "b": "x", ...rest})}><Foo a b="x" {...rest} island-load /></div></>`,
			res.code)

		require.Len(t, res.records, 1)
		props := res.records[0].Props
		require.Len(t, props, 3)

		assert.Equal(t, ValueProp, props[0].Kind)
		assert.Equal(t, "a", props[0].Key)
		assert.Equal(t, ValueProp, props[1].Kind)
		assert.Equal(t, "b", props[1].Key)
		assert.Equal(t, SpreadProp, props[2].Kind)
	})

	t.Run("children", func(t *testing.T) {
		res := rewrite(t, `import Foo from './foo'; <Foo island-load>hello <Bar/></Foo>`, fooModule)

		assert.Equal(t,
			`import Foo from './foo'; <>`+wrapperOpeningTag("hash:src/foo.tsx", "Foo")+
				` data-island-props={JSON.stringify({"children": ["hello", <Bar/>]})}><Foo island-load>hello <Bar/></Foo></div></>`,
			res.code)
	})

	t.Run("namespaced attribute", func(t *testing.T) {
		res := rewrite(t, `import Foo from './foo'; <Foo data:id="5" island-load/>`, fooModule)

		assert.Equal(t,
			`import Foo from './foo'; <>`+wrapperOpeningTag("hash:src/foo.tsx", "Foo")+
				` data-island-props={JSON.stringify({"id:data": "5"})}><Foo data:id="5" island-load/></div></>`,
			res.code)
	})

	t.Run("nested islands", func(t *testing.T) {
		res := rewrite(t, "import { Outer, Inner } from './widgets';\n<Outer island-load><Inner island-load/></Outer>", map[string]string{
			"Outer": "src/outer.tsx",
			"Inner": "src/inner.tsx",
		})

		require.Len(t, res.records, 2)
		assert.Equal(t, "Inner", res.records[0].TagName)
		assert.Equal(t, "Outer", res.records[1].TagName)

		innerWrapped := "<>" + wrapperOpeningTag("hash:src/inner.tsx", "Inner") + "><Inner island-load/></div></>"

		assert.Equal(t,
			"import { Outer, Inner } from './widgets';\n<>"+wrapperOpeningTag("hash:src/outer.tsx", "Outer")+
				` data-island-props={JSON.stringify({"children": [`+innerWrapped+`]})}>`+
				"<Outer island-load>"+innerWrapped+"</Outer></div></>",
			res.code)

		//the original child of the outer island is the rewritten copy of Outer.
		outer := res.records[1].OriginalNode
		require.Len(t, outer.Children, 1)
		assert.IsType(t, (*ast.Fragment)(nil), outer.Children[0])
	})

	t.Run("siblings", func(t *testing.T) {
		script := ast.NewElement("script", []ast.Node{
			ast.NewStringAttribute("type", "module"),
			ast.NewStringAttribute("src", "/src/foo.tsx"),
		}, nil)

		res := rewrite(t, "import Foo from './foo';\n<Foo island-load/>", fooModule, script)

		assert.Equal(t,
			"import Foo from './foo';\n<><script type=\"module\" src=\"/src/foo.tsx\"/>"+
				wrapperOpeningTag("hash:src/foo.tsx", "Foo")+"><Foo island-load/></div></>",
			res.code)
	})

	t.Run("markup attribute values are wrapped", func(t *testing.T) {
		res := rewrite(t, `<div slot=<b/> other=<></>/>`, nil)

		assert.NotSame(t, res.chunk, res.result)
		assert.Equal(t, `<div slot={<b/>} other={<></>}/>`, res.code)
	})

	t.Run("markup attribute values of islands", func(t *testing.T) {
		res := rewrite(t, `import Foo from './foo'; <Foo icon=<Icon/> island-load/>`, fooModule)

		assert.Equal(t,
			`import Foo from './foo'; <>`+wrapperOpeningTag("hash:src/foo.tsx", "Foo")+
				` data-island-props={JSON.stringify({"icon": <Icon/>})}><Foo icon={<Icon/>} island-load/></div></>`,
			res.code)
	})

	t.Run("islands in attribute values and expressions", func(t *testing.T) {
		res := rewrite(t, `import Foo from './foo'; <div a={cond ? <Foo island-load/> : null}>{list.map(() => <Foo island-load/>)}</div>`, fooModule)

		wrapped := "<>" + wrapperOpeningTag("hash:src/foo.tsx", "Foo") + "><Foo island-load/></div></>"

		assert.Len(t, res.records, 2)
		assert.Equal(t,
			`import Foo from './foo'; <div a={cond ? `+wrapped+` : null}>{list.map(() => `+wrapped+`)}</div>`,
			res.code)
	})

	t.Run("determinism", func(t *testing.T) {
		source := "import Foo from './foo';\n<Foo a={1} island-load>{x}</Foo>"

		first := rewrite(t, source, fooModule)
		second := rewrite(t, source, fooModule)

		assert.Equal(t, first.code, second.code)
		assert.Equal(t, first.records[0].Hash, second.records[0].Hash)
	})

	t.Run("nil callbacks", func(t *testing.T) {
		chunk := parse.MustParseChunk("import Foo from './foo';\n<Foo island-load/>")

		result := Rewrite(chunk, RewriteConfig{
			Classifier: symbols.NewImportTable(chunk),
			ModuleID:   ModuleIDLookup(fooModule),
		})

		assert.Equal(t,
			"import Foo from './foo';\n<>"+wrapperOpeningTag("", "Foo")+"><Foo island-load/></div></>",
			ast.Print(result, chunk.Source))
	})
}
