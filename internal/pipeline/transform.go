package pipeline

import (
	"strings"

	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/inoxlang/islands/internal/islands"
	"github.com/inoxlang/islands/internal/symbols"
)

// unitTransform is the transformation of a single source unit for one side (client or server).
type unitTransform struct {
	unit      *symbols.SourceUnit
	moduleIDs map[string]string

	hash     func(moduleID string) string
	siblings func(moduleID string) []ast.Node
	registry *islands.Registry
}

// rewrite returns the code of the unit with its islands wrapped.
func (t unitTransform) rewrite() (string, []islands.IslandRecord) {
	if !symbols.IsMarkupFile(t.unit.Path) {
		return t.unit.Code(), nil
	}

	var records []islands.IslandRecord

	rewritten := islands.Rewrite(t.unit.Chunk, islands.RewriteConfig{
		Classifier: t.unit,
		Hash:       t.hash,
		ModuleID:   islands.ModuleIDLookup(t.moduleIDs),
		Siblings:   t.siblings,
		OnIsland: func(record islands.IslandRecord) {
			records = append(records, record)
			if t.registry != nil {
				t.registry.AddRecord(record)
			}
		},
	})

	return ast.PrintChunk(rewritten), records
}

// finalize adds the imports prelude and the hydration code to island modules (client side) and
// the JSX import source pragma to TSX/JSX files.
func finalize(opts Options, code string, modulePath string, ssr bool, hash string, registry *islands.Registry) (string, error) {
	w := &strings.Builder{}
	w.WriteString(JSXImportSourcePragma(opts.Config, modulePath, ssr))

	isIsland := !ssr && registry.IsIsland(modulePath)

	if isIsland {
		w.WriteString(ImportsPrelude(opts.Config))
	}

	w.WriteString(code)

	if isIsland {
		hydrationCode, err := hydration.Generate(hydration.Config{
			Hash:     hash,
			TagNames: registry.TagNames(modulePath),
			Hydrator: opts.Config.Hydrator(),
			Minify:   opts.Config.Build.Minify,
		})
		if err != nil {
			return "", err
		}
		w.WriteString(hydrationCode)
	}

	return w.String(), nil
}
