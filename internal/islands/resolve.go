package islands

import (
	"context"
	"fmt"

	"github.com/inoxlang/islands/internal/symbols"
)

// A ResolveFunc resolves the module id of the component named tagName. specifierOrFile is the specifier
// of the import for import origins, and the importing file for variable origins.
type ResolveFunc func(ctx context.Context, tagName, specifierOrFile, importer string) (moduleID string, ok bool, err error)

// ResolveModuleIDs resolves the module ids of discovered islands, resolve is called once per tag name.
// Unresolved tag names are not in the returned map.
func ResolveModuleIDs(ctx context.Context, discovered []Discovered, importer string, resolve ResolveFunc) (map[string]string, error) {
	moduleIDs := map[string]string{}
	resolved := map[string]bool{}

	for _, d := range discovered {
		if resolved[d.TagName] {
			continue
		}
		resolved[d.TagName] = true

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		specifierOrFile := importer
		if d.Origin.Kind == symbols.ImportOrigin {
			specifierOrFile = d.Origin.ModuleSpecifier
		}

		moduleID, ok, err := resolve(ctx, d.TagName, specifierOrFile, importer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve the module of %s in %s: %w", d.TagName, importer, err)
		}
		if ok {
			moduleIDs[d.TagName] = moduleID
		}
	}

	return moduleIDs, nil
}

// ModuleIDLookup returns a function usable as RewriteConfig.ModuleID.
func ModuleIDLookup(moduleIDs map[string]string) func(tagName string) (string, bool) {
	return func(tagName string) (string, bool) {
		id, ok := moduleIDs[tagName]
		return id, ok
	}
}
