package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/inoxlang/islands/internal/symbols"
)

const VIRTUAL_IMPORTS_PREFIX = "virtual:islands-imports-"

// ImportsPrelude returns the import statements prepended to the island modules (client side),
// one per configured import.
func ImportsPrelude(cfg config.Config) string {
	if len(cfg.Imports) == 0 {
		return ""
	}

	w := &strings.Builder{}
	for i := range cfg.Imports {
		fmt.Fprintf(w, "import \"%s%d\"\n", VIRTUAL_IMPORTS_PREFIX, i)
	}
	return w.String()
}

// ResolveVirtualImport resolves the virtual modules imported by the transformed files: virtual:islands-imports-N
// is resolved to the Nth configured import and virtual:island-hydrator to the hydrate entry file. The returned
// paths are relative to the project root. ok is false for other sources.
func ResolveVirtualImport(cfg config.Config, source, importer string) (resolved string, ok bool, err error) {
	switch {
	case source == hydration.VIRTUAL_HYDRATOR:
		if cfg.JSX.Hydrate.Entry == "" {
			return "", false, fmt.Errorf("file %q attempted to import %s, but jsx.hydrate is not an entry file", importer, source)
		}
		return symbols.CleanPath(cfg.JSX.Hydrate.Entry), true, nil
	case strings.HasPrefix(source, VIRTUAL_IMPORTS_PREFIX):
		index, err := strconv.Atoi(strings.TrimPrefix(source, VIRTUAL_IMPORTS_PREFIX))
		if err != nil || index < 0 || index >= len(cfg.Imports) {
			return "", false, nil
		}
		return symbols.CleanPath(cfg.Imports[index]), true, nil
	}
	return "", false, nil
}

// cssImports returns the configured imports that are stylesheets.
func cssImports(cfg config.Config) []string {
	var css []string
	for _, imported := range cfg.Imports {
		if strings.HasSuffix(imported, ".css") {
			css = append(css, symbols.CleanPath(imported))
		}
	}
	return css
}
