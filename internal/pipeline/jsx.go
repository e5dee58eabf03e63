package pipeline

import (
	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/symbols"
)

// JSXImportSourcePragma returns the pragma comment prepended to TSX/JSX files, the import source depends
// on the side (server or client). An empty string is returned for other files.
func JSXImportSourcePragma(cfg config.Config, filePath string, ssr bool) string {
	if !symbols.IsMarkupFile(filePath) {
		return ""
	}

	importSource := cfg.JSX.ClientImportSource
	if ssr {
		importSource = cfg.JSX.ServerImportSource
	}
	return "/** @jsxImportSource " + importSource + " */\n"
}

// SwapImportSource maps an import of the JSX import source of one side to the import source of the other side:
// the server import source is replaced on the client and vice versa. ok is false if source is not replaced.
func SwapImportSource(cfg config.Config, source string, ssr bool) (replacement string, ok bool) {
	client, server := cfg.JSX.ClientImportSource, cfg.JSX.ServerImportSource

	switch {
	case client == server:
		return "", false
	case source == server && !ssr:
		return client, true
	case source == client && ssr:
		return server, true
	}
	return "", false
}
