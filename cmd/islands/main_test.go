package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inoxlang/islands/internal/config"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (statusCode int, out string, errOut string) {
	outW := &bytes.Buffer{}
	errW := &bytes.Buffer{}
	statusCode = _main(context.Background(), append([]string{COMMAND_NAME}, args...), outW, errW)
	return statusCode, outW.String(), errW.String()
}

func writeProject(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0700))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0600))
	}
	return dir
}

var project = map[string]string{
	"src/app.tsx": `import Counter from "./counter"
export const App = () => <main><Counter island-load count={1}/></main>
`,
	"src/counter.tsx": `export default function Counter(props) { return <button>{props.count}</button> }
`,
}

func TestCommands(t *testing.T) {
	config.COLOR_PROFILE = termenv.Ascii

	t.Run("help", func(t *testing.T) {
		statusCode, out, _ := runCommand(t)
		assert.Zero(t, statusCode)
		assert.Contains(t, out, BUILD_SUBCMD+" - ")

		statusCode, out, _ = runCommand(t, "--help")
		assert.Zero(t, statusCode)
		assert.Equal(t, CMD_HELP, out)
	})

	t.Run("subcommand help", func(t *testing.T) {
		statusCode, out, _ := runCommand(t, HELP_SUBCMD, BUILD_SUBCMD)
		assert.Zero(t, statusCode)
		assert.Contains(t, out, SUBCOMMAND_DESCRIPTION_MAP[BUILD_SUBCMD])
		assert.Contains(t, out, "--out-dir")

		for _, cmd := range []string{SERVE_SUBCMD, TRANSFORM_SUBCMD, INSPECT_SUBCMD, CHECK_CONFIG_SUBCMD} {
			statusCode, out, _ := runCommand(t, cmd, "--help")
			assert.Zero(t, statusCode, cmd)
			assert.True(t, strings.HasPrefix(out, SUBCOMMAND_DESCRIPTION_MAP[cmd]+"\n"), cmd)
			assert.Contains(t, out, "\noptions:\n", cmd)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		statusCode, _, errOut := runCommand(t, "buid")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, "unknown command 'buid'")
	})

	t.Run("check configuration", func(t *testing.T) {
		dir := writeProject(t, map[string]string{
			"islands.yaml": "build:\n  base: /static\n",
		})

		statusCode, _, errOut := runCommand(t, CHECK_CONFIG_SUBCMD, "--dir", dir)
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, "build.base")

		dir = writeProject(t, nil)
		statusCode, out, _ := runCommand(t, CHECK_CONFIG_SUBCMD, "--dir", dir)
		assert.Zero(t, statusCode)
		assert.Equal(t, "valid configuration\n", out)
	})

	t.Run("build", func(t *testing.T) {
		dir := writeProject(t, project)

		statusCode, out, errOut := runCommand(t, BUILD_SUBCMD, "--dir", dir, "--out-dir", "out", "--stamp", "01J", "--log-level", "error")
		require.Zero(t, statusCode, errOut)
		assert.Contains(t, out, "build done")
		assert.Contains(t, out, "src/counter.tsx [Counter]")
		assert.Contains(t, out, "counter.tsx: src/counter.tsx")

		serverApp, err := os.ReadFile(filepath.Join(dir, "out", "server", "src", "app.tsx"))
		require.NoError(t, err)
		assert.Contains(t, string(serverApp), `<script type="module" src="/client/src/counter.tsx?t=01J"/>`)
	})

	t.Run("invalid log level", func(t *testing.T) {
		dir := writeProject(t, project)

		statusCode, _, errOut := runCommand(t, BUILD_SUBCMD, "--dir", dir, "--log-level", "verbose")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, "invalid log level")
	})

	t.Run("transform", func(t *testing.T) {
		dir := writeProject(t, project)

		statusCode, out, errOut := runCommand(t, TRANSFORM_SUBCMD, "--dir", dir, "--ssr", "src/app.tsx")
		require.Zero(t, statusCode, errOut)
		assert.Contains(t, out, "/** @jsxImportSource hono/jsx */\n")
		assert.Contains(t, out, `data-island-component="Counter"`)

		statusCode, _, errOut = runCommand(t, TRANSFORM_SUBCMD, "--dir", dir)
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, "missing file path")
	})

	t.Run("inspect", func(t *testing.T) {
		dir := writeProject(t, map[string]string{
			"index.html": `<html><body>
				<div style="display:contents" data-island-hash="h" data-island-component="Counter" data-island-hydrated="false" data-island-props='{"count":1}'><button>1</button></div>
				<div style="display:contents" data-island-hash="h" data-island-component="Menu" data-island-hydrated="true"></div>
				<div style="display:contents" data-island-hash="h" data-island-component="Broken" data-island-hydrated="false" data-island-props='{'></div>
			</body></html>`,
		})

		statusCode, out, errOut := runCommand(t, INSPECT_SUBCMD, filepath.Join(dir, "index.html"))
		require.Zero(t, statusCode, errOut)
		assert.Contains(t, out, "3 islands\n")
		assert.Contains(t, out, "Counter (h) hydrated=false props=1")
		assert.Contains(t, out, "Menu (h) hydrated=true props=0")
		assert.Contains(t, out, "invalid island props")

		statusCode, out, errOut = runCommand(t, INSPECT_SUBCMD, "--json", filepath.Join(dir, "index.html"))
		require.Zero(t, statusCode, errOut)
		assert.Contains(t, out, `"component": "Counter"`)
		assert.Contains(t, out, `"count": 1`)
	})
}
