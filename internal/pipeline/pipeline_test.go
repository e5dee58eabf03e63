package pipeline

import (
	"testing"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	APP_FILE     = "src/app.tsx"
	COUNTER_FILE = "src/components/counter.tsx"
)

var projectFiles = map[string]string{
	APP_FILE: `import Counter from "./components/counter"
import { helper } from "./helper"
export const App = () => <main><Counter island-load count={1}/></main>
`,
	COUNTER_FILE: `export default function Counter(props) { return <button>{props.count}</button> }
`,
	"src/helper.ts": `export const helper = (a, b) => a < b
`,
}

func newTestFilesystem(t *testing.T, files map[string]string) afs.Filesystem {
	fls := afs.NewMemFilesystem()
	for filePath, content := range files {
		require.NoError(t, afs.WriteFile(fls, filePath, []byte(content)))
	}
	return fls
}

func newTestOptions(t *testing.T, files map[string]string, cfg config.Config) Options {
	return Options{
		Fs:     newTestFilesystem(t, files),
		Config: cfg,
		Logger: zerolog.Nop(),
	}
}

func readFile(t *testing.T, fls afs.Filesystem, filePath string) string {
	content, err := afs.ReadFile(fls, filePath, 0)
	require.NoError(t, err)
	return string(content)
}
