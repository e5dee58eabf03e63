package pipeline

import (
	"path"

	"github.com/inoxlang/islands/internal/config"
)

// MergeInput merges the island modules into the base input of the build, entries are named after
// the base name of their file. Additions override entries of the base input with the same name.
func MergeInput(base config.Input, additions []string) map[string]string {
	merged := map[string]string{}

	switch {
	case len(base.List) > 0:
		for _, input := range base.List {
			merged[path.Base(input)] = input
		}
	case len(base.Named) > 0:
		for name, input := range base.Named {
			merged[name] = input
		}
	}

	for _, input := range additions {
		merged[path.Base(input)] = input
	}

	if base.Single != "" {
		merged[base.Single] = base.Single
	}

	return merged
}
