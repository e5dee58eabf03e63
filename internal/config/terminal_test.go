package config

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDetectTerminal(t *testing.T) {
	t.Run("no variables", func(t *testing.T) {
		c := DetectTerminal(env(nil))
		assert.False(t, c.ShouldColorize())
		assert.Equal(t, termenv.Ascii, c.Profile())
	})

	t.Run("256 colors", func(t *testing.T) {
		c := DetectTerminal(env(map[string]string{"TERM": "xterm-256color"}))
		assert.True(t, c.ShouldColorize())
		assert.Equal(t, termenv.ANSI256, c.Profile())
	})

	t.Run("true color", func(t *testing.T) {
		c := DetectTerminal(env(map[string]string{"COLORTERM": "truecolor", "TERM": "xterm-256color"}))
		assert.Equal(t, termenv.TrueColor, c.Profile())
	})

	t.Run("forced colors", func(t *testing.T) {
		c := DetectTerminal(env(map[string]string{"FORCE_COLOR": "1"}))
		assert.Equal(t, termenv.ANSI, c.Profile())

		c = DetectTerminal(env(map[string]string{"FORCE_COLOR": "false"}))
		assert.False(t, c.ShouldColorize())
	})

	t.Run("NO_COLOR wins", func(t *testing.T) {
		c := DetectTerminal(env(map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1", "COLORTERM": "truecolor"}))
		assert.False(t, c.ShouldColorize())
		assert.Equal(t, termenv.Ascii, c.Profile())
	})
}
