package config

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// terminal capabilities of the process, set at init.
var (
	FORCE_COLOR           bool
	TRUECOLOR_COLORTERM   bool
	TERM_256COLOR_CAPABLE bool
	NO_COLOR              bool
	SHOULD_COLORIZE       bool

	// Ascii if SHOULD_COLORIZE is false
	COLOR_PROFILE = termenv.Ascii
)

func init() {
	capabilities := DetectTerminal(os.LookupEnv)

	FORCE_COLOR = capabilities.ForceColor
	TRUECOLOR_COLORTERM = capabilities.TrueColor
	TERM_256COLOR_CAPABLE = capabilities.Term256Color
	NO_COLOR = capabilities.NoColor
	SHOULD_COLORIZE = capabilities.ShouldColorize()

	if SHOULD_COLORIZE {
		COLOR_PROFILE = capabilities.Profile()
	}
}

type TerminalCapabilities struct {
	ForceColor   bool //FORCE_COLOR
	TrueColor    bool //COLORTERM=truecolor
	Term256Color bool //TERM=*256color*
	NoColor      bool //NO_COLOR
}

// DetectTerminal reads the color related environment variables.
func DetectTerminal(lookupEnv func(key string) (string, bool)) TerminalCapabilities {
	var c TerminalCapabilities

	isSet := func(key string) bool {
		s, ok := lookupEnv(key)
		return ok && len(s) != 0 && s != "false" && s != "0"
	}

	c.ForceColor = isSet("FORCE_COLOR")
	c.NoColor = isSet("NO_COLOR")

	colorTerm, _ := lookupEnv("COLORTERM")
	c.TrueColor = colorTerm == "truecolor"

	term, _ := lookupEnv("TERM")
	c.Term256Color = strings.Contains(term, "256color")

	return c
}

func (c TerminalCapabilities) ShouldColorize() bool {
	return !c.NoColor && (c.ForceColor || c.TrueColor || c.Term256Color)
}

func (c TerminalCapabilities) Profile() termenv.Profile {
	switch {
	case !c.ShouldColorize():
		return termenv.Ascii
	case c.TrueColor:
		return termenv.TrueColor
	case c.Term256Color:
		return termenv.ANSI256
	}
	return termenv.ANSI
}
