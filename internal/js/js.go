package js

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/minify/v2"
	minifyjs "github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/parse/v2"
	parsejs "github.com/tdewolff/parse/v2/js"
)

const MIME_TYPE = "application/javascript"

var (
	ErrUnbalancedBrackets = errors.New("unbalanced brackets")

	minifier = minify.New()
)

func init() {
	minifier.AddFunc(MIME_TYPE, minifyjs.Minify)
}

// Minify minifies JavaScript code, code containing markup (JSX) cannot be minified.
func Minify(code string) (string, error) {
	minified, err := minifier.String(MIME_TYPE, code)
	if err != nil {
		return "", fmt.Errorf("failed to minify: %w", err)
	}
	return minified, nil
}

var keywordsBeforeRegex = map[string]bool{
	"return": true, "typeof": true, "case": true, "do": true, "else": true, "in": true, "instanceof": true,
	"new": true, "delete": true, "void": true, "throw": true, "yield": true, "await": true,
}

// Validate performs a lexical check of JavaScript code: strings, template literals, comments and regular
// expressions should be terminated and brackets should be balanced. Markup (JSX) is tolerated because it is
// tokenized as punctuators and identifiers.
func Validate(code string) error {
	lexer := parsejs.NewLexer(parse.NewInputString(code))

	var brackets []byte
	prev := ""

	for {
		tokenType, text := lexer.Next()

		if tokenType == parsejs.ErrorToken {
			err := lexer.Err()
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		s := string(text)
		if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/*") {
			continue
		}

		if (s == "/" || s == "/=") && isRegexAllowedAfter(prev) {
			tokenType, text = lexer.RegExp()
			if tokenType == parsejs.ErrorToken {
				return fmt.Errorf("invalid regular expression: %w", lexer.Err())
			}
			s = string(text)
		}

		switch s {
		case "(", "[", "{":
			brackets = append(brackets, s[0])
		case ")", "]", "}":
			if len(brackets) == 0 || brackets[len(brackets)-1] != openingBracket(s[0]) {
				return fmt.Errorf("%w: unexpected '%s'", ErrUnbalancedBrackets, s)
			}
			brackets = brackets[:len(brackets)-1]
		}

		prev = s
	}

	if len(brackets) > 0 {
		return fmt.Errorf("%w: unclosed '%c'", ErrUnbalancedBrackets, brackets[len(brackets)-1])
	}
	return nil
}

func openingBracket(closing byte) byte {
	switch closing {
	case ')':
		return '('
	case ']':
		return '['
	}
	return '{'
}

func isRegexAllowedAfter(prev string) bool {
	if prev == "" {
		return true
	}
	if keywordsBeforeRegex[prev] {
		return true
	}

	switch c := prev[0]; {
	case c == ')' || c == ']' || c == '}':
		return false
	case c == '_' || c == '$' || c == '"' || c == '\'' || c == '`' || c == '.':
		return false
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= 0x80:
		return false
	}
	return true
}
