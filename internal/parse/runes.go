package parse

import "unicode"

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || isAlpha(r) || (r > 127 && unicode.IsLetter(r))
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || isDecDigit(r) || (r > 127 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)))
}

// isMarkupIdentChar reports whether r can appear in an element or attribute name (dashes are allowed).
func isMarkupIdentChar(r rune) bool {
	return isIdentChar(r) || r == '-'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDecDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return false
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
