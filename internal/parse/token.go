package parse

type tokenKind uint8

const (
	noToken tokenKind = iota
	identToken
	punctToken
	stringToken
	templateToken
	numberToken
	regexToken
	markupToken //element or fragment
)

type token struct {
	kind          tokenKind
	text          string //identifier name, punctuator, or string value
	span          NodeSpan
	newlineBefore bool
}

func (t token) is(punct string) bool {
	return t.kind == punctToken && t.text == punct
}

func (t token) isIdent(name string) bool {
	return t.kind == identToken && t.text == name
}

func (t token) isOpeningBracket() bool {
	return t.kind == punctToken && (t.text == "(" || t.text == "[" || t.text == "{")
}

func (t token) isClosingBracket() bool {
	return t.kind == punctToken && (t.text == ")" || t.text == "]" || t.text == "}")
}

// endsOperand reports whether an expression can end with t.
func (t token) endsOperand() bool {
	switch t.kind {
	case identToken:
		return !keywordsBeforeExpression[t.text]
	case stringToken, templateToken, numberToken, regexToken, markupToken:
		return true
	case punctToken:
		switch t.text {
		case ")", "]", "}", "++", "--":
			return true
		}
	}
	return false
}

var (
	// keywords after which a '/' starts a regex and a '<' can start an element.
	keywordsBeforeExpression = map[string]bool{
		"return": true, "typeof": true, "instanceof": true, "in": true, "of": true, "new": true,
		"delete": true, "void": true, "throw": true, "case": true, "do": true, "else": true,
		"yield": true, "await": true, "default": true, "extends": true,
	}

	// keywords that are never followed by a parameter list.
	controlKeywords = map[string]bool{
		"if": true, "while": true, "for": true, "switch": true, "with": true, "catch": true,
		"return": true, "typeof": true, "await": true, "yield": true, "void": true,
		"delete": true, "throw": true, "new": true, "case": true, "in": true, "of": true,
		"instanceof": true, "super": true, "import": true,
	}

	reservedWords = map[string]bool{
		"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
		"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true,
		"export": true, "extends": true, "false": true, "finally": true, "for": true, "function": true,
		"if": true, "import": true, "in": true, "instanceof": true, "new": true, "null": true,
		"return": true, "super": true, "switch": true, "this": true, "throw": true, "true": true,
		"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
		"let": true, "yield": true, "await": true, "of": true,
	}

	parameterModifiers = map[string]bool{
		"public": true, "private": true, "protected": true, "readonly": true, "override": true,
	}

	// multi-character punctuators, longest first.
	punctuators = []string{
		">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
		"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=", "*=",
		"/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	}
)
