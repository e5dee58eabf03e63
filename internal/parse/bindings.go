package parse

// extractParameterBindings returns the identifiers bound by a parameter list, tokens are the tokens between
// the parentheses.
func extractParameterBindings(tokens []token) []token {
	var bindings []token

	for _, param := range splitTopLevel(tokens, ",") {
		for len(param) > 1 && (param[0].is("...") || isParameterModifier(param)) {
			param = param[1:]
		}
		if len(param) == 0 || param[0].isIdent("this") {
			continue
		}
		bindings = append(bindings, extractPatternBindings(patternPart(param))...)
	}

	return bindings
}

func isParameterModifier(param []token) bool {
	if param[0].kind != identToken || !parameterModifiers[param[0].text] {
		return false
	}
	//a parameter named like a modifier.
	next := param[1]
	return next.kind == identToken || next.is("{") || next.is("[")
}

// patternPart returns the leading binding pattern of tokens (identifier, object or array pattern),
// type annotations and default values are not included.
func patternPart(tokens []token) []token {
	if len(tokens) == 0 {
		return nil
	}
	if tokens[0].is("{") || tokens[0].is("[") {
		end := findClosingToken(tokens, 0)
		return tokens[:end+1]
	}
	return tokens[:1]
}

// extractPatternBindings returns the identifiers bound by an identifier, an object pattern or an array pattern.
func extractPatternBindings(pattern []token) []token {
	if len(pattern) == 0 {
		return nil
	}

	first := pattern[0]
	switch {
	case first.kind == identToken:
		if reservedWords[first.text] {
			return nil
		}
		return []token{first}
	case first.is("{") || first.is("["):
		interior := pattern[1:]
		if len(interior) > 0 && interior[len(interior)-1].isClosingBracket() {
			interior = interior[:len(interior)-1]
		}
		return extractDestructuredBindings(first.text, interior)
	}
	return nil
}

// extractDestructuredBindings returns the identifiers bound by an object pattern (open is "{") or
// an array pattern (open is "["), interior are the tokens between the brackets.
func extractDestructuredBindings(open string, interior []token) []token {
	var bindings []token

	for _, element := range splitTopLevel(interior, ",") {
		if len(element) == 0 {
			//hole
			continue
		}
		if element[0].is("...") {
			bindings = append(bindings, extractPatternBindings(patternPart(element[1:]))...)
			continue
		}

		if open == "[" {
			bindings = append(bindings, extractPatternBindings(patternPart(element))...)
			continue
		}

		//shorthand property, possibly with a default value.
		if element[0].kind == identToken && (len(element) == 1 || element[1].is("=")) {
			bindings = append(bindings, element[0])
			continue
		}

		_, value, ok := cutTopLevel(element, ":")
		if ok {
			bindings = append(bindings, extractPatternBindings(patternPart(value))...)
		}
	}

	return bindings
}

// splitTopLevel splits tokens at each separator that is not in brackets.
func splitTopLevel(tokens []token, separator string) [][]token {
	if len(tokens) == 0 {
		return nil
	}

	var parts [][]token
	depth := 0
	start := 0

	for i, tok := range tokens {
		switch {
		case tok.isOpeningBracket():
			depth++
		case tok.isClosingBracket():
			depth--
		case depth == 0 && tok.is(separator):
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	return append(parts, tokens[start:])
}

func cutTopLevel(tokens []token, separator string) (before, after []token, found bool) {
	depth := 0
	for i, tok := range tokens {
		switch {
		case tok.isOpeningBracket():
			depth++
		case tok.isClosingBracket():
			depth--
		case depth == 0 && tok.is(separator):
			return tokens[:i], tokens[i+1:], true
		}
	}
	return tokens, nil, false
}

// findClosingToken returns the index of the bracket closing tokens[openIndex], the last index is returned
// if the bracket is not closed.
func findClosingToken(tokens []token, openIndex int) int {
	depth := 0
	for i := openIndex; i < len(tokens); i++ {
		switch {
		case tokens[i].isOpeningBracket():
			depth++
		case tokens[i].isClosingBracket():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(tokens) - 1
}
