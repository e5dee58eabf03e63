package parse

import (
	"strings"

	"github.com/inoxlang/islands/internal/sourcecode"
)

// scanToken scans the token starting at p.i, whitespace and comments should have been skipped.
// exprPos tells whether an expression can start at p.i, in this case a '/' starts a regular expression.
// Template literals are not handled by this function.
func (p *parser) scanToken(exprPos bool) token {
	p.panicIfContextDone()

	start := p.i
	r := p.s[p.i]

	switch {
	case isIdentStart(r) || r == '\\':
		p.eatIdentifier()
		return token{kind: identToken, text: string(p.s[start:p.i]), span: NodeSpan{Start: start, End: p.i}}
	case r == '#' && p.i+1 < p.len && isIdentStart(p.s[p.i+1]):
		//private name
		p.i++
		p.eatIdentifier()
		return token{kind: identToken, text: string(p.s[start:p.i]), span: NodeSpan{Start: start, End: p.i}}
	case isDecDigit(r) || (r == '.' && p.i+1 < p.len && isDecDigit(p.s[p.i+1])):
		p.eatNumber()
		return token{kind: numberToken, text: string(p.s[start:p.i]), span: NodeSpan{Start: start, End: p.i}}
	case r == '"' || r == '\'':
		value := p.eatString()
		return token{kind: stringToken, text: value, span: NodeSpan{Start: start, End: p.i}}
	case r == '/' && exprPos:
		p.eatRegex()
		return token{kind: regexToken, text: string(p.s[start:p.i]), span: NodeSpan{Start: start, End: p.i}}
	}

	remaining := p.len - p.i
	for _, punct := range punctuators {
		n := int32(len(punct))
		if n <= remaining && string(p.s[p.i:p.i+n]) == punct {
			//'?.' followed by a digit is a conditional operator followed by a number.
			if punct == "?." && p.i+2 < p.len && isDecDigit(p.s[p.i+2]) {
				continue
			}
			p.i += n
			return token{kind: punctToken, text: punct, span: NodeSpan{Start: start, End: p.i}}
		}
	}

	p.i++
	return token{kind: punctToken, text: string(r), span: NodeSpan{Start: start, End: p.i}}
}

// peekToken returns the next token without consuming it, errors are not reported.
func (p *parser) peekToken() token {
	snapshotIndex := p.i
	errorCount := len(p.errors)
	defer func() {
		p.i = snapshotIndex
		p.errors = p.errors[:errorCount]
		p.errorSpans = p.errorSpans[:errorCount]
	}()

	p.eatSpaceNewlineComment()
	if p.i < p.len && p.s[p.i] == '`' {
		return token{kind: templateToken, span: NodeSpan{Start: p.i, End: p.i + 1}}
	}
	return p.nextToken(false)
}

// nextToken skips whitespace and comments and scans the next token, noToken is returned at the end of the chunk.
func (p *parser) nextToken(exprPos bool) token {
	newline := p.eatSpaceNewlineComment()
	if p.i >= p.len {
		return token{kind: noToken, span: NodeSpan{Start: p.len, End: p.len}}
	}
	if p.s[p.i] == '`' {
		start := p.i
		p.eatTemplateWithoutMarkup()
		return token{kind: templateToken, span: NodeSpan{Start: start, End: p.i}, newlineBefore: newline}
	}
	tok := p.scanToken(exprPos)
	tok.newlineBefore = newline
	return tok
}

func (p *parser) eatIdentifier() {
	for p.i < p.len {
		r := p.s[p.i]
		switch {
		case isIdentChar(r):
			p.i++
		case r == '\\' && p.i+1 < p.len && p.s[p.i+1] == 'u':
			//unicode escape
			p.i += 2
		default:
			return
		}
	}
}

func (p *parser) eatNumber() {
	start := p.i
	isHex := p.s[p.i] == '0' && p.i+1 < p.len && (p.s[p.i+1] == 'x' || p.s[p.i+1] == 'X')

	for p.i < p.len {
		r := p.s[p.i]
		if isAlpha(r) || isDecDigit(r) || r == '_' || r == '.' {
			p.i++
			continue
		}
		//exponent sign
		if (r == '+' || r == '-') && !isHex && p.i > start && (p.s[p.i-1] == 'e' || p.s[p.i-1] == 'E') {
			p.i++
			continue
		}
		return
	}
}

// eatString eats a single or double quoted string and returns its value, escape sequences are not decoded
// except for escaped quotes and backslashes.
func (p *parser) eatString() string {
	start := p.i
	quote := p.s[p.i]
	p.i++

	var value strings.Builder

	for p.i < p.len {
		r := p.s[p.i]
		switch {
		case r == quote:
			p.i++
			return value.String()
		case r == '\\' && p.i+1 < p.len:
			next := p.s[p.i+1]
			if next == quote || next == '\\' {
				value.WriteRune(next)
			} else if !isLineTerminator(next) {
				value.WriteRune(r)
				value.WriteRune(next)
			}
			p.i += 2
		case isLineTerminator(r):
			p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_STRING_LIT, NodeSpan{Start: start, End: p.i})
			return value.String()
		default:
			value.WriteRune(r)
			p.i++
		}
	}

	p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_STRING_LIT, NodeSpan{Start: start, End: p.i})
	return value.String()
}

func (p *parser) eatRegex() {
	start := p.i
	p.i++ //'/'

	inClass := false

	for p.i < p.len {
		r := p.s[p.i]
		switch {
		case r == '\\':
			p.i += 2
			continue
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case r == '/' && !inClass:
			p.i++
			//flags
			for p.i < p.len && isIdentChar(p.s[p.i]) {
				p.i++
			}
			return
		case isLineTerminator(r):
			p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_REGEX_LIT, NodeSpan{Start: start, End: p.i})
			return
		}
		p.i++
	}

	p.i = min(p.i, p.len)
	p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_REGEX_LIT, NodeSpan{Start: start, End: p.i})
}

// parseTemplate parses a template literal, markup in substitutions is added to builder.
func (p *parser) parseTemplate(builder *partsBuilder) {
	p.parseTemplateLiteral(func() {
		p.parseCode(builder, '}', false)
	})
}

// eatTemplateWithoutMarkup eats a template literal, substitutions are skipped as balanced code.
func (p *parser) eatTemplateWithoutMarkup() {
	p.parseTemplateLiteral(func() {
		p.parseCode(&partsBuilder{rawStart: p.i}, '}', false)
	})
}

func (p *parser) parseTemplateLiteral(parseSubstitution func()) {
	p.panicIfContextDone()

	start := p.i
	p.i++ //'`'

	for p.i < p.len {
		switch p.s[p.i] {
		case '\\':
			p.i += 2
			continue
		case '`':
			p.i++
			return
		case '$':
			if p.i+1 < p.len && p.s[p.i+1] == '{' {
				substStart := p.i
				p.i += 2
				parseSubstitution()
				if p.i >= p.len || p.s[p.i] != '}' {
					p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_TEMPLATE_SUBST, NodeSpan{Start: substStart, End: p.i})
					return
				}
				p.i++
				continue
			}
		}
		p.i++
	}

	p.i = min(p.i, p.len)
	p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_TEMPLATE_LIT, NodeSpan{Start: start, End: p.i})
}
