package parse

import (
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/sourcecode"
)

// isMarkupStart reports whether the '<' at p.i can start an element or a fragment.
func (p *parser) isMarkupStart() bool {
	if p.noMarkup || p.i+1 >= p.len {
		return false
	}
	next := p.s[p.i+1]
	return next == '>' || isIdentStart(next)
}

// tryParseMarkup parses the element or fragment starting at p.i ('<'). If the opening tag is not well formed
// ok is false and the state of the parser is restored. Once the opening tag is parsed the parser is committed:
// errors in the children or in the closing tag are reported and ok is true.
func (p *parser) tryParseMarkup() (_ ast.Node, ok bool) {
	p.panicIfContextDone()

	snapshot := p.snapshot()
	node, ok := p.parseMarkupNode()
	if !ok {
		p.restore(snapshot)
		return nil, false
	}
	return node, true
}

func (p *parser) parseMarkupNode() (ast.Node, bool) {
	start := p.i
	p.i++ //'<'

	//Fragment.

	if p.s[p.i] == '>' {
		p.i++
		children, _, parsingErr := p.parseMarkupChildren(nil)
		return &ast.Fragment{
			NodeBase: ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}, Err: parsingErr},
			Children: children,
		}, true
	}

	//Parse opening tag.

	name, ok := p.parseElementName()
	if !ok || p.isTypeParameterList(name) {
		return nil, false
	}

	var attributes []ast.Node

	for {
		p.eatSpaceNewlineComment()
		if p.i >= p.len {
			return nil, false
		}

		switch r := p.s[p.i]; {
		case r == '/':
			if p.i+1 >= p.len || p.s[p.i+1] != '>' {
				return nil, false
			}
			p.i += 2
			return &ast.Element{
				NodeBase:    ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
				Name:        name,
				Attributes:  attributes,
				SelfClosing: true,
			}, true
		case r == '>':
			p.i++

			children, closingName, parsingErr := p.parseMarkupChildren(name)
			return &ast.Element{
				NodeBase:    ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}, Err: parsingErr},
				Name:        name,
				Attributes:  attributes,
				Children:    children,
				ClosingName: closingName,
			}, true
		case r == '{':
			attr, ok := p.parseSpreadAttribute()
			if !ok {
				return nil, false
			}
			attributes = append(attributes, attr)
		case isIdentStart(r):
			attr, ok := p.parseAttribute()
			if !ok {
				return nil, false
			}
			attributes = append(attributes, attr)
		default:
			return nil, false
		}
	}
}

// isTypeParameterList reports whether the name is followed by the 'extends' keyword of a type parameter list (<T extends X>).
func (p *parser) isTypeParameterList(name ast.Node) bool {
	if _, ok := name.(*ast.Identifier); !ok {
		return false
	}
	index := p.i
	defer func() {
		p.i = index
	}()

	p.eatSpaceNewlineComment()
	if p.i+7 >= p.len || string(p.s[p.i:p.i+7]) != "extends" || !isSpace(p.s[p.i+7]) {
		return false
	}
	p.i += 7
	p.eatSpaceNewlineComment()
	return p.i < p.len && p.s[p.i] != '=' && p.s[p.i] != '>' && p.s[p.i] != '/'
}

// parseElementName parses an identifier, a namespaced name (ns:name) or a member expression (A.B.C, this.A).
func (p *parser) parseElementName() (ast.Node, bool) {
	if p.i >= p.len || !isIdentStart(p.s[p.i]) {
		return nil, false
	}
	start := p.i
	first := p.parseMarkupIdentifier(true)

	if p.i+1 < p.len && p.s[p.i] == ':' && isIdentStart(p.s[p.i+1]) {
		p.i++
		name := p.parseMarkupIdentifier(true)
		return &ast.NamespacedName{
			NodeBase:  ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
			Namespace: first,
			Name:      name,
		}, true
	}

	var name ast.Node = first
	if first.Name == "this" {
		name = &ast.ThisExpression{NodeBase: first.NodeBase}
	}

	for p.i < p.len && p.s[p.i] == '.' {
		p.i++
		if p.i >= p.len || !isIdentStart(p.s[p.i]) {
			return nil, false
		}
		property := p.parseMarkupIdentifier(false)
		name = &ast.MemberExpression{
			NodeBase: ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
			Object:   name,
			Property: property,
		}
	}

	return name, true
}

func (p *parser) parseMarkupIdentifier(allowDash bool) *ast.Identifier {
	start := p.i
	p.i++
	for p.i < p.len && (isIdentChar(p.s[p.i]) || (allowDash && p.s[p.i] == '-')) {
		p.i++
	}
	return &ast.Identifier{
		NodeBase: ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
		Name:     string(p.s[start:p.i]),
	}
}

func (p *parser) parseAttribute() (*ast.Attribute, bool) {
	start := p.i

	var name ast.Node = p.parseMarkupIdentifier(true)

	if p.i+1 < p.len && p.s[p.i] == ':' && isIdentStart(p.s[p.i+1]) {
		p.i++
		local := p.parseMarkupIdentifier(true)
		name = &ast.NamespacedName{
			NodeBase:  ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
			Namespace: name.(*ast.Identifier),
			Name:      local,
		}
	}

	nameEnd := p.i
	p.eatSpaceNewlineComment()

	if p.i >= p.len || p.s[p.i] != '=' {
		return &ast.Attribute{
			NodeBase: ast.NodeBase{Span: NodeSpan{Start: start, End: nameEnd}},
			Name:     name,
		}, true
	}

	p.i++ //'='
	p.eatSpaceNewlineComment()
	if p.i >= p.len {
		return nil, false
	}

	var value ast.Node

	switch p.s[p.i] {
	case '"', '\'':
		str, ok := p.parseMarkupString()
		if !ok {
			return nil, false
		}
		value = str
	case '{':
		container, ok := p.parseAttributeExpressionContainer()
		if !ok {
			return nil, false
		}
		value = container
	case '<':
		if !p.isMarkupStart() {
			return nil, false
		}
		markup, ok := p.tryParseMarkup()
		if !ok {
			return nil, false
		}
		value = markup
	default:
		return nil, false
	}

	return &ast.Attribute{
		NodeBase: ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
		Name:     name,
		Value:    value,
	}, true
}

// parseMarkupString parses a quoted attribute value, markup strings have no escape sequences.
func (p *parser) parseMarkupString() (*ast.StringLiteral, bool) {
	start := p.i
	quote := p.s[p.i]
	p.i++

	for p.i < p.len && p.s[p.i] != quote {
		p.i++
	}
	if p.i >= p.len {
		return nil, false
	}
	p.i++

	return &ast.StringLiteral{
		NodeBase: ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
		Value:    string(p.s[start+1 : p.i-1]),
		Raw:      string(p.s[start:p.i]),
	}, true
}

func (p *parser) parseAttributeExpressionContainer() (*ast.ExpressionContainer, bool) {
	container := p.parseExpressionContainer()
	if container.Err != nil {
		return nil, false
	}
	return container, true
}

func (p *parser) parseSpreadAttribute() (*ast.SpreadAttribute, bool) {
	start := p.i
	p.i++ //'{'

	p.eatSpaceNewlineComment()
	if p.i+3 > p.len || string(p.s[p.i:p.i+3]) != "..." {
		return nil, false
	}
	p.i += 3

	expr := p.parseExpressionUntilClosingBrace()
	if expr == nil || p.i >= p.len || p.s[p.i] != '}' {
		return nil, false
	}
	p.i++

	return &ast.SpreadAttribute{
		NodeBase:   ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}},
		Expression: expr,
	}, true
}

// parseExpressionUntilClosingBrace parses code until the closing brace of an expression container,
// nil is returned if the code is only made of whitespace and comments.
func (p *parser) parseExpressionUntilClosingBrace() *ast.Expression {
	builder := &partsBuilder{rawStart: p.i}
	region := p.parseCode(builder, '}', false)

	if !region.significant {
		return nil
	}

	parts := builder.finish(p, p.i)
	span := NodeSpan{Start: region.sigStart, End: region.sigEnd}

	return &ast.Expression{
		NodeBase: ast.NodeBase{Span: span},
		Parts:    p.trimParts(parts, span),
	}
}

// trimParts removes the raw code outside of span (leading and trailing whitespace and comments).
func (p *parser) trimParts(parts []ast.Node, span NodeSpan) []ast.Node {
	var trimmed []ast.Node

	for _, part := range parts {
		raw, ok := part.(*ast.RawCode)
		if !ok {
			trimmed = append(trimmed, part)
			continue
		}

		rawSpan := raw.Span
		rawSpan.Start = max(rawSpan.Start, span.Start)
		rawSpan.End = min(rawSpan.End, span.End)

		if rawSpan.End <= rawSpan.Start {
			continue
		}
		if rawSpan == raw.Span {
			trimmed = append(trimmed, raw)
			continue
		}
		trimmed = append(trimmed, &ast.RawCode{
			NodeBase: ast.NodeBase{Span: rawSpan},
			Raw:      string(p.s[rawSpan.Start:rawSpan.End]),
		})
	}

	return trimmed
}

// parseMarkupChildren parses the children of an element (openingName is not nil) or a fragment and
// the closing tag.
func (p *parser) parseMarkupChildren(openingName ast.Node) (children []ast.Node, closingName ast.Node, parsingErr *sourcecode.ParsingError) {
	p.panicIfContextDone()

	textStart := int32(-1)

	flushText := func(end int32) {
		if textStart >= 0 && end > textStart {
			children = append(children, &ast.Text{
				NodeBase: ast.NodeBase{Span: NodeSpan{Start: textStart, End: end}},
				Raw:      string(p.s[textStart:end]),
			})
		}
		textStart = -1
	}

	for {
		p.panicIfContextDone()

		if p.i >= p.len {
			flushText(p.i)
			msg := UNTERMINATED_ELEMENT
			if openingName == nil {
				msg = UNTERMINATED_FRAGMENT
			}
			parsingErr = p.addError(sourcecode.UnterminatedConstruct, msg, NodeSpan{Start: p.i, End: p.i})
			return
		}

		switch p.s[p.i] {
		case '<':
			if p.i+1 < p.len && p.s[p.i+1] == '/' {
				flushText(p.i)
				closingName, parsingErr = p.parseClosingTag(openingName)
				return
			}

			if p.isMarkupStart() {
				childStart := p.i
				child, ok := p.tryParseMarkup()
				if ok {
					flushText(childStart)
					children = append(children, child)
					continue
				}
				p.i = childStart
			}

			p.addError(sourcecode.InvalidMarkup, UNEXPECTED_LESS_THAN_IN_MARKUP, NodeSpan{Start: p.i, End: p.i + 1})
			if textStart < 0 {
				textStart = p.i
			}
			p.i++
		case '{':
			flushText(p.i)
			children = append(children, p.parseExpressionContainer())
		default:
			if textStart < 0 {
				textStart = p.i
			}
			p.i++
		}
	}
}

func (p *parser) parseClosingTag(openingName ast.Node) (closingName ast.Node, parsingErr *sourcecode.ParsingError) {
	start := p.i
	p.i += 2 //'</'
	p.eatSpaceNewlineComment()

	if openingName != nil {
		name, ok := p.parseElementName()
		if !ok {
			parsingErr = p.addError(sourcecode.InvalidMarkup, INVALID_CLOSING_TAG_NAME, NodeSpan{Start: start, End: p.i})
		} else {
			closingName = name
			expected := ast.ElementName(openingName)
			actual := ast.ElementName(name)
			if expected != actual {
				parsingErr = p.addError(sourcecode.InvalidMarkup, fmtUnexpectedClosingTag(expected, actual), NodeSpan{Start: start, End: p.i})
			}
		}
		p.eatSpaceNewlineComment()
	}

	if p.i >= p.len || p.s[p.i] != '>' {
		err := p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_CLOSING_TAG, NodeSpan{Start: start, End: p.i})
		if parsingErr == nil {
			parsingErr = err
		}
		return
	}
	p.i++
	return
}

// parseExpressionContainer parses {expr}, {...expr} or {} (whitespace and comments only).
func (p *parser) parseExpressionContainer() *ast.ExpressionContainer {
	start := p.i
	p.i++ //'{'

	index := p.i
	p.eatSpaceNewlineComment()

	spread := false
	if p.i+3 <= p.len && string(p.s[p.i:p.i+3]) == "..." {
		spread = true
		p.i += 3
	} else {
		p.i = index
	}

	expr := p.parseExpressionUntilClosingBrace()

	var parsingErr *sourcecode.ParsingError
	if p.i < p.len && p.s[p.i] == '}' {
		p.i++
	} else {
		parsingErr = p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_EXPR_CONTAINER, NodeSpan{Start: start, End: p.i})
	}

	return &ast.ExpressionContainer{
		NodeBase:   ast.NodeBase{Span: NodeSpan{Start: start, End: p.i}, Err: parsingErr},
		Expression: expr,
		Spread:     spread,
	}
}
