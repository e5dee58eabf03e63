package parse

import (
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/sourcecode"
)

type frameKind uint8

const (
	plainFrame    frameKind = iota
	parenFrame              //parenthesized expression or parameter list
	controlFrame            //if (...), while (...), switch (...)
	catchFrame              //catch (...)
	forHeadFrame            //for (...)
	patternFrame            //destructuring pattern of a variable declaration
	blockFrame
)

// A frame is an open bracket of a code region.
type frame struct {
	kind         frameKind
	open         string
	start        int32
	functionLike bool //parenFrame: the group is a parameter list if it is followed by '{'

	recording bool
	tokens    []token //tokens between the brackets, only recorded if recording is true

	scope    *ast.Scope //scope opened by the frame
	restore  *ast.Scope //current scope after the frame is closed
	forScope *ast.Scope //scope of the for statement whose body is the block
}

type pendingFunction struct {
	start      int32
	params     []token
	kind       ast.DeclarationKind
	isFunction bool
}

// An arrowScope is the scope of an arrow function with an expression body, it ends at the first ',' or ';' at
// the same bracket depth or at the closing bracket of the enclosing frame.
type arrowScope struct {
	scope   *ast.Scope
	depth   int
	restore *ast.Scope
}

type declState uint8

const (
	declNone declState = iota
	declExpectBinding
	declAfterBinding
	declTypeAnnotation
	declInitializer
)

// A codeRegion is JS/TS code parsed by parseCode, markup found in the region is added to builder.
type codeRegion struct {
	p          *parser
	builder    *partsBuilder
	terminator rune
	top        bool
	startScope *ast.Scope

	frames []*frame
	arrows []arrowScope
	prev   token //previous significant token

	significant      bool
	sigStart, sigEnd int32

	//variable declarations
	decl       declState
	declDepth  int
	isVar      bool
	angleDepth int

	pendingName     ast.DeclarationKind //kind of the declaration named by the next identifier
	functionKeyword bool

	closedParen    *frame //last closed parenthesized group, it may be a parameter list
	inReturnType   bool
	pendingBody    *pendingFunction //arrow function whose block body is next
	closedForScope *ast.Scope
}

// parseCode parses JS/TS code until terminator (at bracket depth 0) or the end of the chunk. Markup nodes are
// added to builder and declarations are added to the scope tree. The terminator is not consumed.
func (p *parser) parseCode(builder *partsBuilder, terminator rune, top bool) *codeRegion {
	p.panicIfContextDone()

	r := &codeRegion{
		p:          p,
		builder:    builder,
		terminator: terminator,
		top:        top,
		startScope: p.scope,
	}

	for {
		p.panicIfContextDone()

		newline := p.eatSpaceNewlineComment()
		if p.i >= p.len {
			break
		}
		c := p.s[p.i]
		if len(r.frames) == 0 && terminator != 0 && c == terminator {
			break
		}

		switch {
		case c == '<' && r.isExpressionPosition() && p.isMarkupStart():
			if node, ok := p.tryParseMarkup(); ok {
				builder.addMarkup(p, node)
				r.onToken(token{kind: markupToken, span: node.Base().Span, newlineBefore: newline})
				continue
			}
		case c == '`':
			start := p.i
			p.parseTemplate(builder)
			r.onToken(token{kind: templateToken, span: NodeSpan{Start: start, End: p.i}, newlineBefore: newline})
			continue
		}

		tok := p.scanToken(r.isExpressionPosition())
		tok.newlineBefore = newline

		if tok.isIdent("import") && r.top && len(r.frames) == 0 && p.scope.IsModuleScope() && !r.prev.is(".") {
			next := p.peekToken()
			if !next.is("(") && !next.is(".") {
				r.markSignificant(tok)
				r.prev = p.parseImportDeclaration(tok)
				continue
			}
		}

		r.onToken(tok)
	}

	r.finish()
	return r
}

func (r *codeRegion) isExpressionPosition() bool {
	switch r.prev.kind {
	case noToken:
		return true
	case identToken:
		return keywordsBeforeExpression[r.prev.text]
	case punctToken:
		switch r.prev.text {
		case ")", "]", "++", "--":
			return false
		}
		return true
	}
	return false
}

func (r *codeRegion) markSignificant(tok token) {
	if !r.significant {
		r.significant = true
		r.sigStart = tok.span.Start
	}
	r.sigEnd = tok.span.End
}

func (r *codeRegion) record(tok token) {
	for _, f := range r.frames {
		if f.recording {
			f.tokens = append(f.tokens, tok)
		}
	}
}

func (r *codeRegion) onToken(tok token) {
	r.markSignificant(tok)

	switch {
	case tok.isOpeningBracket():
		r.openBracket(tok)
	case tok.isClosingBracket():
		r.closeBracket(tok)
	default:
		r.record(tok)
		r.onNonBracketToken(tok)
	}
	r.prev = tok
}

func (r *codeRegion) onNonBracketToken(tok token) {
	depth := len(r.frames)

	if tok.is(",") || tok.is(";") {
		r.closeArrows(depth, tok.span.Start)
	}

	if r.pendingName != 0 {
		kind := r.pendingName
		r.pendingName = 0

		switch {
		case tok.is("*") && kind == ast.FunctionBinding:
			r.pendingName = kind
			return
		case tok.kind == identToken && !reservedWords[tok.text] && tok.text != "implements":
			r.declare(tok, kind)
			return
		}
	}

	if tok.is("=>") {
		r.onArrow()
		return
	}

	if r.closedParen != nil {
		switch {
		case tok.is(":") && !r.inReturnType && r.prev.is(")"):
			r.inReturnType = true
		case r.inReturnType && isTypeAnnotationToken(tok):
		default:
			r.closedParen = nil
			r.inReturnType = false
		}
	}
	r.closedForScope = nil

	r.updateDeclarationState(tok, depth)

	if tok.kind == identToken && !r.prev.is(".") && !r.prev.is("?.") {
		r.onKeyword(tok, depth)
	}
}

func isTypeAnnotationToken(tok token) bool {
	switch tok.kind {
	case identToken, stringToken, numberToken, templateToken:
		return true
	case punctToken:
		switch tok.text {
		case ".", "<", ">", ">>", ">>>", "|", "&", ",", "?", ":":
			return true
		}
	}
	return false
}

func (r *codeRegion) onKeyword(tok token, depth int) {
	p := r.p

	if tok.newlineBefore && statementKeywords[tok.text] {
		r.closeArrows(depth, tok.span.Start)
	}

	switch tok.text {
	case "const", "let", "var":
		r.decl = declExpectBinding
		r.declDepth = depth
		r.isVar = tok.text == "var"
	case "function":
		r.pendingName = ast.FunctionBinding
		r.functionKeyword = true
	case "class":
		r.pendingName = ast.ClassBinding
	case "enum":
		r.pendingName = ast.EnumBinding
	case "namespace", "module":
		if p.peekToken().kind == identToken {
			r.pendingName = ast.NamespaceBinding
		}
	case "interface":
		if p.peekToken().kind == identToken {
			r.pendingName = ast.TypeBinding
		}
	case "type":
		if p.isTypeAliasStart() {
			r.pendingName = ast.TypeBinding
		}
	}
}

var statementKeywords = map[string]bool{
	"const": true, "let": true, "var": true, "function": true, "class": true, "export": true,
	"if": true, "for": true, "while": true, "return": true, "import": true, "switch": true, "try": true,
}

// continuationKeywords can continue an expression on a new line.
var continuationKeywords = map[string]bool{
	"instanceof": true, "in": true, "of": true, "as": true, "satisfies": true,
}

func (r *codeRegion) updateDeclarationState(tok token, depth int) {
	if r.decl == declNone || depth != r.declDepth {
		return
	}

	switch r.decl {
	case declExpectBinding:
		switch {
		case tok.isIdent("enum"):
			r.decl = declNone
			r.pendingName = ast.EnumBinding
		case tok.kind == identToken && !reservedWords[tok.text]:
			r.declareVariable(tok)
			r.decl = declAfterBinding
		default:
			r.decl = declNone
		}
	case declAfterBinding:
		switch {
		case tok.is("="):
			r.decl = declInitializer
		case tok.is(","):
			r.decl = declExpectBinding
		case tok.is(":"):
			r.decl = declTypeAnnotation
			r.angleDepth = 0
		case tok.is("!"):
		default:
			r.decl = declNone
		}
	case declTypeAnnotation:
		switch {
		case tok.is("<"):
			r.angleDepth++
		case tok.is(">"):
			r.angleDepth--
		case tok.is(">>"):
			r.angleDepth -= 2
		case tok.is(">>>"):
			r.angleDepth -= 3
		case tok.is("=") && r.angleDepth <= 0:
			r.decl = declInitializer
		case tok.is(",") && r.angleDepth <= 0:
			r.decl = declExpectBinding
		case tok.is(";"):
			r.decl = declNone
		}
	case declInitializer:
		switch {
		case tok.is(","):
			r.decl = declExpectBinding
		case tok.is(";"):
			r.decl = declNone
		case tok.newlineBefore && r.prev.endsOperand() && tok.kind == identToken && !continuationKeywords[tok.text]:
			//automatic semicolon insertion
			r.decl = declNone
		}
	}
}

func (r *codeRegion) onArrow() {
	p := r.p

	var fn *pendingFunction

	switch {
	case r.closedParen != nil && (r.prev.is(")") || r.inReturnType):
		fn = &pendingFunction{
			start:      r.closedParen.start,
			params:     extractParameterBindings(r.closedParen.tokens),
			kind:       ast.ParameterBinding,
			isFunction: true,
		}
	case r.prev.kind == identToken && !reservedWords[r.prev.text]:
		fn = &pendingFunction{
			start:      r.prev.span.Start,
			params:     []token{r.prev},
			kind:       ast.ParameterBinding,
			isFunction: true,
		}
	}

	r.closedParen = nil
	r.inReturnType = false

	if fn == nil {
		return
	}

	if p.peekToken().is("{") {
		r.pendingBody = fn
		return
	}

	scope := p.scope.NewChild(fn.start, true)
	declareParams(scope, fn)
	r.arrows = append(r.arrows, arrowScope{scope: scope, depth: len(r.frames), restore: p.scope})
	p.scope = scope
}

func (r *codeRegion) closeArrows(depth int, end int32) {
	for len(r.arrows) > 0 {
		arrow := r.arrows[len(r.arrows)-1]
		if arrow.depth < depth {
			break
		}
		arrow.scope.Span.End = end
		r.p.scope = arrow.restore
		r.arrows = r.arrows[:len(r.arrows)-1]
	}
}

func (r *codeRegion) openBracket(tok token) {
	p := r.p
	depth := len(r.frames)

	r.record(tok)
	r.pendingName = 0

	forScope := r.closedForScope
	r.closedForScope = nil

	f := &frame{open: tok.text, start: tok.span.Start}

	switch tok.text {
	case "(":
		switch {
		case r.prev.isIdent("for"):
			f.kind = forHeadFrame
			f.scope = p.scope.NewChild(tok.span.Start, false)
			f.restore = p.scope
			p.scope = f.scope
		case r.prev.isIdent("catch"):
			f.kind = catchFrame
			f.recording = true
		case r.prev.kind == identToken && controlKeywords[r.prev.text] && !r.functionKeyword:
			f.kind = controlFrame
		default:
			f.kind = parenFrame
			f.recording = true
			f.functionLike = r.functionKeyword ||
				(r.prev.kind == identToken && !reservedWords[r.prev.text]) ||
				r.prev.is("]") || r.prev.is(">") || r.prev.kind == stringToken
		}
		r.functionKeyword = false
		if r.decl == declExpectBinding && depth == r.declDepth {
			r.decl = declNone
		}
		if !r.inReturnType {
			r.closedParen = nil
		}
	case "[":
		if r.decl == declExpectBinding && depth == r.declDepth {
			f.kind = patternFrame
			f.recording = true
		} else if !r.inReturnType {
			r.closedParen = nil
		}
	case "{":
		if r.decl == declExpectBinding && depth == r.declDepth {
			f.kind = patternFrame
			f.recording = true
			break
		}

		f.kind = blockFrame

		fn := r.pendingBody
		r.pendingBody = nil

		if fn == nil && r.closedParen != nil {
			switch {
			case r.closedParen.kind == catchFrame:
				fn = &pendingFunction{
					start:  r.closedParen.start,
					params: extractParameterBindings(r.closedParen.tokens),
					kind:   ast.CatchBinding,
				}
			case r.closedParen.functionLike:
				fn = &pendingFunction{
					start:      r.closedParen.start,
					params:     extractParameterBindings(r.closedParen.tokens),
					kind:       ast.ParameterBinding,
					isFunction: true,
				}
			}
		}
		r.closedParen = nil
		r.inReturnType = false
		r.functionKeyword = false

		switch {
		case fn != nil:
			f.scope = p.scope.NewChild(fn.start, fn.isFunction)
			declareParams(f.scope, fn)
			f.restore = p.scope
		case forScope != nil:
			f.scope = forScope.NewChild(tok.span.Start, false)
			f.restore = forScope.Parent
			f.forScope = forScope
		default:
			f.scope = p.scope.NewChild(tok.span.Start, false)
			f.restore = p.scope
		}
		p.scope = f.scope
	}

	r.frames = append(r.frames, f)
}

func (r *codeRegion) closeBracket(tok token) {
	p := r.p
	depth := len(r.frames)

	if depth == 0 {
		p.addError(sourcecode.UnbalancedBrackets, UNEXPECTED_CLOSING_BRACKET, tok.span)
		return
	}

	r.closeArrows(depth, tok.span.Start)

	f := r.frames[depth-1]
	if closingBracket(f.open) != tok.text {
		p.addError(sourcecode.UnbalancedBrackets, MISMATCHED_CLOSING_BRACKET, tok.span)
	}
	r.frames = r.frames[:depth-1]
	r.record(tok)

	if f.scope != nil {
		f.scope.Span.End = tok.span.End
		p.scope = f.restore
	}
	if f.forScope != nil {
		f.forScope.Span.End = tok.span.End
	}

	switch f.kind {
	case parenFrame, catchFrame:
		r.closedParen = f
		r.inReturnType = false
	case forHeadFrame:
		r.closedForScope = f.scope
		r.closedParen = nil
	case patternFrame:
		for _, binding := range extractDestructuredBindings(f.open, f.tokens) {
			r.declareVariable(binding)
		}
		r.decl = declAfterBinding
	default:
		if !r.inReturnType {
			r.closedParen = nil
		}
	}

	if r.decl != declNone && len(r.frames) < r.declDepth {
		r.decl = declNone
	}
}

func closingBracket(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	}
	return "}"
}

func (r *codeRegion) finish() {
	p := r.p

	r.closeArrows(0, p.i)

	for i := len(r.frames) - 1; i >= 0; i-- {
		f := r.frames[i]
		p.addError(sourcecode.UnbalancedBrackets, UNTERMINATED_BRACKETED_CODE, NodeSpan{Start: f.start, End: f.start + 1})
		if f.scope != nil {
			f.scope.Span.End = p.i
		}
		if f.forScope != nil {
			f.forScope.Span.End = p.i
		}
	}
	r.frames = nil
	p.scope = r.startScope
}

func (r *codeRegion) declare(tok token, kind ast.DeclarationKind) {
	r.p.scope.Declare(&ast.Declaration{Name: tok.text, Kind: kind, Span: tok.span})
}

func (r *codeRegion) declareVariable(tok token) {
	scope := r.p.scope
	if r.isVar {
		scope = scope.ClosestFunctionScope()
	}
	scope.Declare(&ast.Declaration{Name: tok.text, Kind: ast.VariableBinding, Span: tok.span})
}

func declareParams(scope *ast.Scope, fn *pendingFunction) {
	for _, param := range fn.params {
		scope.Declare(&ast.Declaration{Name: param.text, Kind: fn.kind, Span: param.span})
	}
}

// isTypeAliasStart reports whether the 'type' keyword that has just been scanned starts a type alias.
func (p *parser) isTypeAliasStart() bool {
	index := p.i
	errorCount := len(p.errors)
	defer func() {
		p.i = index
		p.errors = p.errors[:errorCount]
		p.errorSpans = p.errorSpans[:errorCount]
	}()

	name := p.nextToken(false)
	if name.kind != identToken {
		return false
	}
	next := p.nextToken(false)
	return next.is("=") || next.is("<")
}
