package parse

import "github.com/inoxlang/islands/internal/sourcecode"

// eatSpaceNewlineComment skips whitespace, line comments and block comments, it returns true if a line
// terminator was skipped.
func (p *parser) eatSpaceNewlineComment() (newline bool) {
	p.panicIfContextDone()

	for p.i < p.len {
		r := p.s[p.i]
		switch {
		case isSpace(r):
			if isLineTerminator(r) {
				newline = true
			}
			p.i++
		case r == '/' && p.i+1 < p.len && p.s[p.i+1] == '/':
			for p.i < p.len && !isLineTerminator(p.s[p.i]) {
				p.i++
			}
		case r == '/' && p.i+1 < p.len && p.s[p.i+1] == '*':
			start := p.i
			p.i += 2
			terminated := false
			for p.i < p.len {
				if p.s[p.i] == '*' && p.i+1 < p.len && p.s[p.i+1] == '/' {
					p.i += 2
					terminated = true
					break
				}
				if isLineTerminator(p.s[p.i]) {
					newline = true
				}
				p.i++
			}
			if !terminated {
				p.addError(sourcecode.UnterminatedConstruct, UNTERMINATED_BLOCK_COMMENT, NodeSpan{Start: start, End: p.i})
			}
		default:
			return
		}
	}
	return
}
