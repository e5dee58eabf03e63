package parse

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/sourcecode"
)

func MustParseChunk(str string, opts ...ParserOptions) (result *ast.Chunk) {
	n, err := ParseChunk(str, "<chunk>", opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseChunk parses a TSX/JSX/TS/JS file, resultErr is either a non-syntax error or an aggregation of syntax
// errors (*sourcecode.ParsingErrorAggregation). result and resultErr can be both non-nil at the same time
// because the parser recovers from syntax errors.
func ParseChunk(str string, fpath string, opts ...ParserOptions) (result *ast.Chunk, resultErr error) {

	if int32(len(str)) > MAX_CHUNK_BYTE_LEN {
		return nil, &sourcecode.ParsingError{
			Kind:    sourcecode.UnspecifiedParsingError,
			Message: fmt.Sprintf("chunk's code is too long (%d bytes)", len(str)),
		}
	}

	//check that the passed context is not done.
	if len(opts) > 0 {
		ctx := opts[0].ParentContext
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
	}

	runes := []rune(str)
	p := newParser(runes, opts...)
	defer p.cancel()

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		result = nil
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			resultErr = err
			return
		}
		resultErr = fmt.Errorf("%w: %s", err, debug.Stack())
	}()

	source := sourcecode.NewParsedSource(fpath, runes)
	result = p.parseChunk(source)

	if aggregation := sourcecode.AggregateErrors(source, p.errors, p.errorSpans); aggregation != nil {
		resultErr = aggregation
	}
	return
}

func (p *parser) parseChunk(source *sourcecode.ParsedSource) *ast.Chunk {
	p.panicIfContextDone()

	chunkSpan := NodeSpan{Start: 0, End: p.len}
	moduleScope := ast.NewModuleScope(chunkSpan)
	p.scope = moduleScope

	builder := &partsBuilder{rawStart: 0}
	p.parseCode(builder, 0, true)

	return &ast.Chunk{
		NodeBase: ast.NodeBase{Span: chunkSpan},
		Parts:    builder.finish(p, p.len),
		Scope:    moduleScope,
		Source:   source,
	}
}

// A partsBuilder accumulates the parts of a chunk or an expression: raw code between markup nodes.
type partsBuilder struct {
	parts    []ast.Node
	rawStart int32
}

func (b *partsBuilder) addMarkup(p *parser, node ast.Node) {
	span := node.Base().Span
	b.flushRaw(p, span.Start)
	b.parts = append(b.parts, node)
	b.rawStart = span.End
}

func (b *partsBuilder) flushRaw(p *parser, end int32) {
	if end > b.rawStart {
		b.parts = append(b.parts, &ast.RawCode{
			NodeBase: ast.NodeBase{Span: NodeSpan{Start: b.rawStart, End: end}},
			Raw:      string(p.s[b.rawStart:end]),
		})
	}
	b.rawStart = end
}

func (b *partsBuilder) finish(p *parser, end int32) []ast.Node {
	b.flushRaw(p, end)
	return b.parts
}
