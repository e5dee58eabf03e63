package parse

import (
	"context"
	"time"

	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/sourcecode"
)

const (
	DEFAULT_TIMEOUT       = 20 * time.Second
	DEFAULT_NO_CHECK_FUEL = 100

	MAX_CHUNK_BYTE_LEN = 1 << 24
)

// A parser parses a single TSX/JSX/TS/JS chunk, it can recover from errors.
// Note that there is no lexer: tokens are scanned on demand and JS/TS code is kept as raw code.
type parser struct {
	s   []rune //chunk's code
	i   int32  //rune index
	len int32

	scope    *ast.Scope //current scope
	noMarkup bool

	errors     []*sourcecode.ParsingError
	errorSpans []NodeSpan

	noCheckFuel          int //-1 if infinite fuel
	remainingNoCheckFuel int //refueled after each context check.

	context context.Context
	cancel  context.CancelFunc
}

type NodeSpan = sourcecode.NodeSpan

type ParserOptions struct {
	//The context is checked each time the 'no check fuel' is empty.
	//The 'no check fuel' defauls to DEFAULT_NO_CHECK_FUEL if NoCheckFuel is <= 0.
	NoCheckFuel int

	//The default context is context.Background().
	ParentContext context.Context

	//Defaults to DEFAULT_TIMEOUT.
	Timeout time.Duration

	//If true '<' never starts an element (.ts and .js files).
	NoMarkup bool
}

func newParser(s []rune, opts ...ParserOptions) *parser {
	p := &parser{
		s:                    s,
		i:                    0,
		len:                  int32(len(s)),
		noCheckFuel:          -1,
		remainingNoCheckFuel: -1,
	}

	var (
		timeout     time.Duration   = DEFAULT_TIMEOUT
		noCheckFuel                 = DEFAULT_NO_CHECK_FUEL
		ctx         context.Context = context.Background()
	)

	if len(opts) > 0 {
		opt := opts[0]
		if opt.ParentContext != nil {
			ctx = opt.ParentContext
		}
		if opt.Timeout > 0 {
			timeout = opt.Timeout
		}
		if opt.NoCheckFuel > 0 {
			noCheckFuel = opt.NoCheckFuel
		}
		p.noMarkup = opt.NoMarkup
	}

	p.context, p.cancel = context.WithTimeout(ctx, timeout)
	p.noCheckFuel = noCheckFuel
	p.remainingNoCheckFuel = noCheckFuel

	return p
}

// panicIfContextDone checks whether the context is done each time the 'no check fuel' is empty.
func (p *parser) panicIfContextDone() {
	if p.noCheckFuel == -1 {
		return
	}

	p.remainingNoCheckFuel--

	if p.remainingNoCheckFuel == 0 {
		p.remainingNoCheckFuel = p.noCheckFuel
		if p.context != nil {
			select {
			case <-p.context.Done():
				panic(p.context.Err())
			default:
				break
			}
		}
	}
}

func (p *parser) addError(kind sourcecode.ParsingErrorKind, message string, span NodeSpan) *sourcecode.ParsingError {
	err := &sourcecode.ParsingError{Kind: kind, Message: message}
	p.errors = append(p.errors, err)
	p.errorSpans = append(p.errorSpans, span)
	return err
}

// A parserSnapshot allows the parser to backtrack, scopes and declarations created after the snapshot are removed.
type parserSnapshot struct {
	i                     int32
	errorCount            int
	scope                 *ast.Scope
	childScopeCount       int
	declarationCount      int
	functionScopeDeclsLen int
}

func (p *parser) snapshot() parserSnapshot {
	return parserSnapshot{
		i:                     p.i,
		errorCount:            len(p.errors),
		scope:                 p.scope,
		childScopeCount:       len(p.scope.Children),
		declarationCount:      len(p.scope.Declarations),
		functionScopeDeclsLen: len(p.scope.ClosestFunctionScope().Declarations),
	}
}

func (p *parser) restore(snapshot parserSnapshot) {
	p.i = snapshot.i
	p.errors = p.errors[:snapshot.errorCount]
	p.errorSpans = p.errorSpans[:snapshot.errorCount]
	p.scope = snapshot.scope
	p.scope.Children = p.scope.Children[:snapshot.childScopeCount]
	p.scope.Declarations = p.scope.Declarations[:snapshot.declarationCount]

	fnScope := p.scope.ClosestFunctionScope()
	fnScope.Declarations = fnScope.Declarations[:snapshot.functionScopeDeclsLen]
}
