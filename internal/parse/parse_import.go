package parse

import "github.com/inoxlang/islands/internal/ast"

// parseImportDeclaration parses an import declaration whose 'import' keyword has just been scanned and declares
// its bindings in the module scope. The last token of the declaration is returned, the optional ';' is not consumed.
func (p *parser) parseImportDeclaration(importKeyword token) (last token) {
	p.panicIfContextDone()

	last = importKeyword
	next := func() token {
		tok := p.nextToken(false)
		if tok.kind != noToken {
			last = tok
		}
		return tok
	}

	type binding struct {
		local    token
		imported string
	}
	var bindings []binding

	tok := next()

	if tok.kind == stringToken {
		//import "module"
		return
	}

	if tok.isIdent("type") {
		peeked := p.peekToken()
		if peeked.is("{") || peeked.is("*") || (peeked.kind == identToken && peeked.text != "from") {
			tok = next()
		}
	}

	//default binding or import-equals declaration
	if tok.kind == identToken {
		local := tok
		tok = next()
		if tok.is("=") {
			p.parseImportEqualsDeclaration(local, next)
			return
		}
		bindings = append(bindings, binding{local, "default"})
		if tok.is(",") {
			tok = next()
		}
	}

	switch {
	case tok.is("*"):
		if !next().isIdent("as") {
			return
		}
		local := next()
		if local.kind != identToken {
			return
		}
		bindings = append(bindings, binding{local, "*"})
		tok = next()
	case tok.is("{"):
	loop:
		for {
			tok = next()
			switch {
			case tok.is("}"):
				break loop
			case tok.kind == noToken:
				return
			case tok.is(","):
				continue
			}

			if tok.isIdent("type") {
				peeked := p.peekToken()
				if peeked.kind == stringToken || (peeked.kind == identToken && peeked.text != "as") {
					tok = next()
				}
			}

			if tok.kind != identToken && tok.kind != stringToken {
				return
			}
			imported := tok
			local := tok
			if p.peekToken().isIdent("as") {
				next()
				local = next()
			}
			if local.kind != identToken {
				return
			}
			bindings = append(bindings, binding{local, imported.text})
		}
		tok = next()
	}

	if !tok.isIdent("from") {
		return
	}

	specifier := next()
	if specifier.kind != stringToken {
		return
	}

	for _, b := range bindings {
		p.scope.Declare(&ast.Declaration{
			Name:                b.local.text,
			Kind:                ast.ImportBinding,
			Span:                b.local.span,
			ModuleSpecifier:     specifier.text,
			HasLiteralSpecifier: true,
			ImportedName:        b.imported,
		})
	}
	return
}

// parseImportEqualsDeclaration parses the right side of 'import x = require("module")' or 'import x = A.B'.
func (p *parser) parseImportEqualsDeclaration(local token, next func() token) {
	decl := &ast.Declaration{
		Name: local.text,
		Kind: ast.ImportEqualsBinding,
		Span: local.span,
	}

	tok := next()
	if tok.isIdent("require") && p.peekToken().is("(") {
		next()
		specifier := next()
		if specifier.kind == stringToken && p.peekToken().is(")") {
			next()
			decl.ModuleSpecifier = specifier.text
			decl.HasLiteralSpecifier = true
		}
		p.scope.Declare(decl)
		return
	}

	//entity name
	for tok.kind == identToken && p.peekToken().is(".") {
		next()
		tok = next()
	}
	p.scope.Declare(decl)
}
