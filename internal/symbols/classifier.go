package symbols

import "github.com/inoxlang/islands/internal/ast"

// A ScopeResolver classifies identifiers by looking up their name in the innermost scope enclosing
// their position, inner declarations shadow outer ones.
type ScopeResolver struct {
	scope *ast.Scope
}

func NewScopeResolver(chunk *ast.Chunk) *ScopeResolver {
	return &ScopeResolver{scope: chunk.Scope}
}

func (r *ScopeResolver) Classify(ident *ast.Identifier) Origin {
	if ident == nil {
		return Origin{Kind: UnknownOrigin}
	}
	if r.scope == nil {
		return Origin{Kind: LiteralOrigin}
	}

	decl, _ := r.scope.Lookup(ident.Name, ident.Span.Start)
	return classifyDeclaration(decl)
}

// An ImportTable classifies identifiers using the import bindings of a module only: local declarations
// are ignored and identifiers that are not imported are literals.
type ImportTable struct {
	imports map[string]*ast.Declaration
}

func NewImportTable(chunk *ast.Chunk) *ImportTable {
	table := &ImportTable{imports: map[string]*ast.Declaration{}}

	if chunk.Scope == nil {
		return table
	}

	for _, decl := range chunk.Scope.Declarations {
		switch decl.Kind {
		case ast.ImportBinding, ast.ImportEqualsBinding:
			if _, ok := table.imports[decl.Name]; !ok {
				table.imports[decl.Name] = decl
			}
		}
	}
	return table
}

// Specifier returns the module specifier of the import binding name.
func (t *ImportTable) Specifier(name string) (string, bool) {
	decl, ok := t.imports[name]
	if !ok || !decl.HasLiteralSpecifier {
		return "", false
	}
	return decl.ModuleSpecifier, true
}

func (t *ImportTable) Classify(ident *ast.Identifier) Origin {
	if ident == nil {
		return Origin{Kind: UnknownOrigin}
	}
	return classifyDeclaration(t.imports[ident.Name])
}
