package symbols

import "github.com/inoxlang/islands/internal/ast"

// An OriginKind tells where the declaration of a tag identifier comes from.
type OriginKind uint8

const (
	UnknownOrigin  OriginKind = iota //a declaration exists but it is not handled
	LiteralOrigin                    //no declaration: built-in markup element (div, span, ...)
	ImportOrigin                     //import binding with a literal module specifier
	VariableOrigin                   //local variable, function or class declaration
)

func (k OriginKind) String() string {
	switch k {
	case LiteralOrigin:
		return "literal"
	case ImportOrigin:
		return "import"
	case VariableOrigin:
		return "variable"
	}
	return "unknown"
}

type Origin struct {
	Kind            OriginKind
	ModuleSpecifier string //only set for import origins
}

// IsTransformable returns true if elements whose tag has this origin can be islands.
func (o Origin) IsTransformable() bool {
	return o.Kind == ImportOrigin || o.Kind == VariableOrigin
}

func (o Origin) String() string {
	if o.Kind == ImportOrigin {
		return "import(" + o.ModuleSpecifier + ")"
	}
	return o.Kind.String()
}

// A Classifier returns the origin of an identifier. A nil identifier (this-based tag) has an unknown origin.
// Implementations are read-only and safe for concurrent use.
type Classifier interface {
	Classify(ident *ast.Identifier) Origin
}

// classifyDeclaration returns the origin of an identifier bound by decl (nil if not bound).
func classifyDeclaration(decl *ast.Declaration) Origin {
	if decl == nil {
		return Origin{Kind: LiteralOrigin}
	}

	switch decl.Kind {
	case ast.ImportBinding, ast.ImportEqualsBinding:
		if !decl.HasLiteralSpecifier {
			return Origin{Kind: UnknownOrigin}
		}
		return Origin{Kind: ImportOrigin, ModuleSpecifier: decl.ModuleSpecifier}
	case ast.VariableBinding, ast.FunctionBinding, ast.ClassBinding:
		return Origin{Kind: VariableOrigin}
	}
	return Origin{Kind: UnknownOrigin}
}
