package ast

type DeclarationKind uint8

const (
	ImportBinding       DeclarationKind = iota + 1 //import x from "m", import {x} from "m", import * as x from "m"
	ImportEqualsBinding                            //import x = require("m"), import x = A.B
	VariableBinding                                //const, let, var
	FunctionBinding
	ClassBinding
	ParameterBinding
	CatchBinding
	EnumBinding
	NamespaceBinding
	TypeBinding //type aliases and interfaces
)

func (k DeclarationKind) String() string {
	switch k {
	case ImportBinding:
		return "import"
	case ImportEqualsBinding:
		return "import-equals"
	case VariableBinding:
		return "variable"
	case FunctionBinding:
		return "function"
	case ClassBinding:
		return "class"
	case ParameterBinding:
		return "parameter"
	case CatchBinding:
		return "catch"
	case EnumBinding:
		return "enum"
	case NamespaceBinding:
		return "namespace"
	case TypeBinding:
		return "type"
	}
	return "unknown"
}

// A Declaration binds a name in a scope.
type Declaration struct {
	Name string
	Kind DeclarationKind
	Span NodeSpan //span of the bound identifier

	//import bindings only

	ModuleSpecifier     string
	HasLiteralSpecifier bool   //false for import x = A.B
	ImportedName        string //"default", "*" or the name of the imported binding
}

// A Scope is a region of a chunk in which names are bound: the module, a block, a function
// (including its parameters) or a for statement's head.
type Scope struct {
	Span         NodeSpan
	Parent       *Scope
	Children     []*Scope
	Declarations []*Declaration
	IsFunction   bool
}

func NewModuleScope(span NodeSpan) *Scope {
	return &Scope{Span: span, IsFunction: true}
}

func (s *Scope) NewChild(start int32, isFunction bool) *Scope {
	child := &Scope{
		Span:       NodeSpan{Start: start, End: -1},
		Parent:     s,
		IsFunction: isFunction,
	}
	s.Children = append(s.Children, child)
	return child
}

func (s *Scope) Declare(decl *Declaration) {
	s.Declarations = append(s.Declarations, decl)
}

func (s *Scope) IsModuleScope() bool {
	return s.Parent == nil
}

// ClosestFunctionScope returns the closest function scope, the module scope is a function scope.
func (s *Scope) ClosestFunctionScope() *Scope {
	scope := s
	for !scope.IsFunction && scope.Parent != nil {
		scope = scope.Parent
	}
	return scope
}

func (s *Scope) contains(pos int32) bool {
	return pos >= s.Span.Start && (s.Span.End < 0 || pos < s.Span.End)
}

// Innermost returns the innermost scope containing pos, s is returned if no descendant contains pos.
func (s *Scope) Innermost(pos int32) *Scope {
	current := s

outer:
	for {
		var best *Scope
		for _, child := range current.Children {
			if !child.contains(pos) {
				continue
			}
			if best == nil || child.Span.Start > best.Span.Start {
				best = child
			}
		}
		if best == nil {
			break outer
		}
		current = best
	}
	return current
}

// OwnDeclaration returns the declaration of name in s, parent scopes are not searched.
func (s *Scope) OwnDeclaration(name string) (*Declaration, bool) {
	for _, decl := range s.Declarations {
		if decl.Name == name {
			return decl, true
		}
	}
	return nil, false
}

// Lookup returns the declaration visible at pos for name, inner declarations shadow outer ones.
func (s *Scope) Lookup(name string, pos int32) (*Declaration, bool) {
	for scope := s.Innermost(pos); scope != nil; scope = scope.Parent {
		if decl, ok := scope.OwnDeclaration(name); ok {
			return decl, true
		}
	}
	return nil, false
}
