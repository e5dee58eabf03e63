package ast

import (
	"strings"

	"github.com/inoxlang/islands/internal/sourcecode"
)

type NodeSpan = sourcecode.NodeSpan

// A Node represents an AST Node, all node types embed NodeBase that implements the Node interface.
// Nodes produced by the parser are never mutated, transformations create new nodes.
type Node interface {
	Base() NodeBase
	BasePtr() *NodeBase
}

// NodeBase implements Node interface
type NodeBase struct {
	Span NodeSpan                `json:"span"`
	Err  *sourcecode.ParsingError `json:"error,omitempty"`

	// Synthetic is true for nodes created by transformations (not copies of parsed nodes),
	// their span is either empty or the span of the node they replace.
	Synthetic bool `json:"synthetic,omitempty"`
}

func (base NodeBase) Base() NodeBase {
	return base
}

func (base *NodeBase) BasePtr() *NodeBase {
	return base
}

func (base NodeBase) IncludedIn(node Node) bool {
	return base.Span.Start >= node.Base().Span.Start && base.Span.End <= node.Base().Span.End
}

// A Chunk is a parsed source file: a flat sequence of *RawCode and markup nodes (*Element, *Fragment).
type Chunk struct {
	NodeBase `json:"base:chunk"`
	Parts    []Node                   `json:"parts"`
	Scope    *Scope                   `json:"-"` //module scope
	Source   *sourcecode.ParsedSource `json:"-"`
}

// RawCode is JS/TS code kept verbatim.
type RawCode struct {
	NodeBase `json:"base:raw-code"`
	Raw      string `json:"raw"`
}

// An Expression is a JS/TS expression that may contain markup: *RawCode and markup nodes.
// The span of an Expression excludes leading and trailing whitespace/comments.
type Expression struct {
	NodeBase `json:"base:expression"`
	Parts    []Node `json:"parts"`
}

// IsBooleanLiteral returns true if the expression is exactly the true/false keyword.
func (e *Expression) IsBooleanLiteral(value bool) bool {
	if e == nil || len(e.Parts) != 1 {
		return false
	}
	raw, ok := e.Parts[0].(*RawCode)
	if !ok {
		return false
	}
	if value {
		return strings.TrimSpace(raw.Raw) == "true"
	}
	return strings.TrimSpace(raw.Raw) == "false"
}

// An Element is a markup element, it is either self-closing (<A/>) or a container element (<A></A>).
type Element struct {
	NodeBase    `json:"base:element"`
	Name        Node   `json:"name"`       //*Identifier, *NamespacedName or *MemberExpression
	Attributes  []Node `json:"attributes"` //*Attribute or *SpreadAttribute
	Children    []Node `json:"children,omitempty"`
	ClosingName Node   `json:"closingName,omitempty"` //nil if self-closing
	SelfClosing bool   `json:"selfClosing,omitempty"`
}

// IsContainer returns true if the element is not self-closing.
func (e *Element) IsContainer() bool {
	return !e.SelfClosing
}

type Fragment struct {
	NodeBase `json:"base:fragment"`
	Children []Node `json:"children,omitempty"`
}

type Identifier struct {
	NodeBase `json:"base:identifier"`
	Name     string `json:"name"`
}

// A NamespacedName is a name of the form namespace:name.
type NamespacedName struct {
	NodeBase  `json:"base:namespaced-name"`
	Namespace *Identifier `json:"namespace"`
	Name      *Identifier `json:"name"`
}

type MemberExpression struct {
	NodeBase `json:"base:member-expr"`
	Object   Node        `json:"object"` //*Identifier, *MemberExpression or *ThisExpression
	Property *Identifier `json:"property"`
}

type ThisExpression struct {
	NodeBase `json:"base:this"`
}

type Attribute struct {
	NodeBase `json:"base:attribute"`
	Name     Node `json:"name"`            //*Identifier or *NamespacedName
	Value    Node `json:"value,omitempty"` //nil, *StringLiteral, *ExpressionContainer, *Element or *Fragment
}

// NameString returns the name of the attribute, namespaced names are returned as namespace:name.
func (a *Attribute) NameString() string {
	switch name := a.Name.(type) {
	case *Identifier:
		return name.Name
	case *NamespacedName:
		return name.Namespace.Name + ":" + name.Name.Name
	}
	return ""
}

// SpreadAttribute is an attribute of the form {...expr}.
type SpreadAttribute struct {
	NodeBase   `json:"base:spread-attribute"`
	Expression *Expression `json:"expression"`
}

// An ExpressionContainer is a {expr} construct in an attribute value or among the children of an element.
type ExpressionContainer struct {
	NodeBase   `json:"base:expression-container"`
	Expression *Expression `json:"expression,omitempty"` //nil if empty ({} or {/* comment */})
	Spread     bool        `json:"spread,omitempty"`     //{...expr}
}

func (c *ExpressionContainer) IsEmpty() bool {
	return c.Expression == nil
}

type Text struct {
	NodeBase `json:"base:text"`
	Raw      string `json:"raw"`
}

// ---------------------- JS nodes created by transformations ----------------------

type StringLiteral struct {
	NodeBase `json:"base:string-lit"`
	Value    string `json:"value"`
	Raw      string `json:"raw,omitempty"` //empty for synthetic literals
}

type BooleanLiteral struct {
	NodeBase `json:"base:boolean-lit"`
	Value    bool `json:"value"`
}

type ObjectLiteral struct {
	NodeBase   `json:"base:object-lit"`
	Properties []Node `json:"properties"` //*PropertyAssignment or *SpreadElement
}

type PropertyAssignment struct {
	NodeBase `json:"base:property-assignment"`
	Key      *StringLiteral `json:"key"`
	Value    Node           `json:"value"`
}

type SpreadElement struct {
	NodeBase `json:"base:spread-element"`
	Argument Node `json:"argument"`
}

type ArrayLiteral struct {
	NodeBase `json:"base:array-lit"`
	Elements []Node `json:"elements"`
}

type CallExpression struct {
	NodeBase  `json:"base:call-expr"`
	Callee    Node   `json:"callee"`
	Arguments []Node `json:"arguments"`
}

// IsMarkupNode returns true if node is an *Element or a *Fragment.
func IsMarkupNode(node Node) bool {
	switch node.(type) {
	case *Element, *Fragment:
		return true
	}
	return false
}
