package ast

import (
	"reflect"
	"slices"
)

func CountNodes(n Node) (count int) {
	Walk(n, func(node, parent Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		count += 1
		return ContinueTraversal, nil
	}, nil)

	return
}

func FindNodes[T Node](root Node, typ T, handle func(n T) bool) []T {
	n, _ := FindNodesAndChains(root, typ, handle)
	return n
}

func FindNodesAndChains[T Node](root Node, typ T, handle func(n T) bool) ([]T, [][]Node) {
	searchedType := reflect.TypeOf(typ)
	var found []T
	var ancestors [][]Node

	Walk(root, func(node, parent Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		if reflect.TypeOf(node) == searchedType {
			if handle == nil || handle(node.(T)) {
				found = append(found, node.(T))
				ancestors = append(ancestors, slices.Clone(ancestorChain))
			}
		}
		return ContinueTraversal, nil
	}, nil)

	return found, ancestors
}

func FindFirstNode[T Node](root Node, typ T) T {
	searchedType := reflect.TypeOf(typ)
	var found T

	Walk(root, func(node, parent Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		if reflect.TypeOf(node) == searchedType {
			found = node.(T)
			return StopTraversal, nil
		}
		return ContinueTraversal, nil
	}, nil)

	return found
}

func HasErrorAtAnyDepth(n Node) bool {
	err := false
	Walk(n, func(node, parent Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		if node.Base().Err != nil {
			err = true
			return StopTraversal, nil
		}
		return ContinueTraversal, nil
	}, nil)

	return err
}

// ElementName returns the printed name of an element name node (A, ns:name, A.B.C, this.A).
func ElementName(name Node) string {
	switch n := name.(type) {
	case *Identifier:
		return n.Name
	case *NamespacedName:
		return n.Namespace.Name + ":" + n.Name.Name
	case *MemberExpression:
		return ElementName(n.Object) + "." + n.Property.Name
	case *ThisExpression:
		return "this"
	}
	return ""
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{NodeBase: NodeBase{Synthetic: true}, Name: name}
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{NodeBase: NodeBase{Synthetic: true}, Value: value}
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{NodeBase: NodeBase{Synthetic: true}, Value: value}
}

// NewAttribute creates a synthetic attribute, a nil value creates a boolean attribute.
func NewAttribute(name string, value Node) *Attribute {
	return &Attribute{
		NodeBase: NodeBase{Synthetic: true},
		Name:     NewIdentifier(name),
		Value:    value,
	}
}

func NewStringAttribute(name string, value string) *Attribute {
	return NewAttribute(name, NewStringLiteral(value))
}

func NewExpressionContainer(parts ...Node) *ExpressionContainer {
	return &ExpressionContainer{
		NodeBase:   NodeBase{Synthetic: true},
		Expression: &Expression{NodeBase: NodeBase{Synthetic: true}, Parts: parts},
	}
}

// NewElement creates a synthetic element, it is self-closing if children is nil.
func NewElement(name string, attributes []Node, children []Node) *Element {
	return &Element{
		NodeBase:    NodeBase{Synthetic: true},
		Name:        NewIdentifier(name),
		Attributes:  attributes,
		Children:    children,
		SelfClosing: children == nil,
	}
}

func NewFragment(children ...Node) *Fragment {
	return &Fragment{NodeBase: NodeBase{Synthetic: true}, Children: children}
}

// NewMemberExpression creates a synthetic member chain: NewMemberExpression("JSON", "stringify").
func NewMemberExpression(object string, properties ...string) Node {
	var expr Node = NewIdentifier(object)
	for _, prop := range properties {
		expr = &MemberExpression{
			NodeBase: NodeBase{Synthetic: true},
			Object:   expr,
			Property: NewIdentifier(prop),
		}
	}
	return expr
}
