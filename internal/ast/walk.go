package ast

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

type TraversalAction int

const (
	ContinueTraversal TraversalAction = iota
	Prune
	StopTraversal
)

type NodeHandler = func(node Node, parent Node, ancestorChain []Node, after bool) (TraversalAction, error)

// This functions performs a pre-order traversal on an AST (depth first).
// postHandle is called on a node after all its descendants have been visited.
func Walk(node Node, handle, postHandle NodeHandler) (err error) {
	defer func() {
		v := recover()

		switch val := v.(type) {
		case error:
			err = fmt.Errorf("%s:%w", debug.Stack(), val)
		case nil:
		case TraversalAction:
		default:
			panic(v)
		}
	}()

	ancestorChain := make([]Node, 0)
	walk(node, nil, &ancestorChain, handle, postHandle)
	return
}

func walk(node, parent Node, ancestorChain *[]Node, fn, afterFn NodeHandler) {

	if isNil(node) {
		return
	}

	*ancestorChain = append((*ancestorChain), parent)
	defer func() {
		*ancestorChain = (*ancestorChain)[:len(*ancestorChain)-1]
	}()

	if fn != nil {
		action, err := fn(node, parent, *ancestorChain, false)

		if err != nil {
			panic(err)
		}

		switch action {
		case StopTraversal:
			panic(StopTraversal)
		case Prune:
			return
		}
	}

	for _, child := range Children(node) {
		walk(child, node, ancestorChain, fn, afterFn)
	}

	if afterFn != nil {
		action, err := afterFn(node, parent, *ancestorChain, true)

		if err != nil {
			panic(err)
		}

		switch action {
		case StopTraversal:
			panic(StopTraversal)
		}
	}
}

// Children returns the direct children of node in source order, nil children are not included.
func Children(node Node) []Node {
	var children []Node

	add := func(n Node) {
		if !isNil(n) {
			children = append(children, n)
		}
	}

	switch n := node.(type) {
	case *Chunk:
		return n.Parts
	case *Expression:
		return n.Parts
	case *Element:
		add(n.Name)
		for _, attr := range n.Attributes {
			add(attr)
		}
		for _, child := range n.Children {
			add(child)
		}
		add(n.ClosingName)
	case *Fragment:
		return n.Children
	case *NamespacedName:
		add(n.Namespace)
		add(n.Name)
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *Attribute:
		add(n.Name)
		add(n.Value)
	case *SpreadAttribute:
		add(n.Expression)
	case *ExpressionContainer:
		add(n.Expression)
	case *ObjectLiteral:
		return n.Properties
	case *PropertyAssignment:
		add(n.Key)
		add(n.Value)
	case *SpreadElement:
		add(n.Argument)
	case *ArrayLiteral:
		return n.Elements
	case *CallExpression:
		add(n.Callee)
		for _, arg := range n.Arguments {
			add(arg)
		}
	}
	return children
}

func isNil(node Node) bool {
	return node == nil || reflect.ValueOf(node).IsNil()
}
