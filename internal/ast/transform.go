package ast

import "slices"

// A TransformFunc is called on every node after its children have been transformed, it returns
// the node itself or a node replacing it.
type TransformFunc func(node Node) Node

// Transform performs a bottom-up (post-order) copy-on-write transformation of the tree rooted at node.
// A node whose children are unchanged is passed as is to fn, otherwise a shallow copy with the new
// children is passed. The input tree is never mutated and unchanged subtrees keep their identity.
func Transform(node Node, fn TransformFunc) Node {
	if isNil(node) {
		return node
	}
	return fn(transformChildren(node, fn))
}

func transformChildren(node Node, fn TransformFunc) Node {
	switch n := node.(type) {
	case *Chunk:
		parts, changed := transformList(n.Parts, fn)
		if !changed {
			return n
		}
		clone := *n
		clone.Parts = parts
		return &clone
	case *Expression:
		parts, changed := transformList(n.Parts, fn)
		if !changed {
			return n
		}
		clone := *n
		clone.Parts = parts
		return &clone
	case *Element:
		attributes, attrsChanged := transformList(n.Attributes, fn)
		children, childrenChanged := transformList(n.Children, fn)
		if !attrsChanged && !childrenChanged {
			return n
		}
		clone := *n
		clone.Attributes = attributes
		clone.Children = children
		return &clone
	case *Fragment:
		children, changed := transformList(n.Children, fn)
		if !changed {
			return n
		}
		clone := *n
		clone.Children = children
		return &clone
	case *Attribute:
		if isNil(n.Value) {
			return n
		}
		value := Transform(n.Value, fn)
		if value == n.Value {
			return n
		}
		clone := *n
		clone.Value = value
		return &clone
	case *SpreadAttribute:
		expr, changed := transformExpression(n.Expression, fn)
		if !changed {
			return n
		}
		clone := *n
		clone.Expression = expr
		return &clone
	case *ExpressionContainer:
		expr, changed := transformExpression(n.Expression, fn)
		if !changed {
			return n
		}
		clone := *n
		clone.Expression = expr
		return &clone
	}
	//tag names and leaves
	return node
}

func transformList(nodes []Node, fn TransformFunc) ([]Node, bool) {
	var result []Node

	for i, n := range nodes {
		transformed := Transform(n, fn)
		if transformed == n && result == nil {
			continue
		}
		if result == nil {
			result = slices.Clone(nodes[:i:i])
		}
		result = append(result, transformed)
	}

	if result == nil {
		return nodes, false
	}
	return result, true
}

func transformExpression(expr *Expression, fn TransformFunc) (*Expression, bool) {
	if expr == nil {
		return nil, false
	}
	transformed, ok := Transform(expr, fn).(*Expression)
	if !ok || transformed == expr {
		return expr, false
	}
	return transformed, true
}
