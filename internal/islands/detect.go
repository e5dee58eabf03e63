package islands

import "github.com/inoxlang/islands/internal/ast"

const MARKER_ATTRIBUTE = "island-load"

// IsMarked returns true if node is an element with an island-load attribute that has no value or whose value
// is {true}. IsMarked does not inspect the descendants of node.
func IsMarked(node ast.Node) bool {
	element, ok := node.(*ast.Element)
	if !ok {
		return false
	}

	for _, attr := range element.Attributes {
		attr, ok := attr.(*ast.Attribute)
		if !ok || !isMarkerAttribute(attr) {
			continue
		}

		switch value := attr.Value.(type) {
		case nil:
			return true
		case *ast.ExpressionContainer:
			if !value.Spread && value.Expression.IsBooleanLiteral(true) {
				return true
			}
		}
	}
	return false
}

func isMarkerAttribute(attr *ast.Attribute) bool {
	name, ok := attr.Name.(*ast.Identifier)
	return ok && name.Name == MARKER_ATTRIBUTE
}
