package islands

import (
	"strings"

	"github.com/inoxlang/islands/internal/ast"
)

type PropKind uint8

const (
	ValueProp    PropKind = iota + 1 //key: value
	SpreadProp                       //...value
	ChildrenProp                     //children: [...]
)

const CHILDREN_PROP_KEY = "children"

// A SerializedProp is an entry of the props object of an island.
type SerializedProp struct {
	Kind     PropKind
	Key      string     //ValueProp and ChildrenProp
	Value    ast.Node   //ValueProp and SpreadProp
	Children []ast.Node //ChildrenProp, spread children are *ast.SpreadElement nodes
}

// SerializeProps returns the props of an element in source order, followed by a children prop
// if the element is a container. The marker attribute is never included. Expressions are not evaluated,
// the returned nodes are either nodes of the element or synthetic literals.
func SerializeProps(element *ast.Element) []SerializedProp {
	var props []SerializedProp

	for _, attr := range element.Attributes {
		switch a := attr.(type) {
		case *ast.SpreadAttribute:
			props = append(props, SerializedProp{Kind: SpreadProp, Value: a.Expression})
		case *ast.Attribute:
			if isMarkerAttribute(a) {
				continue
			}
			props = append(props, serializeAttribute(a))
		}
	}

	if element.IsContainer() {
		props = append(props, SerializedProp{
			Kind:     ChildrenProp,
			Key:      CHILDREN_PROP_KEY,
			Children: serializeChildren(element.Children),
		})
	}

	return props
}

// PropKey returns the key of an attribute in the props object, namespaced names (ns:name) have the
// key "name:ns".
func PropKey(attr *ast.Attribute) string {
	switch name := attr.Name.(type) {
	case *ast.Identifier:
		return name.Name
	case *ast.NamespacedName:
		return name.Name.Name + ":" + name.Namespace.Name
	}
	return ""
}

func serializeAttribute(attr *ast.Attribute) SerializedProp {
	key := PropKey(attr)

	switch value := attr.Value.(type) {
	case nil:
		return SerializedProp{Kind: ValueProp, Key: key, Value: ast.NewBooleanLiteral(true)}
	case *ast.ExpressionContainer:
		switch {
		case value.IsEmpty():
			return SerializedProp{Kind: ValueProp, Key: key, Value: ast.NewBooleanLiteral(true)}
		case value.Spread:
			return SerializedProp{Kind: SpreadProp, Value: value.Expression}
		}
		return SerializedProp{Kind: ValueProp, Key: key, Value: value.Expression}
	case *ast.StringLiteral:
		//markup strings have no escape sequences, the value is printed as a JS string.
		return SerializedProp{Kind: ValueProp, Key: key, Value: ast.NewStringLiteral(value.Value)}
	}
	return SerializedProp{Kind: ValueProp, Key: key, Value: attr.Value}
}

func serializeChildren(children []ast.Node) []ast.Node {
	var serialized []ast.Node

	for _, child := range children {
		switch c := child.(type) {
		case *ast.ExpressionContainer:
			switch {
			case c.IsEmpty():
			case c.Spread:
				serialized = append(serialized, &ast.SpreadElement{
					NodeBase: ast.NodeBase{Synthetic: true},
					Argument: c.Expression,
				})
			default:
				serialized = append(serialized, c.Expression)
			}
		case *ast.Text:
			if text := strings.TrimSpace(c.Raw); text != "" {
				serialized = append(serialized, ast.NewStringLiteral(text))
			}
		default:
			serialized = append(serialized, child)
		}
	}

	return serialized
}

// ObjectLiteral returns the object literal ({...}) of props.
func ObjectLiteral(props []SerializedProp) *ast.ObjectLiteral {
	object := &ast.ObjectLiteral{NodeBase: ast.NodeBase{Synthetic: true}}

	for _, prop := range props {
		var property ast.Node

		switch prop.Kind {
		case SpreadProp:
			property = &ast.SpreadElement{
				NodeBase: ast.NodeBase{Synthetic: true},
				Argument: prop.Value,
			}
		case ChildrenProp:
			property = &ast.PropertyAssignment{
				NodeBase: ast.NodeBase{Synthetic: true},
				Key:      ast.NewStringLiteral(prop.Key),
				Value: &ast.ArrayLiteral{
					NodeBase: ast.NodeBase{Synthetic: true},
					Elements: prop.Children,
				},
			}
		default:
			property = &ast.PropertyAssignment{
				NodeBase: ast.NodeBase{Synthetic: true},
				Key:      ast.NewStringLiteral(prop.Key),
				Value:    prop.Value,
			}
		}

		object.Properties = append(object.Properties, property)
	}

	return object
}
