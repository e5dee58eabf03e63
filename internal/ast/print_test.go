package ast_test

import (
	"testing"

	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/parse"
	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {

	t.Run("synthetic element", func(t *testing.T) {
		call := &ast.CallExpression{
			NodeBase: ast.NodeBase{Synthetic: true},
			Callee:   ast.NewMemberExpression("JSON", "stringify"),
			Arguments: []ast.Node{
				&ast.ObjectLiteral{
					NodeBase: ast.NodeBase{Synthetic: true},
					Properties: []ast.Node{
						&ast.PropertyAssignment{
							NodeBase: ast.NodeBase{Synthetic: true},
							Key:      ast.NewStringLiteral("a"),
							Value:    ast.NewBooleanLiteral(true),
						},
						&ast.SpreadElement{
							NodeBase: ast.NodeBase{Synthetic: true},
							Argument: ast.NewIdentifier("rest"),
						},
						&ast.PropertyAssignment{
							NodeBase: ast.NodeBase{Synthetic: true},
							Key:      ast.NewStringLiteral("children"),
							Value: &ast.ArrayLiteral{
								NodeBase: ast.NodeBase{Synthetic: true},
								Elements: []ast.Node{ast.NewStringLiteral("<hello>")},
							},
						},
					},
				},
			},
		}

		element := ast.NewElement("div", []ast.Node{
			ast.NewStringAttribute("style", "display:contents"),
			ast.NewAttribute("data-props", ast.NewExpressionContainer(call)),
			ast.NewAttribute("hidden", nil),
		}, []ast.Node{ast.NewElement("br", nil, nil)})

		assert.Equal(t,
			`<div style="display:contents" data-props={JSON.stringify({"a": true, ...rest, "children": ["<hello>"]})} hidden><br/></div>`,
			ast.Print(element, nil))
	})

	t.Run("fragment", func(t *testing.T) {
		fragment := ast.NewFragment(ast.NewElement("a", nil, nil), ast.NewElement("b", nil, []ast.Node{}))
		assert.Equal(t, `<><a/><b></b></>`, ast.Print(fragment, nil))
	})

	t.Run("attribute strings", func(t *testing.T) {
		assert.Equal(t, `<a x="it's"/>`, ast.Print(ast.NewElement("a", []ast.Node{ast.NewStringAttribute("x", "it's")}, nil), nil))
		assert.Equal(t, `<a x='"q"'/>`, ast.Print(ast.NewElement("a", []ast.Node{ast.NewStringAttribute("x", `"q"`)}, nil), nil))
		assert.Equal(t, `<a x={"\"it's\""}/>`, ast.Print(ast.NewElement("a", []ast.Node{ast.NewStringAttribute("x", `"it's"`)}, nil), nil))
	})

	t.Run("parsed nodes inside synthetic nodes", func(t *testing.T) {
		chunk := parse.MustParseChunk(`const a = <b  c = "d" >text</b>;`)
		element := ast.FindFirstNode(chunk, (*ast.Element)(nil))

		result := ast.Transform(chunk, func(node ast.Node) ast.Node {
			if node != element {
				return node
			}
			fragment := ast.NewFragment(ast.NewElement("script", nil, nil), element)
			fragment.Span = element.Span
			return fragment
		})

		assert.Equal(t, `const a = <><script/><b  c = "d" >text</b></>;`, ast.Print(result, chunk.Source))
	})

	t.Run("synthetic attribute in a parsed element", func(t *testing.T) {
		chunk := parse.MustParseChunk(`<b  c = "d"  e/>`)

		result := ast.Transform(chunk, func(node ast.Node) ast.Node {
			attr, ok := node.(*ast.Attribute)
			if !ok || attr.NameString() != "c" {
				return node
			}
			replacement := ast.NewStringAttribute("c", `x"y`)
			replacement.Span = attr.Span
			return replacement
		})

		assert.Equal(t, `<b  c='x"y'  e/>`, ast.Print(result, chunk.Source))
	})
}
