package ast

import (
	"strings"

	"github.com/inoxlang/islands/internal/sourcecode"
	"github.com/inoxlang/islands/internal/utils"
)

// Print returns the code of node. Parsed nodes (and copies of parsed nodes) are printed from the source:
// the text between their children is kept as is, so printing an untransformed tree yields the
// source byte-for-byte. Synthetic nodes are printed structurally.
func Print(node Node, source *sourcecode.ParsedSource) string {
	p := printer{source: source}
	p.print(node)
	return p.buf.String()
}

// PrintChunk prints a chunk using its own source.
func PrintChunk(chunk *Chunk) string {
	return Print(chunk, chunk.Source)
}

type printer struct {
	source *sourcecode.ParsedSource
	buf    strings.Builder
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	base := node.Base()
	if base.Synthetic || p.source == nil {
		p.printSynthetic(node)
		return
	}

	pos := base.Span.Start
	for _, child := range Children(node) {
		childSpan := child.Base().Span
		if childSpan.Start >= pos && childSpan.End <= base.Span.End && childSpan.End > childSpan.Start {
			p.writeSource(pos, childSpan.Start)
			pos = childSpan.End
		}
		p.print(child)
	}
	p.writeSource(pos, base.Span.End)
}

func (p *printer) writeSource(start, end int32) {
	if end > start {
		p.buf.WriteString(p.source.Slice(sourcecode.NodeSpan{Start: start, End: end}))
	}
}

func (p *printer) printSynthetic(node Node) {
	switch n := node.(type) {
	case *Chunk:
		p.printList(n.Parts, "")
	case *Expression:
		p.printList(n.Parts, "")
	case *RawCode:
		p.buf.WriteString(n.Raw)
	case *Text:
		p.buf.WriteString(n.Raw)
	case *Identifier:
		p.buf.WriteString(n.Name)
	case *NamespacedName:
		p.print(n.Namespace)
		p.buf.WriteByte(':')
		p.print(n.Name)
	case *MemberExpression:
		p.print(n.Object)
		p.buf.WriteByte('.')
		p.print(n.Property)
	case *ThisExpression:
		p.buf.WriteString("this")
	case *Element:
		p.buf.WriteByte('<')
		p.print(n.Name)
		for _, attr := range n.Attributes {
			p.buf.WriteByte(' ')
			p.print(attr)
		}
		if n.SelfClosing {
			p.buf.WriteString("/>")
			return
		}
		p.buf.WriteByte('>')
		p.printList(n.Children, "")
		p.buf.WriteString("</")
		if isNil(n.ClosingName) {
			p.print(n.Name)
		} else {
			p.print(n.ClosingName)
		}
		p.buf.WriteByte('>')
	case *Fragment:
		p.buf.WriteString("<>")
		p.printList(n.Children, "")
		p.buf.WriteString("</>")
	case *Attribute:
		p.print(n.Name)
		if isNil(n.Value) {
			return
		}
		p.buf.WriteByte('=')
		if lit, ok := n.Value.(*StringLiteral); ok && lit.Synthetic && lit.Raw == "" {
			p.printAttributeString(lit.Value)
			return
		}
		p.print(n.Value)
	case *SpreadAttribute:
		p.buf.WriteString("{...")
		p.print(n.Expression)
		p.buf.WriteByte('}')
	case *ExpressionContainer:
		p.buf.WriteByte('{')
		if n.Spread {
			p.buf.WriteString("...")
		}
		p.print(n.Expression)
		p.buf.WriteByte('}')
	case *StringLiteral:
		if n.Raw != "" {
			p.buf.WriteString(n.Raw)
			return
		}
		p.buf.Write(utils.Must(utils.MarshalJsonNoHTMLEspace(n.Value)))
	case *BooleanLiteral:
		if n.Value {
			p.buf.WriteString("true")
		} else {
			p.buf.WriteString("false")
		}
	case *ObjectLiteral:
		p.buf.WriteByte('{')
		p.printList(n.Properties, ", ")
		p.buf.WriteByte('}')
	case *PropertyAssignment:
		p.print(n.Key)
		p.buf.WriteString(": ")
		p.print(n.Value)
	case *SpreadElement:
		p.buf.WriteString("...")
		p.print(n.Argument)
	case *ArrayLiteral:
		p.buf.WriteByte('[')
		p.printList(n.Elements, ", ")
		p.buf.WriteByte(']')
	case *CallExpression:
		p.print(n.Callee)
		p.buf.WriteByte('(')
		p.printList(n.Arguments, ", ")
		p.buf.WriteByte(')')
	}
}

func (p *printer) printList(nodes []Node, separator string) {
	for i, n := range nodes {
		if i > 0 {
			p.buf.WriteString(separator)
		}
		p.print(n)
	}
}

// printAttributeString prints a markup attribute string, markup strings have no escape sequences so
// a value containing both quote kinds is printed as an expression container.
func (p *printer) printAttributeString(value string) {
	switch {
	case !strings.ContainsRune(value, '"'):
		p.buf.WriteByte('"')
		p.buf.WriteString(value)
		p.buf.WriteByte('"')
	case !strings.ContainsRune(value, '\''):
		p.buf.WriteByte('\'')
		p.buf.WriteString(value)
		p.buf.WriteByte('\'')
	default:
		p.buf.WriteByte('{')
		p.buf.Write(utils.Must(utils.MarshalJsonNoHTMLEspace(value)))
		p.buf.WriteByte('}')
	}
}
