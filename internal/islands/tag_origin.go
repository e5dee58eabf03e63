package islands

import (
	"strings"

	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/symbols"
)

// A TagOrigin is the reduction of an element's tag name to a path (Namespace.Component) and the
// classification of its root identifier.
type TagOrigin struct {
	Path   []string
	Root   *ast.Identifier //nil for this-based tags (this.Component)
	Origin symbols.Origin
}

func (o TagOrigin) TagName() string {
	return TagName(o.Path)
}

// RootOf returns the name path of a tag and its root identifier:
//   - Component -> [Component], Component
//   - ns:name -> [ns, name], ns
//   - A.B.C -> [A, B, C], A
//   - this.A -> [A], nil
func RootOf(tag ast.Node) (path []string, root *ast.Identifier) {
	switch t := tag.(type) {
	case *ast.Identifier:
		return []string{t.Name}, t
	case *ast.NamespacedName:
		return []string{t.Namespace.Name, t.Name.Name}, t.Namespace
	case *ast.MemberExpression:
		path, root = RootOf(t.Object)
		return append(path, t.Property.Name), root
	}
	//this
	return nil, nil
}

// TagName returns the canonical tag name of an element: its name path joined with dots.
func TagName(path []string) string {
	return strings.Join(path, ".")
}

func TagOriginOf(element *ast.Element, classifier symbols.Classifier) TagOrigin {
	path, root := RootOf(element.Name)

	origin := symbols.Origin{Kind: symbols.UnknownOrigin}
	if root != nil {
		origin = classifier.Classify(root)
	}

	return TagOrigin{
		Path:   path,
		Root:   root,
		Origin: origin,
	}
}
