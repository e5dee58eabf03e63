package islands

import (
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/symbols"
)

// A Discovered island is a marked element whose tag is imported or locally declared.
type Discovered struct {
	TagName string
	Origin  symbols.Origin
	Element *ast.Element
}

// Analyze returns the islands of a chunk in bottom-up order (nested islands first), it does not
// resolve module ids.
func Analyze(chunk *ast.Chunk, classifier symbols.Classifier) []Discovered {
	var discovered []Discovered

	ast.Walk(chunk, nil, func(node, parent ast.Node, ancestorChain []ast.Node, after bool) (ast.TraversalAction, error) {
		element, ok := node.(*ast.Element)
		if !ok || !IsMarked(element) {
			return ast.ContinueTraversal, nil
		}

		origin := TagOriginOf(element, classifier)
		if origin.Origin.IsTransformable() {
			discovered = append(discovered, Discovered{
				TagName: origin.TagName(),
				Origin:  origin.Origin,
				Element: element,
			})
		}
		return ast.ContinueTraversal, nil
	})

	return discovered
}

// TagNames returns the distinct tag names of discovered islands in order of first appearance.
func TagNames(discovered []Discovered) []string {
	var names []string
	seen := map[string]bool{}

	for _, d := range discovered {
		if !seen[d.TagName] {
			seen[d.TagName] = true
			names = append(names, d.TagName)
		}
	}
	return names
}
