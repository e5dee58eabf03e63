package islands

import (
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/symbols"
)

// wrapper attributes
const (
	WRAPPER_TAG_NAME        = "div"
	WRAPPER_STYLE           = "display:contents"
	HASH_ATTRIBUTE          = "data-island-hash"
	COMPONENT_ATTRIBUTE     = "data-island-component"
	HYDRATED_ATTRIBUTE      = "data-island-hydrated"
	PROPS_ATTRIBUTE         = "data-island-props"
	INITIAL_HYDRATED_VALUE  = "false"
	HYDRATED_VALUE          = "true"
	HYDRATION_PENDING_VALUE = "pending"
)

// An IslandRecord describes a transformed island, it is passed to RewriteConfig.OnIsland.
type IslandRecord struct {
	Hash         string
	ModuleID     string
	TagName      string
	Props        []SerializedProp
	OriginalNode *ast.Element //the element wrapped by the island wrapper
}

type RewriteConfig struct {
	Classifier symbols.Classifier

	// Hash returns the hash of a module, it should be deterministic.
	Hash func(moduleID string) string

	// ModuleID returns the id of the module exporting the component whose tag name is tagName.
	// Islands whose module id is not resolved are not transformed.
	ModuleID func(tagName string) (moduleID string, ok bool)

	// Siblings returns the nodes added before the wrapper of an island of the module (optional).
	Siblings func(moduleID string) []ast.Node

	// OnIsland is called once for each transformed island (optional).
	OnIsland func(IslandRecord)
}

// Rewrite returns a transformed copy of chunk in which the marked elements whose tag is imported or
// locally declared are wrapped by an island wrapper. Markup values of attributes are wrapped in
// expression containers ({<A/>}). Unchanged subtrees are not copied and chunk is never mutated.
func Rewrite(chunk *ast.Chunk, config RewriteConfig) *ast.Chunk {
	result := ast.Transform(chunk, func(node ast.Node) ast.Node {
		switch n := node.(type) {
		case *ast.Attribute:
			return normalizeAttribute(n)
		case *ast.Element:
			return rewriteElement(n, config)
		}
		return node
	})

	return result.(*ast.Chunk)
}

// normalizeAttribute wraps an element or fragment value in an expression container.
func normalizeAttribute(attr *ast.Attribute) ast.Node {
	if attr.Value == nil || !ast.IsMarkupNode(attr.Value) {
		return attr
	}

	span := attr.Value.Base().Span
	normalized := *attr
	normalized.Value = &ast.ExpressionContainer{
		NodeBase: ast.NodeBase{Span: span, Synthetic: true},
		Expression: &ast.Expression{
			NodeBase: ast.NodeBase{Span: span, Synthetic: true},
			Parts:    []ast.Node{attr.Value},
		},
	}
	return &normalized
}

func rewriteElement(element *ast.Element, config RewriteConfig) ast.Node {
	if !IsMarked(element) || config.Classifier == nil || config.ModuleID == nil {
		return element
	}

	origin := TagOriginOf(element, config.Classifier)
	if !origin.Origin.IsTransformable() {
		return element
	}

	props := SerializeProps(element)
	tagName := origin.TagName()

	moduleID, ok := config.ModuleID(tagName)
	if !ok {
		return element
	}

	record := IslandRecord{
		ModuleID:     moduleID,
		TagName:      tagName,
		Props:        props,
		OriginalNode: element,
	}
	if config.Hash != nil {
		record.Hash = config.Hash(moduleID)
	}

	if config.OnIsland != nil {
		config.OnIsland(record)
	}

	var children []ast.Node
	if config.Siblings != nil {
		children = append(children, config.Siblings(moduleID)...)
	}
	children = append(children, newWrapper(record))

	fragment := ast.NewFragment(children...)
	fragment.Span = element.Span
	return fragment
}

// newWrapper creates <div style="display:contents" data-island-hash=".." data-island-component=".."
// data-island-hydrated="false" data-island-props={JSON.stringify({..})}>element</div>.
func newWrapper(record IslandRecord) *ast.Element {
	attributes := []ast.Node{
		ast.NewStringAttribute("style", WRAPPER_STYLE),
		ast.NewStringAttribute(HASH_ATTRIBUTE, record.Hash),
		ast.NewStringAttribute(COMPONENT_ATTRIBUTE, record.TagName),
		ast.NewStringAttribute(HYDRATED_ATTRIBUTE, INITIAL_HYDRATED_VALUE),
	}

	if len(record.Props) > 0 {
		attributes = append(attributes, ast.NewAttribute(PROPS_ATTRIBUTE, ast.NewExpressionContainer(&ast.CallExpression{
			NodeBase:  ast.NodeBase{Synthetic: true},
			Callee:    ast.NewMemberExpression("JSON", "stringify"),
			Arguments: []ast.Node{ObjectLiteral(record.Props)},
		})))
	}

	return ast.NewElement(WRAPPER_TAG_NAME, attributes, []ast.Node{record.OriginalNode})
}
