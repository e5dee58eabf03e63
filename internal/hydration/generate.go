package hydration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/inoxlang/islands/internal/islands"
	"github.com/inoxlang/islands/internal/js"
)

const (
	HTML_ELEMENT_VARIABLE = "ISLAND_HTML_ELEMENT"
	VIRTUAL_HYDRATOR      = "virtual:island-hydrator"

	ELEMENT_PLACEHOLDER   = "{{element}}"
	CONTAINER_PLACEHOLDER = "{{container}}"

	DEFAULT_TEMPLATE = `const { render } = await import("hono/jsx/dom");
render({{element}}, {{container}});`
)

var (
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrNoHydrator         = errors.New("neither a template nor an entry file is set")
	ErrBothHydrators      = errors.New("a template and an entry file cannot be both set")

	placeholderRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z_-]*)\s*\}\}`)
)

// A Hydrator describes how an island is hydrated: either with the code of a template, or by calling the
// hydrate function exported by an entry file (imported as virtual:island-hydrator).
type Hydrator struct {
	// Template is JS code in which {{element}} is replaced by the component element (JSX) and
	// {{container}} by the wrapper HTML element.
	Template string

	// Entry is the path of a module exporting hydrate(container, Component, props).
	Entry string
}

func DefaultHydrator() Hydrator {
	return Hydrator{Template: DEFAULT_TEMPLATE}
}

func (h Hydrator) Validate() error {
	switch {
	case h.Template == "" && h.Entry == "":
		return ErrNoHydrator
	case h.Template != "" && h.Entry != "":
		return ErrBothHydrators
	case h.Entry != "":
		return nil
	}

	for _, match := range placeholderRegex.FindAllStringSubmatch(h.Template, -1) {
		if match[0] != ELEMENT_PLACEHOLDER && match[0] != CONTAINER_PLACEHOLDER {
			return fmt.Errorf("%w in hydrate template: %s", ErrUnknownPlaceholder, match[0])
		}
	}

	if err := js.Validate(h.expand("Component")); err != nil {
		return fmt.Errorf("invalid hydrate template: %w", err)
	}
	return nil
}

// CanMinify returns true if the hydration code can be minified, templates containing markup cannot.
func (h Hydrator) CanMinify() bool {
	_, err := js.Minify("(async () => {" + h.expand("Component") + "})()")
	return err == nil
}

// expand returns the hydration code of a single component.
func (h Hydrator) expand(tagName string) string {
	props := `JSON.parse(` + HTML_ELEMENT_VARIABLE + `.dataset.islandProps ?? "{}")`

	if h.Entry != "" {
		return `await import("` + VIRTUAL_HYDRATOR + `").then(({ hydrate }) => {
			hydrate(` + HTML_ELEMENT_VARIABLE + `, ` + tagName + `, ` + props + `)
		})`
	}

	element := "<" + tagName + " {..." + props + "} />"

	return strings.NewReplacer(
		ELEMENT_PLACEHOLDER, element,
		CONTAINER_PLACEHOLDER, HTML_ELEMENT_VARIABLE,
	).Replace(h.Template)
}

type Config struct {
	Hash     string
	TagNames []string //tag names of the islands of the module
	Hydrator Hydrator

	// Minify minifies the generated code, templates containing markup cannot be minified.
	Minify bool
}

// Generate returns the code appended to an island module. For each tag name the code selects the wrappers
// of the module's islands that are not hydrated, marks them pending, calls the hydrator and marks them hydrated.
// A failed hydration restores the initial state. An empty string is returned if there are no tag names.
func Generate(config Config) (string, error) {
	if len(config.TagNames) == 0 {
		return "", nil
	}

	if err := config.Hydrator.Validate(); err != nil {
		return "", err
	}

	w := &strings.Builder{}
	w.WriteString("\nif (typeof document !== \"undefined\") {\n")

	for _, tagName := range config.TagNames {
		fmt.Fprintf(w, "document\n.querySelectorAll('%s')\n", jsSingleQuoted(Selector(config.Hash, tagName)))
		w.WriteString(".forEach(async (" + HTML_ELEMENT_VARIABLE + ") => {\n")

		fmt.Fprintf(w, "if (%s.dataset.islandHydrated === %q) return;\n", HTML_ELEMENT_VARIABLE, islands.HYDRATION_PENDING_VALUE)
		fmt.Fprintf(w, "%s.dataset.islandHydrated = %q;\n", HTML_ELEMENT_VARIABLE, islands.HYDRATION_PENDING_VALUE)
		w.WriteString("try {\n")
		w.WriteString(config.Hydrator.expand(tagName))
		fmt.Fprintf(w, "\n%s.dataset.islandHydrated = %q;\n", HTML_ELEMENT_VARIABLE, islands.HYDRATED_VALUE)
		w.WriteString("} catch (err) {\n")
		fmt.Fprintf(w, "%s.dataset.islandHydrated = %q;\n", HTML_ELEMENT_VARIABLE, islands.INITIAL_HYDRATED_VALUE)
		w.WriteString("console.error(err);\n")
		w.WriteString("}\n")
		w.WriteString("})\n")
	}

	w.WriteString("}\n")

	code := w.String()
	if !config.Minify {
		return code, nil
	}
	return js.Minify(code)
}

// Selector returns the CSS selector of the non-hydrated wrappers of component tagName in a module.
func Selector(hash, tagName string) string {
	return `[` + islands.HASH_ATTRIBUTE + `=` + cssString(hash) + `]` +
		`[` + islands.COMPONENT_ATTRIBUTE + `=` + cssString(tagName) + `]` +
		`:not([` + islands.HYDRATED_ATTRIBUTE + `="` + islands.HYDRATED_VALUE + `"])`
}

func cssString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func jsSingleQuoted(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s)
}
