package hydration

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/inoxlang/islands/internal/islands"
	"github.com/inoxlang/islands/internal/utils"
)

// An Island is an island wrapper found in an HTML document.
type Island struct {
	Hash      string
	Component string
	Hydrated  string //value of data-island-hydrated
	RawProps  string //empty if the wrapper has no props
	Selection *goquery.Selection
}

func (i Island) IsHydrated() bool {
	return i.Hydrated == islands.HYDRATED_VALUE
}

// Props decodes the props of the island, an island without props has empty props.
func (i Island) Props() (map[string]any, error) {
	return decodeProps(i.RawProps)
}

// FindIslands returns the island wrappers of a document in document order.
func FindIslands(doc *goquery.Document) []Island {
	var found []Island

	selector := fmt.Sprintf("[%s][%s]", islands.HASH_ATTRIBUTE, islands.COMPONENT_ATTRIBUTE)

	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		found = append(found, Island{
			Hash:      s.AttrOr(islands.HASH_ATTRIBUTE, ""),
			Component: s.AttrOr(islands.COMPONENT_ATTRIBUTE, ""),
			Hydrated:  s.AttrOr(islands.HYDRATED_ATTRIBUTE, ""),
			RawProps:  s.AttrOr(islands.PROPS_ATTRIBUTE, ""),
			Selection: s,
		})
	})

	return found
}

type HydrateFn func(container *goquery.Selection, props map[string]any) error

// HydrateDocument hydrates the non-hydrated wrappers of component tagName in a module the same way
// the generated code does: pending wrappers are skipped, the wrapper is marked pending during the call
// to hydrate, and marked hydrated on success. A failed hydration restores the initial state.
// The number of hydrated islands is returned along with the combined errors.
func HydrateDocument(doc *goquery.Document, hash, tagName string, hydrate HydrateFn) (int, error) {
	var errs []error
	count := 0

	doc.Find(Selector(hash, tagName)).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr(islands.HYDRATED_ATTRIBUTE, "") == islands.HYDRATION_PENDING_VALUE {
			return
		}
		s.SetAttr(islands.HYDRATED_ATTRIBUTE, islands.HYDRATION_PENDING_VALUE)

		props, err := decodeProps(s.AttrOr(islands.PROPS_ATTRIBUTE, ""))
		if err == nil {
			err = hydrate(s, props)
		}

		if err != nil {
			s.SetAttr(islands.HYDRATED_ATTRIBUTE, islands.INITIAL_HYDRATED_VALUE)
			errs = append(errs, fmt.Errorf("failed to hydrate %s (%s): %w", tagName, hash, err))
			return
		}

		s.SetAttr(islands.HYDRATED_ATTRIBUTE, islands.HYDRATED_VALUE)
		count++
	})

	return count, utils.CombineErrors(errs...)
}

func decodeProps(raw string) (map[string]any, error) {
	if raw == "" {
		raw = "{}"
	}

	var props map[string]any
	if err := json.Unmarshal(utils.StringAsBytes(raw), &props); err != nil {
		return nil, fmt.Errorf("invalid island props: %w", err)
	}
	if props == nil {
		props = map[string]any{}
	}
	return props, nil
}
