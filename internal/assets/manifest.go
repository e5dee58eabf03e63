package assets

import (
	"fmt"
	"path"
	"sort"

	"github.com/goccy/go-json"
	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/utils"
	"github.com/maruel/natural"
	"github.com/oklog/ulid/v2"
)

const (
	MANIFEST_PATH          = ".vite/manifest.json" //relative to the out dir
	MAX_MANIFEST_FILE_SIZE = 10_000_000
)

// A ManifestChunk is an entry of a build manifest (vite-style manifest.json).
type ManifestChunk struct {
	File    string   `json:"file"`
	Src     string   `json:"src,omitempty"`
	IsEntry bool     `json:"isEntry,omitempty"`
	CSS     []string `json:"css,omitempty"`
	Imports []string `json:"imports,omitempty"`
}

// A Manifest maps the paths of the source files, relative to the project root, to their chunk.
type Manifest map[string]ManifestChunk

func ReadManifest(fls afs.Filesystem, outDir string) (Manifest, error) {
	manifestPath := path.Join(outDir, MANIFEST_PATH)

	content, err := afs.ReadFile(fls, manifestPath, MAX_MANIFEST_FILE_SIZE)
	if err != nil {
		return nil, fmt.Errorf("failed to read the manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode the manifest %s: %w", manifestPath, err)
	}
	return manifest, nil
}

func WriteManifest(fls afs.Filesystem, outDir string, manifest Manifest) error {
	content, err := utils.MarshalIndentJsonNoHTMLEspace(manifest, "", "  ")
	if err != nil {
		return err
	}
	return afs.WriteFile(fls, path.Join(outDir, MANIFEST_PATH), content)
}

// Entries returns the paths of the entry chunks in natural order.
func (m Manifest) Entries() []string {
	var entries []string
	for src, chunk := range m {
		if chunk.IsEntry {
			entries = append(entries, src)
		}
	}
	sort.Sort(natural.StringSlice(entries))
	return entries
}

// NewStamp returns a new build stamp, stamps are appended to asset URLs to bust caches.
func NewStamp() string {
	return ulid.Make().String()
}

// Siblings returns the nodes inserted before the wrapper of an island of the module whose path is
// modulePath: a module script loading the chunk of the module and a stylesheet link for each of its
// CSS files. ok is false if the manifest has no entry for the module.
func (m Manifest) Siblings(base, modulePath, stamp string) (siblings []ast.Node, ok bool) {
	chunk, ok := m[modulePath]
	if !ok {
		return nil, false
	}

	siblings = append(siblings, ModuleScript(base+chunk.File+"?t="+stamp))
	for _, css := range chunk.CSS {
		siblings = append(siblings, StylesheetLink(base+css+"?t="+stamp))
	}
	return siblings, true
}

// ModuleScript creates <script type="module" src={src}/>.
func ModuleScript(src string) *ast.Element {
	return ast.NewElement("script", []ast.Node{
		ast.NewStringAttribute("type", "module"),
		ast.NewStringAttribute("src", src),
	}, nil)
}

// StylesheetLink creates <link rel="stylesheet" href={href}/>.
func StylesheetLink(href string) *ast.Element {
	return ast.NewElement("link", []ast.Node{
		ast.NewStringAttribute("rel", "stylesheet"),
		ast.NewStringAttribute("href", href),
	}, nil)
}
