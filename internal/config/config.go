package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/inoxlang/islands/internal/scan"
	"github.com/inoxlang/islands/internal/utils"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	CONFIG_FILENAME = "islands.yaml"

	DEFAULT_PATTERN              = "src/*.{tsx,jsx}"
	DEFAULT_CLIENT_IMPORT_SOURCE = "hono/jsx/dom"
	DEFAULT_SERVER_IMPORT_SOURCE = "hono/jsx"
	DEFAULT_OUT_DIR              = "dist"
	DEFAULT_BASE                 = "/"

	MAX_CONFIG_FILE_SIZE = 100_000
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	// Patterns of the files that may contain islands, they are scanned at build time.
	Pattern StringList `yaml:"pattern"`

	// Modules imported at the top of all island modules (client side), relative to the project root.
	Imports []string `yaml:"imports"`

	JSX   JSXConfig   `yaml:"jsx"`
	Build BuildConfig `yaml:"build"`
}

type JSXConfig struct {
	// Import source used for the client (akin to jsxImportSource in a tsconfig.json).
	ClientImportSource string `yaml:"clientImportSource"`

	// Import source used for the server.
	ServerImportSource string `yaml:"serverImportSource"`

	Hydrate HydrateConfig `yaml:"hydrate"`
}

// HydrateConfig is either a template or the path of an entry file exporting
// hydrate(container, Component, props). In YAML a string value is an entry file.
type HydrateConfig struct {
	Template string `yaml:"template,omitempty"`
	Entry    string `yaml:"entry,omitempty"`
}

func (c *HydrateConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var entry string
	if err := unmarshal(&entry); err == nil {
		*c = HydrateConfig{Entry: entry}
		return nil
	}

	var object struct {
		Template string `yaml:"template"`
		Entry    string `yaml:"entry"`
	}
	if err := unmarshal(&object); err != nil {
		return fmt.Errorf("hydrate should be either the path of an entry file or an object: %w", err)
	}
	*c = HydrateConfig{Template: object.Template, Entry: object.Entry}
	return nil
}

type BuildConfig struct {
	OutDir string `yaml:"outDir"`
	Base   string `yaml:"base"` //public base path of the built assets
	Input  Input  `yaml:"input"`
	Minify bool   `yaml:"minify"`
}

// StringList is a list of strings, in YAML it can also be a single string.
type StringList []string

func (l *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*l = StringList{single}
		return nil
	}

	var list []string
	if err := unmarshal(&list); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = list
	return nil
}

// Input is the base input of the build (rollup's input option): a single file, a list of files or
// a map from entry names to files.
type Input struct {
	Single string
	List   []string
	Named  map[string]string
}

func (i Input) IsEmpty() bool {
	return i.Single == "" && len(i.List) == 0 && len(i.Named) == 0
}

func (i *Input) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*i = Input{Single: single}
		return nil
	}

	var list []string
	if err := unmarshal(&list); err == nil {
		*i = Input{List: list}
		return nil
	}

	var named map[string]string
	if err := unmarshal(&named); err != nil {
		return fmt.Errorf("input should be a string, a list or a map: %w", err)
	}
	*i = Input{Named: named}
	return nil
}

func (i Input) MarshalYAML() (any, error) {
	switch {
	case i.Single != "":
		return i.Single, nil
	case len(i.List) > 0:
		return i.List, nil
	case len(i.Named) > 0:
		return i.Named, nil
	}
	return nil, nil
}

func Default() Config {
	return Config{
		Pattern: StringList{DEFAULT_PATTERN},
		Imports: []string{},
		JSX: JSXConfig{
			ClientImportSource: DEFAULT_CLIENT_IMPORT_SOURCE,
			ServerImportSource: DEFAULT_SERVER_IMPORT_SOURCE,
			Hydrate:            HydrateConfig{Template: hydration.DEFAULT_TEMPLATE},
		},
		Build: BuildConfig{
			OutDir: DEFAULT_OUT_DIR,
			Base:   DEFAULT_BASE,
		},
	}
}

// Parse parses a YAML configuration, unspecified values keep their default value.
func Parse(content []byte) (Config, error) {
	config := Default()

	if err := checkSyntax(content); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return config, nil
}

// checkSyntax returns an error if content is not a well-formed YAML document, goccy/go-yaml decodes
// unterminated flow collections and quoted scalars without error.
func checkSyntax(content []byte) error {
	var document yamlv3.Node
	return yamlv3.Unmarshal(content, &document)
}

// Load reads the configuration file at path, the default configuration is returned
// if the file does not exist.
func Load(fls afs.Filesystem, path string) (Config, error) {
	content, err := afs.ReadFile(fls, path, MAX_CONFIG_FILE_SIZE)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read the configuration file: %w", err)
	}
	return Parse(content)
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hydrator returns the hydrator of the islands.
func (c Config) Hydrator() hydration.Hydrator {
	return hydration.Hydrator{
		Template: c.JSX.Hydrate.Template,
		Entry:    c.JSX.Hydrate.Entry,
	}
}

// Patterns returns the normalized scan patterns.
func (c Config) Patterns() []string {
	return utils.MapSlice(c.Pattern, scan.NormalizePattern)
}

// Validate checks the configuration, all errors are reported.
func (c Config) Validate() error {
	var errs []error

	if len(c.Pattern) == 0 {
		errs = append(errs, errors.New("at least one pattern should be set"))
	}
	for _, pattern := range c.Patterns() {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid pattern: %q", pattern))
		}
	}

	for _, imported := range c.Imports {
		if strings.TrimSpace(imported) == "" {
			errs = append(errs, errors.New("imports should not contain empty paths"))
		}
	}

	if c.JSX.ClientImportSource == "" {
		errs = append(errs, errors.New("jsx.clientImportSource should be set"))
	}
	if c.JSX.ServerImportSource == "" {
		errs = append(errs, errors.New("jsx.serverImportSource should be set"))
	}

	if err := c.Hydrator().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("jsx.hydrate: %w", err))
	}

	if c.Build.Minify && !c.Hydrator().CanMinify() {
		errs = append(errs, errors.New("build.minify requires jsx.hydrate to be an entry file or a template without markup"))
	}

	if c.Build.OutDir == "" || path.Clean(c.Build.OutDir) == "." {
		errs = append(errs, errors.New("build.outDir should be a subdirectory of the project"))
	}
	if !strings.HasSuffix(c.Build.Base, "/") {
		errs = append(errs, errors.New("build.base should end with '/'"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, utils.CombineErrors(errs...))
}
