package symbols

import (
	"context"
	"errors"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/ast"
	"github.com/inoxlang/islands/internal/cache"
	"github.com/inoxlang/islands/internal/parse"
	"github.com/inoxlang/islands/internal/sourcecode"
	"github.com/maruel/natural"
	"golang.org/x/sync/errgroup"
)

const (
	DEFAULT_MAX_SOURCE_FILE_SIZE = 2_000_000
)

var (
	// extensions tried in order when resolving a module specifier without extension.
	RESOLVED_EXTENSIONS = []string{".tsx", ".ts", ".jsx", ".js"}

	ErrNotSourceFile = errors.New("not a TSX/JSX/TS/JS file")
)

type ParsedFile struct {
	Chunk      *ast.Chunk
	ParsingErr *sourcecode.ParsingErrorAggregation //nil if there are no parsing errors
}

type ParseCache = cache.ParseCache[ParsedFile]

func NewParseCache() *ParseCache {
	return cache.NewParseCache[ParsedFile]()
}

type LoadConfig struct {
	MaxFileSize        int64         //defaults to DEFAULT_MAX_SOURCE_FILE_SIZE
	FileParsingTimeout time.Duration //maximum duration for parsing a single file, defaults to parse.DEFAULT_TIMEOUT
	Cache              *ParseCache   //optional
}

// A SourceUnit is a parsed source file of a Program, it is immutable.
type SourceUnit struct {
	Path       string //slash-separated path relative to the project root
	Chunk      *ast.Chunk
	ParsingErr *sourcecode.ParsingErrorAggregation //nil if there are no parsing errors

	program  *Program
	resolver *ScopeResolver
}

// Classify classifies an identifier of the unit's chunk (or of a transformed copy of the chunk).
func (u *SourceUnit) Classify(ident *ast.Identifier) Origin {
	return u.resolver.Classify(ident)
}

// Program returns the program that owns the unit, nil for units created by ParseSourceUnit.
func (u *SourceUnit) Program() *Program {
	return u.program
}

func (u *SourceUnit) Code() string {
	return u.Chunk.Source.Code()
}

// A Program is the set of source units of a whole-program analysis.
type Program struct {
	fls   afs.Filesystem
	units map[string]*SourceUnit
}

// NewProgram returns a program made of already parsed units, files of fls are used for
// specifier resolution.
func NewProgram(fls afs.Filesystem, units ...*SourceUnit) *Program {
	program := &Program{
		fls:   fls,
		units: make(map[string]*SourceUnit, len(units)),
	}
	for _, unit := range units {
		program.units[unit.Path] = unit
	}
	return program
}

// LoadProgram reads and parses the files at paths concurrently. Files with parsing errors are still loaded,
// an error is returned if a file cannot be read or if a critical parsing error occurs.
func LoadProgram(ctx context.Context, fls afs.Filesystem, paths []string, config LoadConfig) (*Program, error) {
	program := &Program{
		fls:   fls,
		units: make(map[string]*SourceUnit, len(paths)),
	}

	maxFileSize := config.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DEFAULT_MAX_SOURCE_FILE_SIZE
	}

	units := make([]*SourceUnit, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, filePath := range paths {
		group.Go(func() error {
			filePath := CleanPath(filePath)

			content, err := afs.ReadFile(fls, filePath, maxFileSize)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filePath, err)
			}

			unit, err := ParseSourceUnit(groupCtx, filePath, string(content), config)
			if err != nil {
				return err
			}
			unit.program = program
			units[i] = unit
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, unit := range units {
		program.units[unit.Path] = unit
	}

	return program, nil
}

// ParseSourceUnit parses a single file, the returned unit does not belong to a program.
func ParseSourceUnit(ctx context.Context, filePath string, code string, config LoadConfig) (*SourceUnit, error) {
	filePath = CleanPath(filePath)

	if !IsSourceFile(filePath) {
		return nil, fmt.Errorf("%w: %s", ErrNotSourceFile, filePath)
	}

	var parsed *ParsedFile
	if config.Cache != nil {
		parsed, _ = config.Cache.Get(filePath, code)
	}

	if parsed == nil {
		chunk, err := parse.ParseChunk(code, filePath, parse.ParserOptions{
			ParentContext: ctx,
			Timeout:       config.FileParsingTimeout,
			NoMarkup:      !IsMarkupFile(filePath),
		})

		var aggregation *sourcecode.ParsingErrorAggregation
		if err != nil && !errors.As(err, &aggregation) {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		parsed = &ParsedFile{Chunk: chunk, ParsingErr: aggregation}
		if config.Cache != nil {
			config.Cache.Put(filePath, code, parsed)
		}
	}

	return &SourceUnit{
		Path:       filePath,
		Chunk:      parsed.Chunk,
		ParsingErr: parsed.ParsingErr,
		resolver:   NewScopeResolver(parsed.Chunk),
	}, nil
}

func (p *Program) Unit(filePath string) (*SourceUnit, bool) {
	unit, ok := p.units[CleanPath(filePath)]
	return unit, ok
}

// Units returns the units of the program in natural order of their paths.
func (p *Program) Units() []*SourceUnit {
	paths := make([]string, 0, len(p.units))
	for filePath := range p.units {
		paths = append(paths, filePath)
	}
	sort.Sort(natural.StringSlice(paths))

	units := make([]*SourceUnit, len(paths))
	for i, filePath := range paths {
		units[i] = p.units[filePath]
	}
	return units
}

// ResolveSpecifier resolves a relative (./, ../) or project-rooted (/) module specifier imported by importer
// to the path of a file of the program or of the filesystem. Bare specifiers (packages) are not resolved.
// Specifiers without extension are resolved by trying RESOLVED_EXTENSIONS and then index files.
func (p *Program) ResolveSpecifier(importer, specifier string) (string, bool) {
	var base string

	switch {
	case specifier == "." || specifier == ".." || strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		base = path.Join(path.Dir(CleanPath(importer)), specifier)
	case strings.HasPrefix(specifier, "/"):
		base = CleanPath(specifier)
	default:
		return "", false
	}

	if base == ".." || strings.HasPrefix(base, "../") {
		return "", false
	}

	candidates := []string{base}
	for _, ext := range RESOLVED_EXTENSIONS {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range RESOLVED_EXTENSIONS {
		candidates = append(candidates, path.Join(base, "index"+ext))
	}

	for _, candidate := range candidates {
		if p.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (p *Program) isFile(filePath string) bool {
	if _, ok := p.units[filePath]; ok {
		return true
	}
	if p.fls == nil {
		return false
	}

	stat, err := p.fls.Stat(filePath)
	return err == nil && !stat.IsDir()
}

// CleanPath returns the slash-separated path relative to the project root of a path that is either
// relative to the root or rooted (/src/app.tsx).
func CleanPath(filePath string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(filePath, "\\", "/"))
	if cleaned == "/" {
		return "."
	}
	return cleaned[1:]
}

func IsSourceFile(filePath string) bool {
	switch path.Ext(filePath) {
	case ".tsx", ".jsx", ".ts", ".js", ".mts", ".mjs":
		return true
	}
	return false
}

// IsMarkupFile returns true if markup is allowed in the file (.tsx, .jsx).
func IsMarkupFile(filePath string) bool {
	switch path.Ext(filePath) {
	case ".tsx", ".jsx":
		return true
	}
	return false
}
