package sourcecode

import (
	"fmt"
	"io"
)

// A ParsedSource holds the code of a source file as runes, spans of AST nodes are indexes into Runes().
type ParsedSource struct {
	name  string
	runes []rune
}

func NewParsedSource(name string, runes []rune) *ParsedSource {
	return &ParsedSource{
		name:  name,
		runes: runes,
	}
}

// unique name | path
func (s *ParsedSource) Name() string {
	return s.name
}

// result should not be modified.
func (s *ParsedSource) Runes() []rune {
	return s.runes
}

func (s *ParsedSource) Code() string {
	return string(s.runes)
}

// Slice returns the code covered by span, the span is clamped to the source.
func (s *ParsedSource) Slice(span NodeSpan) string {
	start := max(0, min(span.Start, len32(s.runes)))
	end := max(start, min(span.End, len32(s.runes)))
	return string(s.runes[start:end])
}

func (s *ParsedSource) FormatNodeSpanLocation(w io.Writer, nodeSpan NodeSpan) (int, error) {
	line, col := s.GetSpanLineColumn(nodeSpan)
	return fmt.Fprintf(w, "%s:%d:%d:", s.Name(), line, col)
}

func (s *ParsedSource) GetSpanLineColumn(span NodeSpan) (int32, int32) {
	return s.lineColumnAt(span.Start)
}

func (s *ParsedSource) GetEndSpanLineColumn(span NodeSpan) (int32, int32) {
	return s.lineColumnAt(span.End)
}

func (s *ParsedSource) lineColumnAt(index int32) (int32, int32) {
	line := int32(1)
	col := int32(1)
	i := int32(0)

	for i < index && i < len32(s.runes) {
		if s.runes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}

		i++
	}

	return line, col
}

func (s *ParsedSource) GetSourcePosition(span NodeSpan) PositionRange {
	line, col := s.GetSpanLineColumn(span)
	endLine, endCol := s.GetEndSpanLineColumn(span)

	return PositionRange{
		SourceName:  s.Name(),
		StartLine:   line,
		StartColumn: col,
		EndLine:     endLine,
		EndColumn:   endCol,
		Span:        span,
	}
}

func len32[E any](s []E) int32 {
	return int32(len(s))
}
