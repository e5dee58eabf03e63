package sourcecode

// A NodeSpan is a range of rune indexes in a source file.
type NodeSpan struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"` //exclusive
}

func (s NodeSpan) Len() int32 {
	return s.End - s.Start
}

func (s NodeSpan) HasPositionEndIncluded(i int32) bool {
	return i >= s.Start && i <= s.End
}

func (s NodeSpan) Contains(other NodeSpan) bool {
	return other.Start >= s.Start && other.End <= s.End
}

type PositionRange struct {
	SourceName  string   `json:"sourceName"`
	StartLine   int32    `json:"line"`
	StartColumn int32    `json:"column"`
	EndLine     int32    `json:"endLine"`
	EndColumn   int32    `json:"endColumn"`
	Span        NodeSpan `json:"span"`
}
