package sourcecode

import (
	"fmt"
	"strings"
)

type ParsingErrorKind string

const (
	UnspecifiedParsingError ParsingErrorKind = "unspecified"
	UnterminatedConstruct   ParsingErrorKind = "unterminated"
	UnbalancedBrackets      ParsingErrorKind = "unbalanced-brackets"
	InvalidMarkup           ParsingErrorKind = "invalid-markup"
)

type ParsingError struct {
	Kind    ParsingErrorKind `json:"kind"`
	Message string           `json:"message"`
}

func (err ParsingError) Error() string {
	return err.Message
}

type ParsingErrorAggregation struct {
	Message        string          `json:"completeMessage"`
	Errors         []*ParsingError `json:"errors"`
	ErrorPositions []PositionRange `json:"errorPositions"`
}

func (err ParsingErrorAggregation) Error() string {
	return err.Message
}

// AggregateErrors creates a *ParsingErrorAggregation whose message lists every error with its location,
// nil is returned if errs is empty.
func AggregateErrors(source *ParsedSource, errs []*ParsingError, spans []NodeSpan) *ParsingErrorAggregation {
	if len(errs) == 0 {
		return nil
	}

	aggregation := &ParsingErrorAggregation{
		Errors: errs,
	}

	lines := make([]string, 0, len(errs))

	for i, err := range errs {
		pos := source.GetSourcePosition(spans[i])
		aggregation.ErrorPositions = append(aggregation.ErrorPositions, pos)
		lines = append(lines, fmt.Sprintf("%s:%d:%d: %s", pos.SourceName, pos.StartLine, pos.StartColumn, err.Message))
	}

	aggregation.Message = strings.Join(lines, "\n")
	return aggregation
}
