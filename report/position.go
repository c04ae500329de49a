package report

import "fmt"

// TextSpan represents a range or "span" of skeleton text. It is used to locate
// erroneous or otherwise significant declarations and references.  Text spans
// are inclusive on both sides: the starting position is the position of the
// first character in the span and the ending position is the position of the
// last character in the span.  The line and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanAt returns a text span covering n characters starting at the given
// zero-indexed line and column.
func NewSpanAt(line, col, n int) *TextSpan {
	if n < 1 {
		n = 1
	}

	return &TextSpan{
		StartLine: line,
		StartCol:  col,
		EndLine:   line,
		EndCol:    col + n - 1,
	}
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// Before reports whether span starts before other.  A nil span sorts first.
func (ts *TextSpan) Before(other *TextSpan) bool {
	switch {
	case ts == nil:
		return other != nil
	case other == nil:
		return false
	case ts.StartLine != other.StartLine:
		return ts.StartLine < other.StartLine
	default:
		return ts.StartCol < other.StartCol
	}
}

// String renders the one-indexed start of the span as `line:col`.
func (ts *TextSpan) String() string {
	if ts == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}
