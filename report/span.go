package report

// TextSpan represents a range or "span" of source text.  It is used to locate
// erroneous or otherwise significant source text in an Oolong program.  Text
// spans are inclusive on both sides: the starting position is the position of
// the first character in the span and the ending position is the position of
// the last character in the span.  The line and column numbers are zero-indexed.
//
// A nil *TextSpan is the synthetic span: it marks positions fabricated during
// lowering which correspond to no stable source text.  Synthetic spans carry no
// position information at all, so consumers must check for nil before reading
// any of the fields.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
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
