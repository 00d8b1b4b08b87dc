package debuginfo

import (
	"oolong/dib"
	"oolong/report"
)

// debugLocation is a position the builder's location register can hold:
// either a known scoped line and column or the unknown location.
type debugLocation struct {
	scope dib.ScopeNode
	line  int
	col   int
	known bool
}

// knownLocation builds a known debug location.
func knownLocation(scope dib.ScopeNode, line, col int) debugLocation {
	return debugLocation{scope: scope, line: line, col: col, known: true}
}

// unknownLocation builds the unknown debug location.
func unknownLocation() debugLocation {
	return debugLocation{}
}

// setDebugLocation moves the builder's location register to loc.
func (uc *UnitContext) setDebugLocation(loc debugLocation) {
	if loc.known {
		uc.builder().SetLocation(uc.builder().NewLocation(loc.scope, loc.line, loc.col))
	} else {
		uc.builder().ClearLocation()
	}
}

// SetSourceLocation points the location register at span within scope so that
// the instructions generated next are attributed to it.  Until the function's
// debug context starts emitting source locations the register is held at the
// unknown location, which keeps prologue instructions unattributed.
func (uc *UnitContext) SetSourceLocation(fdc FnDebugContext, scope dib.ScopeNode, span *report.TextSpan) {
	if uc == nil || fdc.IsDisabled() {
		return
	}

	if fdc.IsSuppressed() {
		uc.setDebugLocation(unknownLocation())
		return
	}

	if data := fdc.MustData(span); !data.SourceLocationsEnabled || span == nil {
		uc.setDebugLocation(unknownLocation())
		return
	}

	uc.setDebugLocation(knownLocation(scope, spanLine(span), spanCol(span)))
}

// -----------------------------------------------------------------------------

// spanLine returns the one-based line a span starts on, zero for synthetic
// spans.
func spanLine(span *report.TextSpan) int {
	if span == nil {
		return 0
	}

	return span.StartLine + 1
}

// spanCol returns the one-based column a span starts on, zero for synthetic
// spans.
func spanCol(span *report.TextSpan) int {
	if span == nil {
		return 0
	}

	return span.StartCol + 1
}
