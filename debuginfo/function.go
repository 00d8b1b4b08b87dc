package debuginfo

import (
	"fmt"

	"oolong/depm"
	"oolong/dib"
	"oolong/report"
)

// Enumeration of function debug context kinds.
const (
	FnDebugRegular    = iota // Debug info is being emitted for the function.
	FnDebugDisabled          // Debug info is disabled for the whole build.
	FnDebugSuppressed        // The function is excluded from debug info.
)

// FnDebugContext is the per-function debug info state handed back to the code
// generator.  Most operations require a regular context; disabled and
// suppressed contexts exist so that callers can thread one value through
// unconditionally and let the debug info layer sort out what applies.
type FnDebugContext struct {
	// kind indicates which state the context is in.  Must be one of the
	// enumerated function debug context kinds.
	kind int

	// data holds the context's state and is non-nil exactly when kind is
	// FnDebugRegular.
	data *FnDebugData
}

// FnDebugData holds the debug info state of a function being generated.
type FnDebugData struct {
	// FnMetadata is the function's subprogram node.
	FnMetadata dib.SubprogramNode

	// DefiningFile is the source file the function was defined in.  Scopes
	// and variables without their own file attribution fall back to it.
	DefiningFile *depm.SourceFile

	// SourceLocationsEnabled indicates whether statement-level source
	// locations are being attached yet.  It starts false so that function
	// prologues (parameter spills, implicit setup) carry no locations, and is
	// flipped once the first user statement is reached.
	SourceLocationsEnabled bool
}

// RegularFnDebugContext creates a context for a function with debug info.
func RegularFnDebugContext(data *FnDebugData) FnDebugContext {
	return FnDebugContext{kind: FnDebugRegular, data: data}
}

// DisabledFnDebugContext creates the context used when debug info is off.
func DisabledFnDebugContext() FnDebugContext {
	return FnDebugContext{kind: FnDebugDisabled}
}

// SuppressedFnDebugContext creates the context for a function excluded from
// debug info: one marked nodebug or fabricated without stable source text.
func SuppressedFnDebugContext() FnDebugContext {
	return FnDebugContext{kind: FnDebugSuppressed}
}

// IsRegular returns whether the context carries debug info state.
func (fdc FnDebugContext) IsRegular() bool {
	return fdc.kind == FnDebugRegular
}

// IsDisabled returns whether the context belongs to a build without debug
// info.
func (fdc FnDebugContext) IsDisabled() bool {
	return fdc.kind == FnDebugDisabled
}

// IsSuppressed returns whether the context's function is excluded from debug
// info.
func (fdc FnDebugContext) IsSuppressed() bool {
	return fdc.kind == FnDebugSuppressed
}

// MustData returns the context's state, reporting an ICE if the context is
// not regular: reaching for debug state in those states is always a compiler
// bug, never a user error.  The span locates the access for the ICE message
// and may be nil.
func (fdc FnDebugContext) MustData(span *report.TextSpan) *FnDebugData {
	switch fdc.kind {
	case FnDebugRegular:
		return fdc.data
	case FnDebugDisabled:
		report.ReportICE("debuginfo: use of a function debug context although debug info is disabled%s", spanSuffix(span))
	default:
		report.ReportICE("debuginfo: use of a function debug context for a function excluded from debug info%s", spanSuffix(span))
	}

	// Unreachable: ReportICE panics.
	return nil
}

// StartEmittingSourceLocations begins attaching statement-level source
// locations for the function: the code generator calls it once the prologue
// is finished.  It does nothing for non-regular contexts.
func (fdc FnDebugContext) StartEmittingSourceLocations() {
	if fdc.kind == FnDebugRegular {
		fdc.data.SourceLocationsEnabled = true
	}
}

// spanSuffix renders a span as a suffix for internal error messages.
func spanSuffix(span *report.TextSpan) string {
	if span == nil {
		return ""
	}

	return fmt.Sprintf(" (near line %d)", span.StartLine+1)
}
