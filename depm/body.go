package depm

import "oolong/report"

// Body represents the lowered body of a function as the debug-info layer sees
// it: the body's overall span and its tree of lexical scopes.  The actual
// instruction stream lives in the generated IR and is not modeled here.
type Body struct {
	// Span is the span of the executable body.
	Span *report.TextSpan

	// Scopes is the body's lexical scope tree in preorder.  Index 0 is always
	// the function's root scope.
	Scopes []ScopeData
}

// ScopeData describes a single lexical scope within a function body.
type ScopeData struct {
	// Parent is the index of the enclosing scope within the body's scope
	// list, or -1 for the root scope.
	Parent int

	// Span is the span of the scope's source text.
	Span *report.TextSpan

	// HasVariables indicates whether any user variable is declared directly
	// in this scope.  Scopes without variables need no debug representation
	// of their own.
	HasVariables bool
}
