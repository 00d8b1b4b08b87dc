package debuginfo

import (
	"oolong/depm"
	"oolong/dib"
)

// ScopeMap maps every lexical scope of a body to the metadata scope node its
// variables and locations should hang off of.  The root scope maps to the
// function's subprogram; a child scope declaring no variables shares its
// parent's node instead of getting a lexical block of its own, which keeps
// variable-free nesting out of the metadata.  For non-regular contexts every
// entry is the null scope.
func (uc *UnitContext) ScopeMap(fdc FnDebugContext, body *depm.Body) []dib.ScopeNode {
	scopes := make([]dib.ScopeNode, len(body.Scopes))
	if uc == nil || !fdc.IsRegular() {
		return scopes
	}

	data := fdc.MustData(body.Span)
	fileNode := uc.fileMetadataFor(data.DefiningFile)

	// Preorder guarantees a parent's node exists before its children ask for
	// it.
	for i, scopeData := range body.Scopes {
		if scopeData.Parent < 0 {
			scopes[i] = data.FnMetadata.AsScope()
			continue
		}

		parent := scopes[scopeData.Parent]

		if !scopeData.HasVariables {
			scopes[i] = parent
			continue
		}

		scopes[i] = uc.builder().NewLexicalBlock(parent, fileNode, spanLine(scopeData.Span), spanCol(scopeData.Span))
	}

	return scopes
}
