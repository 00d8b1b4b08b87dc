package debuginfo

import (
	"oolong/depm"
	"oolong/dib"
	"oolong/session"
	"oolong/types"

	"github.com/llir/llvm/ir/value"
)

// CreateGlobalVarMetadata emits the debug metadata describing a global
// variable definition, bound to the IR global holding it.  Globals are only
// described under full debug info, and definitions marked nodebug are
// skipped.
func (uc *UnitContext) CreateGlobalVarMetadata(def *depm.Def, typ types.Type, global value.Value) {
	if uc == nil || uc.sess.DebugInfo != session.DebugInfoFull {
		return
	}

	if def.HasAnnotation("nodebug") {
		return
	}

	var fileNode dib.FileNode
	if def.Span == nil {
		fileNode = uc.unknownFileMetadata()
	} else {
		fileNode = uc.fileMetadataFor(def.File)
	}

	inst := depm.Instance{Def: def}

	uc.builder().NewGlobalVariableExpression(
		uc.parentNamespace(def),
		def.Name,
		inst.MangledName(),
		fileNode,
		spanLine(def.Span),
		uc.typeMetadata(typ, def.Span),
		!def.Public,
		global,
	)
}
