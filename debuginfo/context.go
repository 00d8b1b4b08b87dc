// Package debuginfo attaches source-level debug information to generated IR:
// compile units, type metadata, namespaces, function scopes, and variable
// declarations.
package debuginfo

import (
	"path/filepath"

	"oolong/depm"
	"oolong/dib"
	"oolong/report"
	"oolong/session"
	"oolong/types"

	"github.com/llir/llvm/ir"
)

// debugMetadataVersion is the metadata format version recorded in every
// module that carries debug info.
const debugMetadataVersion = 3

// unknownFileName is the file name recorded for positions with no stable
// source file.
const unknownFileName = "<unknown>"

// fileKey identifies a file metadata node: the same path compiled into two
// different units must yield two distinct nodes, so the defining unit is part
// of the key.
type fileKey struct {
	path   string
	unitID uint64
}

// discrKey identifies an enum discriminant type node by the enum's declaring
// definition and the primitive the discriminant is stored as.
type discrKey struct {
	defID uint64
	prim  types.PrimitiveType
}

// UnitContext holds all debug info state for one compilation unit while its
// code is generated.  Like the generator that owns it, a unit context is
// confined to a single goroutine.
type UnitContext struct {
	// b is the metadata builder.  It is cleared by Finalize; every operation
	// goes through the builder accessor so that use of a finalized context is
	// caught as an ICE instead of corrupting emitted metadata.
	b *dib.Builder

	// mod is the IR module being generated for the unit.
	mod *ir.Module

	// unit is the compilation unit this context describes.
	unit *depm.Unit

	// sess is the build session configuration.
	sess *session.Session

	// defs resolves definition IDs carried by named types back to their
	// definitions.
	defs depm.DefTable

	// cuNode is the unit's compile unit node.
	cuNode dib.ScopeNode

	// createdFiles memoizes file metadata nodes.
	createdFiles map[fileKey]dib.FileNode

	// typeMap memoizes type metadata nodes by canonical type key.
	typeMap map[string]dib.TypeNode

	// namespaces memoizes namespace nodes by definition ID.
	namespaces map[uint64]dib.ScopeNode

	// enumDiscrTypes memoizes enum discriminant type nodes.
	enumDiscrTypes map[discrKey]dib.TypeNode

	// completedComposites records the composite type nodes whose members have
	// been set.  Completing a composite a second time is an ICE.
	completedComposites map[dib.TypeNode]struct{}
}

// NewUnitContext creates the debug info context for generating unit into mod.
// It returns nil when the session disables debug info: callers treat a nil
// context as "emission disabled" and every exported operation on a nil
// context is a safe no-op or a disabled result.
func NewUnitContext(mod *ir.Module, unit *depm.Unit, sess *session.Session, defs depm.DefTable) *UnitContext {
	if sess.DebugInfo == session.DebugInfoNone {
		return nil
	}

	b := dib.NewBuilder(mod)

	// The compile unit's file is a pseudo-file naming the unit, resolved
	// against the directory compilation was invoked from.
	cuFile := b.NewFile(unit.Name, sess.WorkingDir)

	emissionKind := dib.DWARFEmissionFull
	if sess.DebugInfo == session.DebugInfoLimited {
		emissionKind = dib.DWARFEmissionLineTablesOnly
	}

	cuNode := b.NewCompileUnit(cuFile, dib.DWARFSourceLanguageOolong, emissionKind, dib.CompileUnitOptions{
		Producer:    sess.Producer,
		IsOptimized: sess.IsOptimized(),
	})

	return &UnitContext{
		b:                   b,
		mod:                 mod,
		unit:                unit,
		sess:                sess,
		defs:                defs,
		cuNode:              cuNode,
		createdFiles:        make(map[fileKey]dib.FileNode),
		typeMap:             make(map[string]dib.TypeNode),
		namespaces:          make(map[uint64]dib.ScopeNode),
		enumDiscrTypes:      make(map[discrKey]dib.TypeNode),
		completedComposites: make(map[dib.TypeNode]struct{}),
	}
}

// builder returns the context's metadata builder, reporting an ICE if the
// context has already been finalized.
func (uc *UnitContext) builder() *dib.Builder {
	if uc.b == nil {
		report.ReportICE("debuginfo: use of a finalized unit context")
	}

	return uc.b
}

// Builder exposes the context's metadata builder for inspection.
func (uc *UnitContext) Builder() *dib.Builder {
	if uc == nil {
		return nil
	}

	return uc.b
}

// CompileUnit returns the unit's compile unit scope node.
func (uc *UnitContext) CompileUnit() dib.ScopeNode {
	return uc.cuNode
}

// -----------------------------------------------------------------------------

// Finalize completes debug info emission for the unit: it emits the debugger
// pretty-printer loader section where the target supports one, resolves and
// releases the metadata graph, and records the module flags consuming tools
// look for.  The context must not be used afterwards.  Calling Finalize on a
// nil context does nothing.
func (uc *UnitContext) Finalize() {
	if uc == nil {
		return
	}

	b := uc.builder()

	if uc.sess.Target.EmbedsDebuggerVisualizers() {
		uc.emitGdbScriptsMarker()
	}

	b.Finalize()
	b.Dispose()

	// Older debuggers on these platforms reject newer DWARF, so the module
	// is pinned to version 2 there.
	if uc.sess.Target.IsLikeOSX || uc.sess.Target.IsLikeAndroid {
		b.AddModuleFlag(dib.WarningFlagBehavior, "Dwarf Version", 2)
	}

	if uc.sess.Target.IsLikeMSVC {
		b.AddModuleFlag(dib.WarningFlagBehavior, "CodeView", 1)
	}

	// Without this flag LLVM strips the debug info during linking.
	b.AddModuleFlag(dib.WarningFlagBehavior, "Debug Info Version", debugMetadataVersion)

	uc.b = nil
}

// -----------------------------------------------------------------------------

// fileMetadata returns the file metadata node for the given path compiled
// into the given unit, creating it on first use.
func (uc *UnitContext) fileMetadata(path string, unitID uint64) dib.FileNode {
	key := fileKey{path: path, unitID: unitID}
	if node, ok := uc.createdFiles[key]; ok {
		return node
	}

	var node dib.FileNode
	if path == unknownFileName {
		node = uc.builder().NewFile(unknownFileName, "")
	} else {
		node = uc.builder().NewFile(filepath.Base(path), filepath.Dir(path))
	}

	uc.createdFiles[key] = node
	return node
}

// fileMetadataFor returns the file metadata node for a source file.  A nil
// file stands for positions without a stable source file and maps to the
// unknown file.
func (uc *UnitContext) fileMetadataFor(file *depm.SourceFile) dib.FileNode {
	if file == nil {
		return uc.fileMetadata(unknownFileName, uc.unit.ID)
	}

	return uc.fileMetadata(file.ReprPath, file.Parent.ID)
}

// unknownFileMetadata returns the file metadata node for positions with no
// stable source file.
func (uc *UnitContext) unknownFileMetadata() dib.FileNode {
	return uc.fileMetadata(unknownFileName, uc.unit.ID)
}
