package debuginfo

import (
	"oolong/depm"
	"oolong/dib"
	"oolong/report"
	"oolong/session"
	"oolong/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// VarKind distinguishes the kinds of variables a function body declares.
type VarKind int

// Enumeration of variable kinds.
const (
	ArgumentVar = VarKind(iota) // A declared parameter of the function.
	LocalVar                    // A user variable declared in the body.
	CapturedVar                 // A variable captured from an enclosing function.
)

// VarAccess describes how a variable's storage is reached from its alloca.
type VarAccess struct {
	// Alloca is the stack slot holding the variable or, for an indirect
	// access, holding the address chain leading to it.
	Alloca value.Value

	// AddrOps is the DWARF expression applied to the alloca to reach the
	// variable when the access is indirect.
	AddrOps []dib.DWARFExprOpCode

	// Indirect indicates the variable lives behind the alloca rather than in
	// it: captured environments and boxed locals.
	Indirect bool
}

// DirectAccess describes a variable stored directly in its alloca.
func DirectAccess(alloca value.Value) VarAccess {
	return VarAccess{Alloca: alloca}
}

// IndirectAccess describes a variable reached by applying the given DWARF
// expression ops to the value in its alloca.
func IndirectAccess(alloca value.Value, ops ...dib.DWARFExprOpCode) VarAccess {
	return VarAccess{Alloca: alloca, AddrOps: ops, Indirect: true}
}

// -----------------------------------------------------------------------------

// DeclareLocal emits the debug declaration for one variable of a function:
// its variable node plus the declare marker binding that node to the
// variable's storage in block.  argIndex is the one-based parameter position
// and is only meaningful for ArgumentVar.  Variables are only described under
// full debug info and for regular function contexts; every other combination
// is a no-op.
func (uc *UnitContext) DeclareLocal(
	fdc FnDebugContext,
	block *ir.Block,
	name string,
	typ types.Type,
	scope dib.ScopeNode,
	access VarAccess,
	kind VarKind,
	argIndex int,
	file *depm.SourceFile,
	span *report.TextSpan,
) {
	if uc == nil || uc.sess.DebugInfo != session.DebugInfoFull || !fdc.IsRegular() {
		return
	}

	data := fdc.MustData(span)

	fileNode := uc.fileMetadataFor(file)
	line := spanLine(span)
	typeNode := uc.typeMetadata(typ, span)

	// The always-preserve bit mirrors the session's optimize flag: optimized
	// builds pin every described variable so it stays visible.
	alwaysPreserve := uc.sess.IsOptimized()

	var variable dib.VariableNode
	if kind == ArgumentVar {
		variable = uc.builder().NewParameterVariable(scope, fileNode, name, argIndex, line, typeNode, alwaysPreserve, dib.DIFlagZero)
	} else {
		variable = uc.builder().NewLocalVariable(scope, fileNode, name, line, typeNode, typ.Align()*8, alwaysPreserve, dib.DIFlagZero)
	}

	addrExpr := uc.builder().NewAddrExpression(access.AddrOps...)

	uc.setDebugLocation(knownLocation(scope, line, spanCol(span)))

	loc, _ := uc.builder().Location()
	marker := uc.builder().InsertDeclareAtEnd(access.Alloca, variable, addrExpr, loc, block)
	uc.builder().SetInstLocation(marker)

	if kind == ArgumentVar || kind == CapturedVar {
		// Parameters are declared during the prologue: finding source
		// locations already enabled means the generator declared this one too
		// late.  The register is reset afterwards so the rest of the prologue
		// stays unattributed.
		if data.SourceLocationsEnabled {
			report.ReportICE("debuginfo: parameter `%s` declared after source locations were enabled%s", name, spanSuffix(span))
		}

		uc.setDebugLocation(unknownLocation())
	}
}
