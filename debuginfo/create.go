package debuginfo

import (
	"strings"

	"oolong/depm"
	"oolong/dib"
	"oolong/report"
	"oolong/session"
	"oolong/types"

	"github.com/llir/llvm/ir"
)

// CreateFunctionDebugContext creates the per-function debug state for
// generating inst's body into fn, emitting the function's subprogram node and
// attaching it to fn whenever debug info applies to the function.
func (uc *UnitContext) CreateFunctionDebugContext(inst *depm.Instance, fnType *types.FuncType, fn *ir.Func, body *depm.Body) FnDebugContext {
	if uc == nil {
		return DisabledFnDebugContext()
	}

	def := inst.Def

	// Functions can opt out of debug info entirely.
	if def.HasAnnotation("nodebug") {
		return SuppressedFnDebugContext()
	}

	// Synthetic functions have no stable source text to attribute debug info
	// to, so they are skipped rather than given fabricated positions.
	if def.Span == nil {
		return SuppressedFnDebugContext()
	}

	fileNode := uc.fileMetadataFor(def.File)
	line := spanLine(def.Span)

	// The scope line tracks the body rather than the signature so that
	// breakpoints on the function land past its prologue.
	scopeLine := line
	if body != nil && body.Span != nil {
		scopeLine = spanLine(body.Span)
	}

	signature := uc.signatureMetadata(fnType, fileNode)

	name := def.Name
	var templateParams []dib.MDNode
	if len(inst.TypeArgs) > 0 {
		sb := strings.Builder{}
		sb.WriteString(name)
		uc.pushTypeArgs(inst.TypeArgs, &sb)
		name = sb.String()

		templateParams = uc.templateParameters(def, inst.TypeArgs)
	}

	// Entry points have to stay externally visible to the debugger even when
	// the language-level definition is not public.
	isLocalToUnit := !def.Public && !uc.sess.IsEntryPoint(def)

	flags := dib.DIFlagPrototyped
	if uc.sess.IsEntryPoint(def) {
		flags |= dib.DIFlagMainSubprogram
	}

	subprogram := uc.builder().NewFunction(
		uc.containingScope(def),
		fileNode,
		name,
		inst.MangledName(),
		line,
		signature,
		isLocalToUnit,
		true,
		scopeLine,
		flags,
		uc.sess.IsOptimized(),
		templateParams...,
	)
	uc.builder().SetSubprogram(fn, subprogram)

	return RegularFnDebugContext(&FnDebugData{
		FnMetadata:   subprogram,
		DefiningFile: def.File,
	})
}

// -----------------------------------------------------------------------------

// signatureMetadata builds the subroutine type node for a function being
// emitted, attributed to the function's own file.  Line-tables-only debug
// info elides the whole signature; otherwise the return type leads (null for
// unit) followed by the parameter types as a debugger should see them.
func (uc *UnitContext) signatureMetadata(fnType *types.FuncType, fileNode dib.FileNode) dib.TypeNode {
	if uc.sess.DebugInfo == session.DebugInfoLimited {
		return uc.builder().NewSubroutineType(fileNode, dib.DIFlagZero)
	}

	signature := make([]dib.TypeNode, 0, len(fnType.ParamTypes)+1)

	if types.IsUnit(fnType.ReturnType) {
		signature = append(signature, dib.TypeNode{})
	} else {
		signature = append(signature, uc.typeMetadata(fnType.ReturnType, nil))
	}

	// Spread functions collect their trailing arguments into a tuple at the
	// call boundary; the debugger should see the unpacked element types
	// rather than the tuple.  A final parameter that is not a tuple is
	// silently omitted from the signature instead.
	declared := fnType.ParamTypes
	if fnType.Spread && len(fnType.ParamTypes) > 0 {
		n := len(fnType.ParamTypes)
		declared = fnType.ParamTypes[:n-1]

		if tuple, ok := types.InnerType(fnType.ParamTypes[n-1]).(*types.TupleType); ok {
			unpacked := make([]types.Type, 0, n-1+len(tuple.ElementTypes))
			unpacked = append(unpacked, declared...)
			unpacked = append(unpacked, tuple.ElementTypes...)
			declared = unpacked
		}
	}

	for _, paramType := range declared {
		signature = append(signature, uc.paramTypeMetadata(paramType))
	}

	return uc.builder().NewSubroutineType(fileNode, dib.DIFlagZero, signature...)
}

// paramTypeMetadata returns the metadata node describing a parameter type.
func (uc *UnitContext) paramTypeMetadata(typ types.Type) dib.TypeNode {
	// MSVC's debug engine chokes on byte arrays passed by value, so those
	// parameters are described as const pointers to their element type.
	if uc.sess.Target.IsLikeMSVC {
		if at, ok := types.InnerType(typ).(*types.ArrayType); ok {
			if at.ElemType.Size() == 1 || types.IsZeroSize(at.ElemType) {
				return uc.typeMetadata(&types.PointerType{ElemType: at.ElemType, Const: true}, nil)
			}
		}
	}

	return uc.typeMetadata(typ, nil)
}

// templateParameters emits one template type parameter node per type argument
// of a generic instance.  Line-tables-only debug info emits none: the name
// suffix alone is enough for frame display.
func (uc *UnitContext) templateParameters(def *depm.Def, typeArgs []types.Type) []dib.MDNode {
	if uc.sess.DebugInfo != session.DebugInfoFull {
		return nil
	}

	paramNames := def.AllParamNames()
	if len(paramNames) != len(typeArgs) {
		report.ReportICE(
			"debuginfo: `%s` instantiated with %d type arguments for %d parameters",
			def.Name, len(typeArgs), len(paramNames),
		)
	}

	templateParams := make([]dib.MDNode, len(typeArgs))
	for i, typeArg := range typeArgs {
		actual := types.Normalize(typeArg)
		templateParams[i] = uc.builder().NewTemplateTypeParameter(dib.ScopeNode{}, paramNames[i], uc.typeMetadata(actual, def.Span))
	}

	return templateParams
}
