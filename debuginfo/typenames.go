package debuginfo

import (
	"fmt"
	"strings"

	"oolong/report"
	"oolong/types"
)

// TypeName renders a type the way it should appear in debug info.  Debugger
// notation differs from diagnostic notation: function types read
// `fn(A) -> B` with the unit return elided, generic instances carry an
// angle-bracketed argument suffix, and qualified names are prefixed with the
// defining unit and module path.
func (uc *UnitContext) TypeName(typ types.Type, qualified bool) string {
	sb := strings.Builder{}
	uc.pushTypeName(typ, qualified, &sb)
	return sb.String()
}

// pushTypeName appends the debug info rendering of typ to sb.
func (uc *UnitContext) pushTypeName(typ types.Type, qualified bool, sb *strings.Builder) {
	switch v := typ.(type) {
	case types.PrimitiveType:
		sb.WriteString(v.Repr())
	case *types.PointerType:
		if v.Const {
			sb.WriteString("&const ")
		} else {
			sb.WriteRune('&')
		}

		uc.pushTypeName(v.ElemType, qualified, sb)
	case *types.BoxType:
		sb.WriteString("box ")
		uc.pushTypeName(v.ElemType, qualified, sb)
	case *types.ArrayType:
		sb.WriteRune('[')
		uc.pushTypeName(v.ElemType, qualified, sb)
		sb.WriteString(fmt.Sprintf("; %d]", v.Len))
	case *types.TupleType:
		sb.WriteRune('(')

		for i, elemType := range v.ElementTypes {
			if i > 0 {
				sb.WriteString(", ")
			}

			uc.pushTypeName(elemType, qualified, sb)
		}

		sb.WriteRune(')')
	case *types.FuncType:
		sb.WriteString("fn(")

		for i, paramType := range v.ParamTypes {
			if i > 0 {
				sb.WriteString(", ")
			}

			if v.Spread && i == len(v.ParamTypes)-1 {
				sb.WriteString("...")
			}

			uc.pushTypeName(paramType, qualified, sb)
		}

		sb.WriteRune(')')

		if !types.IsUnit(v.ReturnType) {
			sb.WriteString(" -> ")
			uc.pushTypeName(v.ReturnType, qualified, sb)
		}
	case *types.TypeParam:
		sb.WriteString(v.Name)
	case *types.Projection:
		if v.Resolved != nil {
			uc.pushTypeName(v.Resolved, qualified, sb)
		} else {
			sb.WriteString(v.Repr())
		}
	case types.NamedType:
		uc.pushNamedTypeName(v, qualified, sb)
	default:
		report.ReportICE("debuginfo: cannot render debug name for type `%s`", typ.Repr())
	}
}

// pushNamedTypeName appends the rendering of a nominal type: its (optionally
// qualified) name plus the type argument suffix for generic instances.
func (uc *UnitContext) pushNamedTypeName(nt types.NamedType, qualified bool, sb *strings.Builder) {
	if qualified {
		def := uc.defOf(nt)
		sb.WriteString(def.Unit.Name)
		sb.WriteRune('.')
		sb.WriteString(strings.Join(def.Path(), "."))
	} else {
		sb.WriteString(nt.Name())
	}

	uc.pushTypeArgs(nt.TypeArgs(), sb)
}

// pushTypeArgs appends the angle-bracketed type argument suffix of a generic
// instance.  No arguments yields no suffix.  Arguments are normalized first
// and always rendered qualified: debuggers match on these names across
// compilation units.  The suffix joins arguments with a bare comma, the same
// separator mangled names use.
func (uc *UnitContext) pushTypeArgs(typeArgs []types.Type, sb *strings.Builder) {
	if len(typeArgs) == 0 {
		return
	}

	sb.WriteRune('<')

	for i, typeArg := range typeArgs {
		if i > 0 {
			sb.WriteRune(',')
		}

		uc.pushTypeName(types.Normalize(typeArg), true, sb)
	}

	sb.WriteRune('>')
}
