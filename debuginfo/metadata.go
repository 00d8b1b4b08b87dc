package debuginfo

import (
	"fmt"
	"strings"

	"oolong/dib"
	"oolong/report"
	"oolong/types"
)

// The member name debuggers look for to find an enum's discriminant.
const discrMemberName = "OOLONG$ENUM$DISR"

// uniqueTypeKey renders the canonical identity key of a type.  Two types
// share a key exactly when they must share metadata, so nominal identity
// (unit, definition, type arguments) is part of the key and same-named types
// from different units stay distinct.
func uniqueTypeKey(typ types.Type) string {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return v.Repr()
	case *types.PointerType:
		if v.Const {
			return "&const " + uniqueTypeKey(v.ElemType)
		}

		return "&" + uniqueTypeKey(v.ElemType)
	case *types.BoxType:
		return "box " + uniqueTypeKey(v.ElemType)
	case *types.ArrayType:
		return fmt.Sprintf("[%s; %d]", uniqueTypeKey(v.ElemType), v.Len)
	case *types.TupleType:
		sb := strings.Builder{}
		sb.WriteRune('(')

		for i, elemType := range v.ElementTypes {
			if i != 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(uniqueTypeKey(elemType))
		}

		sb.WriteRune(')')
		return sb.String()
	case *types.FuncType:
		sb := strings.Builder{}
		sb.WriteString("fn(")

		for i, paramType := range v.ParamTypes {
			if i != 0 {
				sb.WriteString(", ")
			}

			if v.Spread && i == len(v.ParamTypes)-1 {
				sb.WriteString("...")
			}

			sb.WriteString(uniqueTypeKey(paramType))
		}

		sb.WriteString(") -> ")
		sb.WriteString(uniqueTypeKey(v.ReturnType))
		return sb.String()
	case *types.TypeParam:
		// Type parameters never get metadata; the key only has to be benign.
		return fmt.Sprintf("$param%d", v.Idx)
	case *types.Projection:
		if v.Resolved != nil {
			return uniqueTypeKey(v.Resolved)
		}

		return uniqueTypeKey(v.Root) + "." + v.Name
	case types.NamedType:
		sb := strings.Builder{}

		// Names are not stable identity: two units may declare types with the
		// same name, so the key is built from IDs instead.
		fmt.Fprintf(&sb, "u%d.d%d", v.UnitID(), v.DefID())

		if typeArgs := v.TypeArgs(); len(typeArgs) > 0 {
			sb.WriteRune('[')

			for i, typeArg := range typeArgs {
				if i != 0 {
					sb.WriteString(", ")
				}

				sb.WriteString(uniqueTypeKey(typeArg))
			}

			sb.WriteRune(']')
		}

		return sb.String()
	default:
		report.ReportICE("debuginfo: cannot compute unique key for type `%s`", typ.Repr())
		return ""
	}
}

// -----------------------------------------------------------------------------

// typeMetadata returns the metadata node describing typ, creating it on first
// use.  The span locates the use that forced creation and is only consulted
// for internal error reporting; it may be nil.
func (uc *UnitContext) typeMetadata(typ types.Type, span *report.TextSpan) dib.TypeNode {
	typ = types.Normalize(typ)

	key := uniqueTypeKey(typ)
	if node, ok := uc.typeMap[key]; ok {
		return node
	}

	node := uc.createTypeMetadata(typ, key, span)

	// Composite creation registers its placeholder itself before descending
	// into members; storing here again is a no-op for those.
	uc.typeMap[key] = node
	return node
}

func (uc *UnitContext) createTypeMetadata(typ types.Type, key string, span *report.TextSpan) dib.TypeNode {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return uc.basicTypeMetadata(v)
	case *types.PointerType:
		return uc.pointerTypeMetadata(typ, v.ElemType, span)
	case *types.BoxType:
		// Debuggers see boxes as plain pointers to their contents.
		return uc.pointerTypeMetadata(typ, v.ElemType, span)
	case *types.ArrayType:
		elemNode := uc.typeMetadata(v.ElemType, span)
		subrange := uc.builder().NewSubrange(0, v.Len)
		return uc.builder().NewArrayType(typ.Size()*8, typ.Align()*8, elemNode, subrange)
	case *types.TupleType:
		return uc.tupleTypeMetadata(v, key, span)
	case *types.FuncType:
		return uc.fnPointerTypeMetadata(v, span)
	case *types.StructType:
		return uc.structTypeMetadata(v, key, span)
	case *types.UnionType:
		return uc.unionTypeMetadata(v, key, span)
	case *types.EnumType:
		return uc.enumTypeMetadata(v, key, span)
	case *types.TypeParam:
		report.ReportICE("debuginfo: unsubstituted type parameter `%s` in metadata creation%s", v.Name, spanSuffix(span))
	case *types.Projection:
		report.ReportICE("debuginfo: unresolved projection `%s` in metadata creation%s", v.Repr(), spanSuffix(span))
	default:
		report.ReportICE("debuginfo: cannot create metadata for type `%s`%s", typ.Repr(), spanSuffix(span))
	}

	return dib.TypeNode{}
}

// -----------------------------------------------------------------------------

// basicTypeMetadata creates the metadata node for a primitive type.
func (uc *UnitContext) basicTypeMetadata(pt types.PrimitiveType) dib.TypeNode {
	var encoding dib.DWARFTypeEncoding
	switch {
	case pt == types.PrimTypeUnit:
		// The unit type shows up as a zero-sized unsigned basic type.
		encoding = dib.UnsignedTypeEncoding
	case pt == types.PrimTypeBool:
		encoding = dib.BooleanTypeEncoding
	case pt.IsFloating():
		encoding = dib.FloatTypeEncoding
	case pt.IsSigned():
		encoding = dib.SignedTypeEncoding
	default:
		encoding = dib.UnsignedTypeEncoding
	}

	return uc.builder().NewBasicType(pt.Repr(), pt.Size()*8, encoding, dib.DIFlagZero)
}

// pointerTypeMetadata creates the metadata node for a pointer-shaped type
// with the given pointee.
func (uc *UnitContext) pointerTypeMetadata(typ, elemType types.Type, span *report.TextSpan) dib.TypeNode {
	elemNode := uc.typeMetadata(elemType, span)
	return uc.builder().NewPointerType(elemNode, typ.Size()*8, typ.Align()*8, uc.TypeName(typ, false))
}

// fnPointerTypeMetadata creates the metadata for a function type: a pointer
// to a subroutine node carrying the declared signature.  Function values are
// pointers, so the pointer wrapper is what variables of this type get.
func (uc *UnitContext) fnPointerTypeMetadata(ft *types.FuncType, span *report.TextSpan) dib.TypeNode {
	signature := make([]dib.TypeNode, 0, len(ft.ParamTypes)+1)

	// The return type leads the signature; unit returns become the null node
	// which debuggers read as void.
	if types.IsUnit(ft.ReturnType) {
		signature = append(signature, dib.TypeNode{})
	} else {
		signature = append(signature, uc.typeMetadata(ft.ReturnType, span))
	}

	for _, paramType := range ft.ParamTypes {
		signature = append(signature, uc.typeMetadata(paramType, span))
	}

	subroutine := uc.builder().NewSubroutineType(uc.unknownFileMetadata(), dib.DIFlagZero, signature...)
	return uc.builder().NewPointerType(subroutine, ft.Size()*8, ft.Align()*8, uc.TypeName(ft, false))
}

// -----------------------------------------------------------------------------

// tupleTypeMetadata creates the metadata node for a tuple as a struct with
// positional members named `__0`, `__1`, and so on.
func (uc *UnitContext) tupleTypeMetadata(tt *types.TupleType, key string, span *report.TextSpan) dib.TypeNode {
	placeholder := uc.builder().NewCompositePlaceholder(
		dib.StructClass,
		dib.ScopeNode{},
		uc.TypeName(tt, false),
		key,
		uc.unknownFileMetadata(),
		0,
		tt.Size()*8,
		tt.Align()*8,
		dib.DIFlagZero,
	)

	// Register before descending into members so self-referential element
	// types find the placeholder instead of recursing forever.
	uc.typeMap[key] = placeholder

	offsets := tt.ElementOffsets()
	members := make([]dib.TypeNode, len(tt.ElementTypes))
	for i, elemType := range tt.ElementTypes {
		members[i] = uc.builder().NewMemberType(
			placeholder.AsScope(),
			fmt.Sprintf("__%d", i),
			uc.unknownFileMetadata(),
			0,
			elemType.Size()*8,
			elemType.Align()*8,
			offsets[i]*8,
			dib.DIFlagZero,
			uc.typeMetadata(elemType, span),
		)
	}

	uc.completeComposite(placeholder, members)
	return placeholder
}

// structTypeMetadata creates the metadata node for a struct type.
func (uc *UnitContext) structTypeMetadata(st *types.StructType, key string, span *report.TextSpan) dib.TypeNode {
	def := uc.defOf(st)
	scope := uc.parentNamespace(def)
	fileNode := uc.fileMetadataFor(def.File)

	placeholder := uc.builder().NewCompositePlaceholder(
		dib.StructClass,
		scope,
		uc.TypeName(st, false),
		key,
		fileNode,
		spanLine(def.Span),
		st.Size()*8,
		st.Align()*8,
		dib.DIFlagZero,
	)

	uc.typeMap[key] = placeholder

	offsets := st.FieldOffsets()
	members := make([]dib.TypeNode, len(st.Fields))
	for i, field := range st.Fields {
		members[i] = uc.builder().NewMemberType(
			placeholder.AsScope(),
			field.Name,
			uc.unknownFileMetadata(),
			0,
			field.Type.Size()*8,
			field.Type.Align()*8,
			offsets[i]*8,
			dib.DIFlagZero,
			uc.typeMetadata(field.Type, span),
		)
	}

	uc.completeComposite(placeholder, members)
	return placeholder
}

// unionTypeMetadata creates the metadata node for a union type.  All members
// sit at offset zero.
func (uc *UnitContext) unionTypeMetadata(ut *types.UnionType, key string, span *report.TextSpan) dib.TypeNode {
	def := uc.defOf(ut)
	scope := uc.parentNamespace(def)
	fileNode := uc.fileMetadataFor(def.File)

	placeholder := uc.builder().NewCompositePlaceholder(
		dib.UnionClass,
		scope,
		uc.TypeName(ut, false),
		key,
		fileNode,
		spanLine(def.Span),
		ut.Size()*8,
		ut.Align()*8,
		dib.DIFlagZero,
	)

	uc.typeMap[key] = placeholder

	members := make([]dib.TypeNode, len(ut.Fields))
	for i, field := range ut.Fields {
		members[i] = uc.builder().NewMemberType(
			placeholder.AsScope(),
			field.Name,
			uc.unknownFileMetadata(),
			0,
			field.Type.Size()*8,
			field.Type.Align()*8,
			0,
			dib.DIFlagZero,
			uc.typeMetadata(field.Type, span),
		)
	}

	uc.completeComposite(placeholder, members)
	return placeholder
}

// enumTypeMetadata creates the metadata node for a tagged enum: a variant
// composite whose first member is the discriminant and whose remaining
// members describe each payload-carrying variant as a tuple at the payload
// offset.
func (uc *UnitContext) enumTypeMetadata(et *types.EnumType, key string, span *report.TextSpan) dib.TypeNode {
	def := uc.defOf(et)
	scope := uc.parentNamespace(def)
	fileNode := uc.fileMetadataFor(def.File)
	line := spanLine(def.Span)

	placeholder := uc.builder().NewCompositePlaceholder(
		dib.VariantClass,
		scope,
		uc.TypeName(et, false),
		key,
		fileNode,
		line,
		et.Size()*8,
		et.Align()*8,
		dib.DIFlagZero,
	)

	uc.typeMap[key] = placeholder

	discrNode := uc.enumDiscrMetadata(et, def.ID, scope, fileNode, line)

	members := []dib.TypeNode{
		uc.builder().NewMemberType(
			placeholder.AsScope(),
			discrMemberName,
			uc.unknownFileMetadata(),
			0,
			et.DiscrType.Size()*8,
			et.DiscrType.Align()*8,
			0,
			dib.DIFlagArtificial,
			discrNode,
		),
	}

	payloadOffset := et.PayloadOffset() * 8
	for _, variant := range et.Variants {
		if len(variant.Payload) == 0 {
			continue
		}

		payload := &types.TupleType{ElementTypes: variant.Payload}
		members = append(members, uc.builder().NewMemberType(
			placeholder.AsScope(),
			variant.Name,
			uc.unknownFileMetadata(),
			0,
			payload.Size()*8,
			payload.Align()*8,
			payloadOffset,
			dib.DIFlagZero,
			uc.typeMetadata(payload, span),
		))
	}

	uc.completeComposite(placeholder, members)
	return placeholder
}

// enumDiscrMetadata returns the enumeration node describing an enum's
// discriminant, creating it on first use.  The node is keyed by definition
// and discriminant primitive so every instantiation of a generic enum shares
// one node.
func (uc *UnitContext) enumDiscrMetadata(et *types.EnumType, defID uint64, scope dib.ScopeNode, fileNode dib.FileNode, line int) dib.TypeNode {
	dkey := discrKey{defID: defID, prim: et.DiscrType}
	if node, ok := uc.enumDiscrTypes[dkey]; ok {
		return node
	}

	enumerators := make([]dib.Enumerator, len(et.Variants))
	for i, variant := range et.Variants {
		enumerators[i] = dib.Enumerator{Name: variant.Name, Value: int64(i)}
	}

	node := uc.builder().NewEnumerationType(
		scope,
		et.Name(),
		fileNode,
		line,
		et.DiscrType.Size()*8,
		et.DiscrType.Align()*8,
		enumerators,
		uc.typeMetadata(et.DiscrType, nil),
	)

	uc.enumDiscrTypes[dkey] = node
	return node
}

// -----------------------------------------------------------------------------

// completeComposite populates a composite placeholder with its members,
// enforcing that every placeholder is completed exactly once.
func (uc *UnitContext) completeComposite(placeholder dib.TypeNode, members []dib.TypeNode) {
	if _, done := uc.completedComposites[placeholder]; done {
		report.ReportICE("debuginfo: composite type `%s` populated twice", uc.builder().Node(placeholder.Ref()).Name)
	}

	uc.completedComposites[placeholder] = struct{}{}
	uc.builder().SetMembers(placeholder, members)
}
