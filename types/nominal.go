package types

import (
	"strings"

	"oolong/report"
)

// NamedType represents a user-defined nominal type: a struct, enum, or union.
type NamedType interface {
	Type

	// The named type's name.
	Name() string

	// The ID of the compilation unit that the named type is defined in.
	UnitID() uint64

	// The ID of the definition which declares this named type.  This
	// effectively functions as a back reference to the declaring definition
	// without actually referencing the program model to get around Go's
	// import rules.
	DefID() uint64

	// The type arguments this named type was instantiated with.  Empty for
	// non-generic types.
	TypeArgs() []Type
}

/* -------------------------------------------------------------------------- */

// NamedTypeBase is the base type for all named types: structs, enums, etc.
type NamedTypeBase struct {
	// The named type's name.
	name string

	// The ID of the compilation unit that the named type is defined in.
	unitID uint64

	// The ID of the definition which declares this named type.
	defID uint64

	// The type arguments the named type was instantiated with.
	typeArgs []Type
}

// NewNamedTypeBase creates a new named type base.
func NewNamedTypeBase(name string, unitID, defID uint64, typeArgs []Type) NamedTypeBase {
	return NamedTypeBase{
		name:     name,
		unitID:   unitID,
		defID:    defID,
		typeArgs: typeArgs,
	}
}

func (nt *NamedTypeBase) equals(other Type) bool {
	if ont, ok := other.(NamedType); ok {
		if nt.name != ont.Name() || nt.unitID != ont.UnitID() || nt.defID != ont.DefID() {
			return false
		}

		oTypeArgs := ont.TypeArgs()
		if len(nt.typeArgs) != len(oTypeArgs) {
			return false
		}

		for i, typeArg := range nt.typeArgs {
			if !Equals(typeArg, oTypeArgs[i]) {
				return false
			}
		}

		return true
	}

	return false
}

func (nt *NamedTypeBase) Repr() string {
	if len(nt.typeArgs) == 0 {
		return nt.name
	}

	sb := strings.Builder{}
	sb.WriteString(nt.name)
	sb.WriteRune('[')

	for i, typeArg := range nt.typeArgs {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(typeArg.Repr())
	}

	sb.WriteRune(']')

	return sb.String()
}

func (nt *NamedTypeBase) Size() int {
	report.ReportICE("Size() not overridden on NamedType")
	return 0
}

func (nt *NamedTypeBase) Align() int {
	report.ReportICE("Align() not overridden on NamedType")
	return 0
}

func (nt *NamedTypeBase) Name() string {
	return nt.name
}

func (nt *NamedTypeBase) UnitID() uint64 {
	return nt.unitID
}

func (nt *NamedTypeBase) DefID() uint64 {
	return nt.defID
}

func (nt *NamedTypeBase) TypeArgs() []Type {
	return nt.typeArgs
}

/* -------------------------------------------------------------------------- */

// StructType represents a structure type.
type StructType struct {
	NamedTypeBase

	// The list of fields of the struct in order.
	Fields []StructField

	// A mapping between field names and their index within the struct.
	Indices map[string]int

	// The memoized struct size.
	size int

	// The memoized struct align.
	align int
}

// StructField represents a field of a structure type.
type StructField struct {
	// The field's name.
	Name string

	// The field's type.
	Type Type
}

func (st *StructType) Size() int {
	// Use the memoized size if possible.
	// Note: size could technically be zero if the struct is empty, but in that
	// case running this function again is trivial.
	if st.size != 0 {
		return st.size
	}

	size := 0

	// Calculate the size of struct such that all the fields are aligned.
	for _, field := range st.Fields {
		fieldAlign := field.Type.Align()

		if size%fieldAlign != 0 {
			size += fieldAlign - size%fieldAlign
		}

		size += field.Type.Size()
	}

	// Memoize the calculated size.
	st.size = size

	return size
}

func (st *StructType) Align() int {
	// Use the memoized alignment if possible.
	if st.align != 0 {
		return st.align
	}

	// The alignment of the struct is simply its maximum field alignment.
	maxAlign := 0

	for _, field := range st.Fields {
		fieldAlign := field.Type.Align()

		if fieldAlign > maxAlign {
			maxAlign = fieldAlign
		}
	}

	// Make sure we don't give it zero alignment.
	if maxAlign == 0 {
		maxAlign = 1
	}

	// Memoize the alignment.
	st.align = maxAlign

	return maxAlign
}

// GetFieldByName returns the struct field corresponding to the given name if it
// exists in the struct.
func (st *StructType) GetFieldByName(name string) (StructField, bool) {
	if index, ok := st.Indices[name]; ok {
		return st.Fields[index], true
	}

	return StructField{}, false
}

// FieldOffsets returns the byte offset of each struct field.
func (st *StructType) FieldOffsets() []int {
	offsets := make([]int, len(st.Fields))

	size := 0
	for i, field := range st.Fields {
		fieldAlign := field.Type.Align()

		if size%fieldAlign != 0 {
			size += fieldAlign - size%fieldAlign
		}

		offsets[i] = size
		size += field.Type.Size()
	}

	return offsets
}

/* -------------------------------------------------------------------------- */

// EnumType represents a tagged enum type: a discriminant together with a
// payload for each variant.
type EnumType struct {
	NamedTypeBase

	// The list of variants of the enum in order.  The variant's ordinal is its
	// index in this list.
	Variants []EnumVariant

	// The primitive type of the enum's discriminant.
	DiscrType PrimitiveType
}

// EnumVariant represents a single variant of an enum type.
type EnumVariant struct {
	// The variant's name.
	Name string

	// The types of the variant's payload fields.  Empty for payload-free
	// variants.
	Payload []Type
}

func (et *EnumType) Size() int {
	// The enum occupies its discriminant followed by the largest payload,
	// aligned to the payload alignment.
	payloadAlign := 1
	payloadSize := 0

	for _, variant := range et.Variants {
		payload := TupleType{ElementTypes: variant.Payload}

		if len(variant.Payload) > 0 {
			if align := payload.Align(); align > payloadAlign {
				payloadAlign = align
			}

			if size := payload.Size(); size > payloadSize {
				payloadSize = size
			}
		}
	}

	size := et.DiscrType.Size()
	if size%payloadAlign != 0 {
		size += payloadAlign - size%payloadAlign
	}

	return size + payloadSize
}

func (et *EnumType) Align() int {
	maxAlign := et.DiscrType.Align()

	for _, variant := range et.Variants {
		for _, payloadType := range variant.Payload {
			if align := payloadType.Align(); align > maxAlign {
				maxAlign = align
			}
		}
	}

	return maxAlign
}

// PayloadOffset returns the byte offset at which variant payloads begin.
func (et *EnumType) PayloadOffset() int {
	payloadAlign := 1

	for _, variant := range et.Variants {
		if len(variant.Payload) > 0 {
			payload := TupleType{ElementTypes: variant.Payload}

			if align := payload.Align(); align > payloadAlign {
				payloadAlign = align
			}
		}
	}

	offset := et.DiscrType.Size()
	if offset%payloadAlign != 0 {
		offset += payloadAlign - offset%payloadAlign
	}

	return offset
}

/* -------------------------------------------------------------------------- */

// UnionType represents an untagged union type: all fields overlap at offset
// zero and the program is responsible for knowing which is active.
type UnionType struct {
	NamedTypeBase

	// The list of fields of the union.
	Fields []StructField
}

func (ut *UnionType) Size() int {
	maxSize := 0

	for _, field := range ut.Fields {
		if size := field.Type.Size(); size > maxSize {
			maxSize = size
		}
	}

	return maxSize
}

func (ut *UnionType) Align() int {
	maxAlign := 1

	for _, field := range ut.Fields {
		if align := field.Type.Align(); align > maxAlign {
			maxAlign = align
		}
	}

	return maxAlign
}
