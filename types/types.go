package types

import (
	"fmt"
	"strings"

	"oolong/util"
)

// Type represents an Oolong data type.
type Type interface {
	// Returns whether this type is equal to the other type. This does not
	// account for inner types/type unwrapping: it should only be called within
	// methods of type instances.
	equals(other Type) bool

	// Returns the size of this type in bytes.
	Size() int

	// Returns the alignment of this type in bytes.
	Align() int

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the enumerated
// primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.  The values of all of the
// integral types correspond to the usable width of the type: eg. i32 has usable
// width of 31.
const (
	PrimTypeUnit = PrimitiveType(0)
	PrimTypeBool = PrimitiveType(1)
	PrimTypeI8   = PrimitiveType(7)
	PrimTypeU8   = PrimitiveType(8)
	PrimTypeI16  = PrimitiveType(15)
	PrimTypeU16  = PrimitiveType(16)
	PrimTypeI32  = PrimitiveType(31)
	PrimTypeU32  = PrimitiveType(32)
	PrimTypeI64  = PrimitiveType(63)
	PrimTypeU64  = PrimitiveType(64)
	PrimTypeF32  = PrimitiveType(2)
	PrimTypeF64  = PrimitiveType(3)
)

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Size() int {
	switch pt {
	case PrimTypeUnit:
		return 0
	case PrimTypeBool, PrimTypeI8, PrimTypeU8:
		return 1
	case PrimTypeI16, PrimTypeU16:
		return 2
	case PrimTypeI32, PrimTypeU32, PrimTypeF32:
		return 4
	default:
		return 8
	}
}

func (pt PrimitiveType) Align() int {
	// Zero-sized primitives still have an alignment of one byte.
	if pt == PrimTypeUnit {
		return 1
	}

	return pt.Size()
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case PrimTypeUnit:
		return "unit"
	case PrimTypeBool:
		return "bool"
	case PrimTypeI8:
		return "i8"
	case PrimTypeU8:
		return "u8"
	case PrimTypeI16:
		return "i16"
	case PrimTypeU16:
		return "u16"
	case PrimTypeI32:
		return "i32"
	case PrimTypeU32:
		return "u32"
	case PrimTypeI64:
		return "i64"
	case PrimTypeU64:
		return "u64"
	case PrimTypeF32:
		return "f32"
	default:
		return "f64"
	}
}

// IsIntegral returns whether this primitive is an integral type.
func (pt PrimitiveType) IsIntegral() bool {
	return PrimTypeI8 <= pt && pt <= PrimTypeU64
}

// IsFloating returns whether this primitive type is a floating-point type.
func (pt PrimitiveType) IsFloating() bool {
	return pt == PrimTypeF32 || pt == PrimTypeF64
}

// IsSigned returns whether this primitive type is a signed integral type.
func (pt PrimitiveType) IsSigned() bool {
	return pt.IsIntegral() && pt%2 == 1
}

// -----------------------------------------------------------------------------

// PointerType represents a pointer type.
type PointerType struct {
	// The element (content) type of the pointer.
	ElemType Type

	// Whether the pointer points to an immutable value.
	Const bool
}

func (pt *PointerType) equals(other Type) bool {
	if opt, ok := other.(*PointerType); ok {
		return Equals(pt.ElemType, opt.ElemType) && pt.Const == opt.Const
	}

	return false
}

func (pt *PointerType) Size() int {
	return util.PointerSize
}

func (pt *PointerType) Align() int {
	return util.PointerSize
}

func (pt *PointerType) Repr() string {
	if pt.Const {
		return "&const " + pt.ElemType.Repr()
	}

	return "&" + pt.ElemType.Repr()
}

// -----------------------------------------------------------------------------

// BoxType represents the built-in heap box type: an owning pointer to a heap
// allocation.  Boxes are nominal in the surface language but structural within
// the compiler.  Debuggers treat boxes as pointers, never as class types.
type BoxType struct {
	// The element (content) type of the box.
	ElemType Type
}

func (bt *BoxType) equals(other Type) bool {
	if obt, ok := other.(*BoxType); ok {
		return Equals(bt.ElemType, obt.ElemType)
	}

	return false
}

func (bt *BoxType) Size() int {
	return util.PointerSize
}

func (bt *BoxType) Align() int {
	return util.PointerSize
}

func (bt *BoxType) Repr() string {
	return "box " + bt.ElemType.Repr()
}

// -----------------------------------------------------------------------------

// FuncType represents a function type.
type FuncType struct {
	// The parameter types of the function.
	ParamTypes []Type

	// The return type of the function.
	ReturnType Type

	// Whether the function uses the spread calling convention: the final
	// declared parameter is a tuple of collected arguments which is unpacked
	// at the call boundary.
	Spread bool
}

func (ft *FuncType) equals(other Type) bool {
	if oft, ok := other.(*FuncType); ok {
		if len(ft.ParamTypes) != len(oft.ParamTypes) || ft.Spread != oft.Spread {
			return false
		}

		for i, paramtyp := range ft.ParamTypes {
			if !Equals(paramtyp, oft.ParamTypes[i]) {
				return false
			}
		}

		return Equals(ft.ReturnType, oft.ReturnType)
	}

	return false
}

func (ft *FuncType) Size() int {
	return util.PointerSize
}

func (ft *FuncType) Align() int {
	return util.PointerSize
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')

	for i, paramtyp := range ft.ParamTypes {
		if i != 0 {
			sb.WriteString(", ")
		}

		if ft.Spread && i == len(ft.ParamTypes)-1 {
			sb.WriteString("...")
		}

		sb.WriteString(paramtyp.Repr())
	}

	sb.WriteRune(')')

	sb.WriteString(" -> ")
	sb.WriteString(ft.ReturnType.Repr())

	return sb.String()
}

/* -------------------------------------------------------------------------- */

// TupleType represents a tuple type.
type TupleType struct {
	// The element types of the tuple.
	ElementTypes []Type

	// The memoized size and alignment.
	size  int
	align int
}

func (tt *TupleType) equals(other Type) bool {
	if ott, ok := other.(*TupleType); ok {
		if len(tt.ElementTypes) == len(ott.ElementTypes) {
			for i, elemType := range tt.ElementTypes {
				if !Equals(elemType, ott.ElementTypes[i]) {
					return false
				}
			}

			return true
		}
	}

	return false
}

func (tt *TupleType) Size() int {
	// Use the memoized size if possible.
	if tt.size != 0 {
		return tt.size
	}

	size := 0

	// Calculate the size of the tuple such that all the elements are aligned.
	for _, elemType := range tt.ElementTypes {
		elemAlign := elemType.Align()

		if size%elemAlign != 0 {
			size += elemAlign - size%elemAlign
		}

		size += elemType.Size()
	}

	// Memoize the calculated size.
	tt.size = size

	return size
}

func (tt *TupleType) Align() int {
	// Use the memoized alignment if possible.
	if tt.align != 0 {
		return tt.align
	}

	// The alignment of the tuple is simply its maximum element alignment.
	maxAlign := 0

	for _, elemType := range tt.ElementTypes {
		elemAlign := elemType.Align()

		if elemAlign > maxAlign {
			maxAlign = elemAlign
		}
	}

	// Make sure we don't give it zero alignment.
	if maxAlign == 0 {
		maxAlign = 1
	}

	// Memoize the alignment.
	tt.align = maxAlign

	return maxAlign
}

func (tt *TupleType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')

	for i, elemType := range tt.ElementTypes {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(elemType.Repr())
	}

	sb.WriteRune(')')

	return sb.String()
}

// ElementOffsets returns the byte offset of each tuple element.
func (tt *TupleType) ElementOffsets() []int {
	offsets := make([]int, len(tt.ElementTypes))

	size := 0
	for i, elemType := range tt.ElementTypes {
		elemAlign := elemType.Align()

		if size%elemAlign != 0 {
			size += elemAlign - size%elemAlign
		}

		offsets[i] = size
		size += elemType.Size()
	}

	return offsets
}

/* -------------------------------------------------------------------------- */

// ArrayType represents a fixed-length array type.
type ArrayType struct {
	// The element type of the array.
	ElemType Type

	// The number of elements in the array.
	Len int
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return Equals(at.ElemType, oat.ElemType) && at.Len == oat.Len
	}

	return false
}

func (at *ArrayType) Size() int {
	// Array elements are laid out at the element type's aligned stride.
	stride := at.ElemType.Size()
	elemAlign := at.ElemType.Align()

	if stride%elemAlign != 0 {
		stride += elemAlign - stride%elemAlign
	}

	return stride * at.Len
}

func (at *ArrayType) Align() int {
	return at.ElemType.Align()
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("[%s; %d]", at.ElemType.Repr(), at.Len)
}
