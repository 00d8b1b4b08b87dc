package types

// Equals returns whether two types are equal.
func Equals(a, b Type) bool {
	return InnerType(a).equals(InnerType(b))
}

// InnerType returns the "inner" type of typ.  For most types, this is just an
// identity function; however, for types such as resolved projections which
// essentially just wrap other types, this method is useful.
func InnerType(typ Type) Type {
	if pj, ok := typ.(*Projection); ok && pj.Resolved != nil {
		return InnerType(pj.Resolved)
	}

	return typ
}

// IsUnit returns whether the given type is the unit type.
func IsUnit(typ Type) bool {
	if pt, ok := InnerType(typ).(PrimitiveType); ok {
		return pt == PrimTypeUnit
	}

	return false
}

// IsZeroSize returns whether values of the given type occupy no storage.
func IsZeroSize(typ Type) bool {
	switch v := InnerType(typ).(type) {
	case PrimitiveType:
		return v == PrimTypeUnit
	case *TupleType:
		for _, elemType := range v.ElementTypes {
			if !IsZeroSize(elemType) {
				return false
			}
		}

		return true
	case *ArrayType:
		return v.Len == 0 || IsZeroSize(v.ElemType)
	case *StructType:
		for _, field := range v.Fields {
			if !IsZeroSize(field.Type) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
