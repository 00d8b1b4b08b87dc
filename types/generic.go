package types

import (
	"oolong/report"
	"oolong/util"
)

// TypeParam represents an unsubstituted generic type parameter.
type TypeParam struct {
	// The index of the parameter within the full generic parameter list of
	// its definition, enclosing generics included.
	Idx int

	// The parameter's name as written in source.
	Name string
}

func (tp *TypeParam) equals(other Type) bool {
	if otp, ok := other.(*TypeParam); ok {
		return tp.Idx == otp.Idx
	}

	return false
}

func (tp *TypeParam) Size() int {
	report.ReportICE("called Size() on an unsubstituted type parameter `%s`", tp.Name)
	return 0
}

func (tp *TypeParam) Align() int {
	report.ReportICE("called Align() on an unsubstituted type parameter `%s`", tp.Name)
	return 0
}

func (tp *TypeParam) Repr() string {
	return tp.Name
}

/* -------------------------------------------------------------------------- */

// Projection represents an associated-type projection: a type of the form
// `T.Item` whose concrete value depends on the implementation selected for
// `T`.  The solver records the selected type in Resolved once it is known;
// until then the projection is unresolved.
type Projection struct {
	// The type the projection selects from.
	Root Type

	// The name of the associated type being selected.
	Name string

	// The concrete type the projection resolved to, or nil while unresolved.
	Resolved Type
}

func (pj *Projection) equals(other Type) bool {
	report.ReportICE("called equals() on an unresolved projection `%s`", pj.Repr())
	return false
}

func (pj *Projection) Size() int {
	if pj.Resolved != nil {
		return pj.Resolved.Size()
	}

	report.ReportICE("called Size() on an unresolved projection `%s`", pj.Repr())
	return 0
}

func (pj *Projection) Align() int {
	if pj.Resolved != nil {
		return pj.Resolved.Align()
	}

	report.ReportICE("called Align() on an unresolved projection `%s`", pj.Repr())
	return 0
}

func (pj *Projection) Repr() string {
	return pj.Root.Repr() + "." + pj.Name
}

/* -------------------------------------------------------------------------- */

// Subst substitutes the given type arguments into typ: each type parameter is
// replaced by the argument at its index.  Structural types are rebuilt as
// needed; named types are rebuilt with substituted type arguments but their
// bodies are left to the instantiation machinery.
func Subst(typ Type, args []Type) Type {
	switch v := typ.(type) {
	case *TypeParam:
		if v.Idx < 0 || len(args) <= v.Idx {
			report.ReportICE("no substitution for type parameter `%s` (index %d)", v.Name, v.Idx)
		}

		return args[v.Idx]
	case *PointerType:
		return &PointerType{ElemType: Subst(v.ElemType, args), Const: v.Const}
	case *BoxType:
		return &BoxType{ElemType: Subst(v.ElemType, args)}
	case *ArrayType:
		return &ArrayType{ElemType: Subst(v.ElemType, args), Len: v.Len}
	case *TupleType:
		return &TupleType{ElementTypes: util.Map(v.ElementTypes, func(et Type) Type {
			return Subst(et, args)
		})}
	case *FuncType:
		return &FuncType{
			ParamTypes: util.Map(v.ParamTypes, func(pt Type) Type {
				return Subst(pt, args)
			}),
			ReturnType: Subst(v.ReturnType, args),
			Spread:     v.Spread,
		}
	case *Projection:
		if v.Resolved != nil {
			return Subst(v.Resolved, args)
		}

		return &Projection{Root: Subst(v.Root, args), Name: v.Name}
	default:
		return typ
	}
}

// Normalize replaces every resolved projection within typ by its resolution,
// rebuilding containing types as needed.  Unresolved projections are left in
// place: it is up to the caller to decide whether encountering one afterwards
// is an error.
func Normalize(typ Type) Type {
	switch v := typ.(type) {
	case *Projection:
		if v.Resolved != nil {
			return Normalize(v.Resolved)
		}

		return v
	case *PointerType:
		return &PointerType{ElemType: Normalize(v.ElemType), Const: v.Const}
	case *BoxType:
		return &BoxType{ElemType: Normalize(v.ElemType)}
	case *ArrayType:
		return &ArrayType{ElemType: Normalize(v.ElemType), Len: v.Len}
	case *TupleType:
		return &TupleType{ElementTypes: util.Map(v.ElementTypes, Normalize)}
	case *FuncType:
		return &FuncType{
			ParamTypes: util.Map(v.ParamTypes, Normalize),
			ReturnType: Normalize(v.ReturnType),
			Spread:     v.Spread,
		}
	default:
		return typ
	}
}
