package depm

import (
	"oolong/report"
	"oolong/types"
)

// Def represents a definition in an Oolong program: a function, a nominal
// type, an implementation block, a global variable, or a module.  Definitions
// form a tree rooted at their unit's root definition.
type Def struct {
	// ID is the unique ID of this definition.
	ID uint64

	// Unit is the compilation unit the definition belongs to.
	Unit *Unit

	// Kind indicates what kind of definition this is.  Must be one of the
	// enumerated definition kinds.
	Kind int

	// Name is the definition's declared name.
	Name string

	// Parent is the lexically enclosing definition.  This is nil only for
	// unit roots: every other definition has a parent.
	Parent *Def

	// File is the source file containing the definition.
	File *SourceFile

	// Span is the span of the whole definition.  A nil span marks a synthetic
	// definition fabricated during lowering with no stable source text.
	Span *report.TextSpan

	// BodySpan is the span of the definition's body, if it has one.  For
	// functions this locates the opening of the executable body.
	BodySpan *report.TextSpan

	// Annotations is the map of all annotations specified for this
	// definition.  Annotation flags have an empty string as their value.
	Annotations map[string]string

	// Public indicates whether or not this definition is externally visible.
	Public bool

	// Generics describes the definition's generic parameters.  This is nil
	// for non-generic definitions.
	Generics *Generics

	// Impl carries the implementation information for impl definitions and is
	// nil for all other kinds.
	Impl *ImplInfo
}

// Enumeration of definition kinds.
const (
	UnitRootDef = iota // The root definition of a unit.
	ModuleDef          // A nested module.
	FuncDef            // A function or method.
	StructDef          // A struct type definition.
	EnumDef            // An enum type definition.
	UnionDef           // A union type definition.
	ImplDef            // An implementation block.
	GlobalVarDef       // A global variable.
)

// DefTable maps definition IDs to their definitions across all units of a
// build.  Named types carry only definition IDs, so consumers that need the
// declaring definition back resolve it through the table.
type DefTable map[uint64]*Def

// Add inserts def into the table.
func (dt DefTable) Add(def *Def) {
	dt[def.ID] = def
}

// -----------------------------------------------------------------------------

// HasAnnotation returns whether the definition carries the named annotation.
func (d *Def) HasAnnotation(name string) bool {
	if d.Annotations == nil {
		return false
	}

	_, ok := d.Annotations[name]
	return ok
}

// Path returns the definition's path segments from its unit root (exclusive)
// down to the definition itself (inclusive).
func (d *Def) Path() []string {
	if d.Kind == UnitRootDef {
		return nil
	}

	if d.Parent == nil {
		report.ReportICE("definition `%s` has no parent", d.Name)
	}

	return append(d.Parent.Path(), d.Name)
}

// -----------------------------------------------------------------------------

// Generics describes the generic parameters of a definition.
type Generics struct {
	// Parent is the enclosing generic definition whose parameters are in
	// scope within this definition, or nil if there is none.
	Parent *Def

	// ParamNames lists the names of the definition's own generic parameters
	// in declaration order.
	ParamNames []string
}

// AllParamNames returns the names of every generic parameter in scope for the
// definition: parameters of enclosing generic definitions come first, then
// the definition's own parameters.
func (d *Def) AllParamNames() []string {
	if d.Generics == nil {
		return nil
	}

	var names []string
	if d.Generics.Parent != nil {
		names = d.Generics.Parent.AllParamNames()
	}

	return append(names, d.Generics.ParamNames...)
}

// -----------------------------------------------------------------------------

// ImplInfo carries the details of an implementation block definition.
type ImplInfo struct {
	// SelfType is the type the implementation is for.
	SelfType types.Type

	// TraitName is the name of the trait being implemented, or the empty
	// string for inherent implementations.
	TraitName string
}

// IsInherent returns whether the implementation is inherent: an impl block
// directly on a type rather than a trait implementation.
func (ii *ImplInfo) IsInherent() bool {
	return ii.TraitName == ""
}
