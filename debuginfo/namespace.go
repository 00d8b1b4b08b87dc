package debuginfo

import (
	"oolong/depm"
	"oolong/dib"
	"oolong/report"
	"oolong/types"
)

// defOf resolves the declaring definition of a named type.  A named type
// whose definition is missing from the table is an ICE: the front end
// registers every definition before any code is generated.
func (uc *UnitContext) defOf(nt types.NamedType) *depm.Def {
	def, ok := uc.defs[nt.DefID()]
	if !ok {
		report.ReportICE("debuginfo: missing definition for type `%s`", nt.Name())
	}

	return def
}

// namespaceOf returns the namespace scope node paralleling a module-like
// definition, creating the namespace chain on first use.  The unit root
// definition maps to a root namespace named after the unit.
func (uc *UnitContext) namespaceOf(def *depm.Def) dib.ScopeNode {
	if ns, ok := uc.namespaces[def.ID]; ok {
		return ns
	}

	var parent dib.ScopeNode
	if def.Kind != depm.UnitRootDef {
		if def.Parent == nil {
			report.ReportICE("debuginfo: missing parent of definition `%s`", def.Name)
		}

		parent = uc.namespaceOf(def.Parent)
	}

	ns := uc.builder().NewNamespace(parent, def.Name)
	uc.namespaces[def.ID] = ns
	return ns
}

// parentNamespace returns the namespace scope containing def's declaration.
func (uc *UnitContext) parentNamespace(def *depm.Def) dib.ScopeNode {
	if def.Parent == nil {
		report.ReportICE("debuginfo: missing parent of definition `%s`", def.Name)
	}

	return uc.namespaceOf(def.Parent)
}

// containingScope returns the scope a function's subprogram is nested under.
// Methods of inherent implementations on nominal types are scoped under the
// self type's metadata so debuggers can associate them with the type;
// everything else lives in the namespace paralleling its enclosing module.
func (uc *UnitContext) containingScope(def *depm.Def) dib.ScopeNode {
	if def.Parent != nil && def.Parent.Kind == depm.ImplDef {
		impl := def.Parent.Impl

		if impl.IsInherent() {
			// Boxes and pointers are not nominal: methods on them fall
			// through to the namespace path.
			switch types.InnerType(impl.SelfType).(type) {
			case *types.StructType, *types.EnumType, *types.UnionType:
				return uc.typeMetadata(impl.SelfType, def.Span).AsScope()
			}
		}

		// Trait implementation methods are scoped under the module
		// containing the implementation, not under the implemented type.
		return uc.parentNamespace(def.Parent)
	}

	return uc.parentNamespace(def)
}
