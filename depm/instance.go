package depm

import (
	"fmt"
	"strings"

	"oolong/types"
	"oolong/util"
)

// Instance represents a monomorphized instance of a definition: the
// definition together with the concrete type arguments it was instantiated
// with.  Non-generic definitions are instances with no type arguments.
type Instance struct {
	// Def is the instantiated definition.
	Def *Def

	// TypeArgs are the concrete types substituted for the definition's
	// generic parameters, enclosing generics first.  Empty for non-generic
	// functions.
	TypeArgs []types.Type
}

// noMangleAnnotations is a list of annotations that cause a function name not
// to be mangled (for linking purposes).
var noMangleAnnotations = []string{
	"entry",
	"extern",
}

// MangledName returns the instance's linker symbol name.  Mangled names take
// the form `p<unitID>.<path>` with a bracketed type-argument suffix for
// generic instances.  Definitions annotated for external linkage keep their
// declared name.
func (inst *Instance) MangledName() string {
	for annotName := range inst.Def.Annotations {
		if util.Contains(noMangleAnnotations, annotName) {
			return inst.Def.Name
		}
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("p%d.", inst.Def.Unit.ID))
	sb.WriteString(strings.Join(inst.Def.Path(), "."))

	if len(inst.TypeArgs) > 0 {
		sb.WriteRune('[')
		sb.WriteString(strings.Join(util.Map(inst.TypeArgs, types.Type.Repr), ","))
		sb.WriteRune(']')
	}

	return sb.String()
}
