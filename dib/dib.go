// Package dib implements the debug info builder: an in-memory metadata arena
// with the same creation surface a native DWARF builder exposes.  Backends
// walk the arena to emit real metadata; tests walk it to check what the
// compiler asked for.
package dib

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// Builder builds the debug info metadata graph for a single module.  It is
// not safe for concurrent use.
type Builder struct {
	// mod is the IR module debug info is being built for.
	mod *ir.Module

	// nodes is the metadata arena.  Index 0 is reserved for the null node.
	nodes []Node

	// journal records the name of every builder call in order.
	journal []string

	// flags is the list of module flags recorded for finalization.
	flags []ModuleFlag

	// markers is the list of declare intrinsic markers in creation order.
	markers []Marker

	// subprograms maps IR functions to their attached subprogram nodes.
	subprograms map[*ir.Func]SubprogramNode

	// curLoc is the current debug location register; null when unknown.
	curLoc NodeRef

	// finalized and disposed track the builder's lifecycle state.
	finalized, disposed bool
}

// NewBuilder creates a new debug info builder for mod.
func NewBuilder(mod *ir.Module) *Builder {
	return &Builder{
		mod:         mod,
		nodes:       make([]Node, 1),
		subprograms: make(map[*ir.Func]SubprogramNode),
	}
}

// Module returns the IR module the builder is building debug info for.
func (b *Builder) Module() *ir.Module {
	return b.mod
}

// add appends a new node to the arena and journals the call that created it.
func (b *Builder) add(op string, node Node) NodeRef {
	if b.disposed {
		panic(fmt.Errorf("dib: %s called on a disposed builder", op))
	} else if b.finalized {
		panic(fmt.Errorf("dib: %s called on a finalized builder", op))
	}

	b.nodes = append(b.nodes, node)
	b.journal = append(b.journal, op)
	return NodeRef(len(b.nodes) - 1)
}

// node returns a pointer to the stored node for ref.
func (b *Builder) node(ref NodeRef) *Node {
	if ref == 0 || int(ref) >= len(b.nodes) {
		panic(fmt.Errorf("dib: invalid node ref %d", ref))
	}

	return &b.nodes[ref]
}

// -----------------------------------------------------------------------------

// Finalize resolves the metadata graph: it checks that every composite
// placeholder has been populated and freezes the arena.  It must be called
// exactly once, before Dispose.
func (b *Builder) Finalize() {
	if b.disposed {
		panic(fmt.Errorf("dib: Finalize called on a disposed builder"))
	} else if b.finalized {
		panic(fmt.Errorf("dib: Finalize called twice"))
	}

	for _, node := range b.nodes {
		if node.Kind == NKCompositeType && node.FwdDecl {
			panic(fmt.Errorf("dib: composite type `%s` was never populated", node.Name))
		}
	}

	b.journal = append(b.journal, "Finalize")
	b.finalized = true
}

// Dispose releases the builder.  Node creation panics afterwards; the arena
// itself remains readable so emission backends and tests can still walk it.
func (b *Builder) Dispose() {
	if b.disposed {
		panic(fmt.Errorf("dib: Dispose called twice"))
	}

	b.disposed = true
}

// Finalized returns whether Finalize has been called.
func (b *Builder) Finalized() bool {
	return b.finalized
}

// Disposed returns whether Dispose has been called.
func (b *Builder) Disposed() bool {
	return b.disposed
}

// AddModuleFlag records a module flag.  Flags attach to the module rather
// than the metadata graph, so recording them is legal even after Dispose.
func (b *Builder) AddModuleFlag(behavior FlagBehavior, key string, value int) {
	b.flags = append(b.flags, ModuleFlag{Behavior: behavior, Key: key, Value: value})
}

// -----------------------------------------------------------------------------

// NewFile creates a new debug descriptor for a file.
func (b *Builder) NewFile(fileName, dirName string) (dif FileNode) {
	dif.ref = b.add("NewFile", Node{
		Kind: NKFile,
		Name: fileName,
		Dir:  dirName,
	})
	return
}

// CompileUnitOptions represents the additional options used to create a
// compile unit.
type CompileUnitOptions struct {
	// The identifying string of the compiler which produced this compile unit.
	Producer string

	// Whether the compile unit is optimized.
	IsOptimized bool

	// The compile flags used to generate this compile unit.
	CompileFlags string

	// The runtime version (if relevant).
	RuntimeVersion int
}

// NewCompileUnit creates a new debug descriptor for a compile unit.
func (b *Builder) NewCompileUnit(
	file FileNode,
	sourceLang DWARFSourceLanguage,
	emissionKind DWARFEmissionKind,
	options CompileUnitOptions,
) (cu ScopeNode) {
	cu.ref = b.add("NewCompileUnit", Node{
		Kind:           NKCompileUnit,
		File:           file.ref,
		Lang:           sourceLang,
		EmissionKind:   emissionKind,
		Producer:       options.Producer,
		IsOptimized:    options.IsOptimized,
		CompileFlags:   options.CompileFlags,
		RuntimeVersion: options.RuntimeVersion,
	})
	return
}

// NewNamespace creates a new debug descriptor for a namespace.  A null parent
// scope makes the namespace a root.
func (b *Builder) NewNamespace(parentScope ScopeNode, name string) (ns ScopeNode) {
	ns.ref = b.add("NewNamespace", Node{
		Kind:  NKNamespace,
		Name:  name,
		Scope: parentScope.ref,
	})
	return
}

// -----------------------------------------------------------------------------

// NewBasicType creates a new DWARF basic type.
func (b *Builder) NewBasicType(name string, bitSize int, encoding DWARFTypeEncoding, flags DIFlags) (dit TypeNode) {
	dit.ref = b.add("NewBasicType", Node{
		Kind:     NKBasicType,
		Name:     name,
		BitSize:  bitSize,
		Encoding: encoding,
		Flags:    flags,
	})
	return
}

// NewPointerType creates a new DWARF pointer type.
func (b *Builder) NewPointerType(elemType TypeNode, bitSize, bitAlign int, name string) (dit TypeNode) {
	dit.ref = b.add("NewPointerType", Node{
		Kind:     NKPointerType,
		Name:     name,
		Elem:     elemType.ref,
		BitSize:  bitSize,
		BitAlign: bitAlign,
	})
	return
}

// NewMemberType creates a new DWARF member type: one field of a composite.
func (b *Builder) NewMemberType(
	scope ScopeNode,
	name string,
	file FileNode,
	line int,
	bitSize, bitAlign, bitOffset int,
	flags DIFlags,
	baseType TypeNode,
) (dit TypeNode) {
	dit.ref = b.add("NewMemberType", Node{
		Kind:      NKMemberType,
		Name:      name,
		Scope:     scope.ref,
		File:      file.ref,
		Line:      line,
		BitSize:   bitSize,
		BitAlign:  bitAlign,
		BitOffset: bitOffset,
		Flags:     flags,
		Elem:      baseType.ref,
	})
	return
}

// NewSubrange creates a debug descriptor for a value range.
func (b *Builder) NewSubrange(lowerBound, count int) (sr MDNode) {
	sr.ref = b.add("NewSubrange", Node{
		Kind:  NKSubrange,
		Lo:    lowerBound,
		Count: count,
	})
	return
}

// NewArrayType creates a new DWARF array type.
func (b *Builder) NewArrayType(bitSize, bitAlign int, elemType TypeNode, subranges ...MDNode) (dit TypeNode) {
	members := make([]NodeRef, len(subranges))
	for i, sr := range subranges {
		members[i] = sr.ref
	}

	dit.ref = b.add("NewArrayType", Node{
		Kind:     NKArrayType,
		BitSize:  bitSize,
		BitAlign: bitAlign,
		Elem:     elemType.ref,
		Members:  members,
	})
	return
}

// NewEnumerationType creates a new DWARF enumeration type.
func (b *Builder) NewEnumerationType(
	scope ScopeNode,
	name string,
	file FileNode,
	line int,
	bitSize, bitAlign int,
	enumerators []Enumerator,
	underlying TypeNode,
) (dit TypeNode) {
	dit.ref = b.add("NewEnumerationType", Node{
		Kind:        NKEnumerationType,
		Name:        name,
		Scope:       scope.ref,
		File:        file.ref,
		Line:        line,
		BitSize:     bitSize,
		BitAlign:    bitAlign,
		Enumerators: enumerators,
		Elem:        underlying.ref,
	})
	return
}

// NewSubroutineType creates a new DWARF subroutine type.  The first parameter
// type is the return type; the null node there denotes no return value.  An
// empty parameter list describes a function with an elided signature.
func (b *Builder) NewSubroutineType(file FileNode, flags DIFlags, paramTypes ...TypeNode) (dit TypeNode) {
	members := make([]NodeRef, len(paramTypes))
	for i, paramType := range paramTypes {
		members[i] = paramType.ref
	}

	dit.ref = b.add("NewSubroutineType", Node{
		Kind:    NKSubroutineType,
		File:    file.ref,
		Flags:   flags,
		Members: members,
	})
	return
}

// -----------------------------------------------------------------------------

// NewCompositePlaceholder creates a new DWARF composite type with no members:
// a forward declaration that SetMembers later completes.  Registering the
// placeholder before members are built is what makes recursive types
// representable.
func (b *Builder) NewCompositePlaceholder(
	class CompositeClass,
	scope ScopeNode,
	name, uniqueID string,
	file FileNode,
	line int,
	bitSize, bitAlign int,
	flags DIFlags,
) (dit TypeNode) {
	dit.ref = b.add("NewCompositePlaceholder", Node{
		Kind:           NKCompositeType,
		CompositeClass: class,
		Name:           name,
		UniqueID:       uniqueID,
		Scope:          scope.ref,
		File:           file.ref,
		Line:           line,
		BitSize:        bitSize,
		BitAlign:       bitAlign,
		Flags:          flags,
		FwdDecl:        true,
	})
	return
}

// SetMembers completes a composite placeholder with its member list.  Each
// placeholder may be completed exactly once; completing any other node, or
// completing a placeholder twice, panics.
func (b *Builder) SetMembers(composite TypeNode, members []TypeNode) {
	if b.disposed {
		panic(fmt.Errorf("dib: SetMembers called on a disposed builder"))
	}

	node := b.node(composite.ref)
	if node.Kind != NKCompositeType {
		panic(fmt.Errorf("dib: SetMembers called on a non-composite node"))
	} else if !node.FwdDecl {
		panic(fmt.Errorf("dib: composite type `%s` populated twice", node.Name))
	}

	refs := make([]NodeRef, len(members))
	for i, member := range members {
		refs[i] = member.ref
	}

	node.Members = refs
	node.FwdDecl = false
	b.journal = append(b.journal, "SetMembers")
}

// -----------------------------------------------------------------------------

// NewFunction creates a new debug descriptor for a function.  Any template
// type parameter nodes for a generic instance are attached at creation.
func (b *Builder) NewFunction(
	parentScope ScopeNode,
	file FileNode,
	name, mangledName string,
	line int,
	funcType TypeNode,
	internal bool,
	isDefinition bool,
	scopeLine int,
	flags DIFlags,
	isOptimized bool,
	templateParams ...MDNode,
) (dis SubprogramNode) {
	tparams := make([]NodeRef, len(templateParams))
	for i, tparam := range templateParams {
		tparams[i] = tparam.ref
	}

	dis.ref = b.add("NewFunction", Node{
		Kind:          NKSubprogram,
		Name:          name,
		LinkageName:   mangledName,
		Scope:         parentScope.ref,
		File:          file.ref,
		Line:          line,
		Elem:          funcType.ref,
		IsLocalToUnit: internal,
		IsDefinition:  isDefinition,
		ScopeLine:     scopeLine,
		Flags:         flags,
		IsOptimized:   isOptimized,
		Members:       tparams,
	})
	return
}

// Subprogram returns the subprogram attached to fn, if any.
func (b *Builder) Subprogram(fn *ir.Func) (SubprogramNode, bool) {
	dis, ok := b.subprograms[fn]
	return dis, ok
}

// SetSubprogram attaches a subprogram to fn.
func (b *Builder) SetSubprogram(fn *ir.Func, dis SubprogramNode) {
	b.subprograms[fn] = dis
}

// NewLexicalBlock creates a new debug descriptor for a lexical block.
func (b *Builder) NewLexicalBlock(scope ScopeNode, file FileNode, line, col int) (dis ScopeNode) {
	dis.ref = b.add("NewLexicalBlock", Node{
		Kind:  NKLexicalBlock,
		Scope: scope.ref,
		File:  file.ref,
		Line:  line,
		Col:   col,
	})
	return
}

// NewTemplateTypeParameter creates a new debug descriptor for one type
// parameter of a generic instance.  A null scope is permitted.
func (b *Builder) NewTemplateTypeParameter(scope ScopeNode, name string, typ TypeNode) (tp MDNode) {
	tp.ref = b.add("NewTemplateTypeParameter", Node{
		Kind:  NKTemplateTypeParam,
		Name:  name,
		Scope: scope.ref,
		Elem:  typ.ref,
	})
	return
}

// -----------------------------------------------------------------------------

// NewParameterVariable creates a new debug descriptor for a parameter
// variable.  argn is the parameter's one-based position.
func (b *Builder) NewParameterVariable(
	scope ScopeNode,
	file FileNode,
	name string,
	argn int,
	line int,
	paramType TypeNode,
	survivesOptimizations bool,
	flags DIFlags,
) (div VariableNode) {
	div.ref = b.add("NewParameterVariable", Node{
		Kind:           NKVariable,
		Tag:            DWTagArgVariable,
		Name:           name,
		Scope:          scope.ref,
		File:           file.ref,
		Line:           line,
		ArgIndex:       argn,
		Elem:           paramType.ref,
		AlwaysPreserve: survivesOptimizations,
		Flags:          flags,
	})
	return
}

// NewLocalVariable creates a new debug descriptor for a local variable.
func (b *Builder) NewLocalVariable(
	scope ScopeNode,
	file FileNode,
	name string,
	line int,
	typ TypeNode,
	bitAlign int,
	survivesOptimizations bool,
	flags DIFlags,
) (div VariableNode) {
	div.ref = b.add("NewLocalVariable", Node{
		Kind:           NKVariable,
		Tag:            DWTagAutoVariable,
		Name:           name,
		Scope:          scope.ref,
		File:           file.ref,
		Line:           line,
		Elem:           typ.ref,
		BitAlign:       bitAlign,
		AlwaysPreserve: survivesOptimizations,
		Flags:          flags,
	})
	return
}

// NewGlobalVariableExpression creates a new debug descriptor for a global
// variable declaration, bound to the IR global it describes.
func (b *Builder) NewGlobalVariableExpression(
	scope ScopeNode,
	name, linkageName string,
	file FileNode,
	line int,
	typ TypeNode,
	isLocalToUnit bool,
	global value.Value,
) (gve MDNode) {
	gve.ref = b.add("NewGlobalVariableExpression", Node{
		Kind:          NKGlobalVarExpr,
		Name:          name,
		LinkageName:   linkageName,
		Scope:         scope.ref,
		File:          file.ref,
		Line:          line,
		Elem:          typ.ref,
		IsLocalToUnit: isLocalToUnit,
		Global:        global,
	})
	return
}

// NewAddrExpression creates a new debug descriptor for a variable which has a
// complex address expression for its address: eg. a variable stored behind an
// environment pointer.  No ops describes a direct address.
func (b *Builder) NewAddrExpression(ops ...DWARFExprOpCode) (ae ExprNode) {
	ae.ref = b.add("NewAddrExpression", Node{
		Kind: NKExpression,
		Ops:  ops,
	})
	return
}

// -----------------------------------------------------------------------------

// NewLocation creates a new debug descriptor for a source location.
func (b *Builder) NewLocation(scope ScopeNode, line, col int) (dil LocationNode) {
	dil.ref = b.add("NewLocation", Node{
		Kind:  NKLocation,
		Scope: scope.ref,
		Line:  line,
		Col:   col,
	})
	return
}

// Location returns the builder's current debug location.
func (b *Builder) Location() (dil LocationNode, exists bool) {
	if b.curLoc == 0 {
		exists = false
	} else {
		dil.ref = b.curLoc
		exists = true
	}

	return
}

// SetLocation sets the builder's current debug location to loc.
func (b *Builder) SetLocation(loc LocationNode) {
	b.curLoc = loc.ref
}

// ClearLocation clears the builder's current debug location (sets it to
// unknown).
func (b *Builder) ClearLocation() {
	b.curLoc = 0
}

// -----------------------------------------------------------------------------

// InsertDeclareAtEnd records a declare intrinsic for a variable's storage at
// the end of bb and returns its marker.
func (b *Builder) InsertDeclareAtEnd(
	variable value.Value,
	varInfo VariableNode,
	addrExpr ExprNode,
	debugLoc LocationNode,
	bb *ir.Block,
) MarkerID {
	if b.disposed {
		panic(fmt.Errorf("dib: InsertDeclareAtEnd called on a disposed builder"))
	}

	b.markers = append(b.markers, Marker{
		Storage:   variable,
		Variable:  varInfo.ref,
		Expr:      addrExpr.ref,
		CreateLoc: debugLoc.ref,
		Block:     bb,
	})
	b.journal = append(b.journal, "InsertDeclareAtEnd")
	return MarkerID(len(b.markers) - 1)
}

// SetInstLocation stamps the declare marker m with the builder's current
// debug location.
func (b *Builder) SetInstLocation(m MarkerID) {
	if int(m) >= len(b.markers) {
		panic(fmt.Errorf("dib: invalid marker id %d", m))
	}

	b.markers[m].InstLoc = b.curLoc
}

// -----------------------------------------------------------------------------

// Node returns a copy of the stored node for ref.  The null ref yields a node
// of kind NKInvalid.
func (b *Builder) Node(ref NodeRef) Node {
	if ref == 0 {
		return Node{}
	}

	return *b.node(ref)
}

// NumNodes returns the number of nodes in the arena, excluding the null node.
func (b *Builder) NumNodes() int {
	return len(b.nodes) - 1
}

// Calls returns the number of builder calls journaled so far.
func (b *Builder) Calls() int {
	return len(b.journal)
}

// Markers returns the recorded declare markers in creation order.
func (b *Builder) Markers() []Marker {
	return b.markers
}

// ModuleFlags returns the recorded module flags in insertion order.
func (b *Builder) ModuleFlags() []ModuleFlag {
	return b.flags
}
