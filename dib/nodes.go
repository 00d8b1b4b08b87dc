package dib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// NodeRef is the index of a debug metadata node within its builder.  The zero
// ref is the null node: it is a valid argument wherever a node is optional and
// never resolves to storage.
type NodeRef uint32

// MDNode is the common core of all debug metadata handles produced by a
// builder.  Handles are plain values: they are cheap to copy and compare and
// remain valid for the lifetime of the builder that created them.
type MDNode struct {
	ref NodeRef
}

// Ref returns the node's reference within its builder.
func (n MDNode) Ref() NodeRef {
	return n.ref
}

// IsNull returns whether the handle refers to the null node.
func (n MDNode) IsNull() bool {
	return n.ref == 0
}

// -----------------------------------------------------------------------------

// FileNode is a handle to a file metadata node.
type FileNode struct {
	MDNode
}

// ScopeNode is a handle to a metadata node usable as a lexical or namespace
// scope: a compile unit, file, namespace, subprogram, lexical block, or a
// composite type.
type ScopeNode struct {
	MDNode
}

// TypeNode is a handle to a type metadata node.
type TypeNode struct {
	MDNode
}

// SubprogramNode is a handle to a function (subprogram) metadata node.
type SubprogramNode struct {
	MDNode
}

// VariableNode is a handle to a local or global variable metadata node.
type VariableNode struct {
	MDNode
}

// LocationNode is a handle to a source location node.
type LocationNode struct {
	MDNode
}

// ExprNode is a handle to an address expression node.
type ExprNode struct {
	MDNode
}

// AsScope converts a file handle into a scope handle.
func (fn FileNode) AsScope() ScopeNode {
	return ScopeNode{fn.MDNode}
}

// AsScope converts a type handle into a scope handle.  Only composite types
// are meaningful scopes; the builder does not enforce this.
func (tn TypeNode) AsScope() ScopeNode {
	return ScopeNode{tn.MDNode}
}

// AsScope converts a subprogram handle into a scope handle.
func (sp SubprogramNode) AsScope() ScopeNode {
	return ScopeNode{sp.MDNode}
}

// -----------------------------------------------------------------------------

// NodeKind identifies what kind of metadata a node stores.
type NodeKind int

// Enumeration of metadata node kinds.  NKInvalid is the kind of the null
// node.
const (
	NKInvalid NodeKind = iota
	NKFile
	NKCompileUnit
	NKNamespace
	NKBasicType
	NKPointerType
	NKMemberType
	NKArrayType
	NKEnumerationType
	NKCompositeType
	NKSubroutineType
	NKSubrange
	NKSubprogram
	NKLexicalBlock
	NKTemplateTypeParam
	NKVariable
	NKGlobalVarExpr
	NKLocation
	NKExpression
)

// Node is the stored form of a metadata node.  Fields not meaningful for a
// node's kind are left zero.
type Node struct {
	// Kind identifies which fields below are meaningful.
	Kind NodeKind

	// Name is the node's display name, if any.
	Name string

	// LinkageName is the mangled name of a subprogram or global.
	LinkageName string

	// Scope is the node's enclosing scope, or null.
	Scope NodeRef

	// File is the file node the entity was declared in, or null.
	File NodeRef

	// Line and Col give the one-indexed source position, zero if unknown.
	Line, Col int

	// Dir is the directory component of a file node.
	Dir string

	// BitSize, BitAlign, and BitOffset give the type layout in bits.
	BitSize, BitAlign, BitOffset int

	// Flags is the node's debug info flag set.
	Flags DIFlags

	// Encoding is a basic type's DWARF encoding.
	Encoding DWARFTypeEncoding

	// Tag is the DWARF tag recorded for a variable node.
	Tag int

	// ArgIndex is a parameter variable's one-indexed position.
	ArgIndex int

	// Elem points at the element, base, or referenced node: the pointee of a
	// pointer type, the member base type, the array element type, the global
	// variable of a global expression, or the inlined-at location.
	Elem NodeRef

	// Members holds a node's ordered children: subroutine parameter types
	// (return first), composite members, array subranges, or subprogram
	// template parameters.
	Members []NodeRef

	// CompositeClass is the class of a composite placeholder.
	CompositeClass CompositeClass

	// UniqueID is a composite or enumeration type's identifier used for
	// cross-unit deduplication.
	UniqueID string

	// FwdDecl marks a composite placeholder that has not been populated.
	FwdDecl bool

	// Enumerators holds an enumeration type's name/value pairs.
	Enumerators []Enumerator

	// Ops holds an address expression's op code sequence.
	Ops []DWARFExprOpCode

	// Lo and Count describe an array subrange.
	Lo, Count int

	// AlwaysPreserve marks a variable that must survive optimization.
	AlwaysPreserve bool

	// IsDefinition marks a subprogram that has a body in this module.
	IsDefinition bool

	// ScopeLine is the line the subprogram's scope begins on.
	ScopeLine int

	// IsOptimized marks a subprogram compiled with optimizations.
	IsOptimized bool

	// IsLocalToUnit marks a subprogram or global not visible outside the
	// module.
	IsLocalToUnit bool

	// Producer, CompileFlags, and RuntimeVersion describe a compile unit.
	Producer       string
	CompileFlags   string
	RuntimeVersion int

	// Lang is a compile unit's source language.
	Lang DWARFSourceLanguage

	// EmissionKind is a compile unit's emission kind.
	EmissionKind DWARFEmissionKind

	// Global is the IR global a global variable expression attaches to.
	Global value.Value
}

// Enumerator is a single name/value pair of an enumeration type.
type Enumerator struct {
	Name  string
	Value int64
}

// -----------------------------------------------------------------------------

// ModuleFlag is a module-level flag attached during finalization.
type ModuleFlag struct {
	Behavior FlagBehavior
	Key      string
	Value    int
}

// MarkerID identifies a declare marker within its builder.
type MarkerID int

// Marker records a single variable declare intrinsic: which storage it
// annotates, the variable and expression nodes, the location it was created
// under, and the block it was appended to.
type Marker struct {
	// Storage is the IR value (usually an alloca) holding the variable.
	Storage value.Value

	// Variable is the variable node being declared.
	Variable NodeRef

	// Expr is the address expression applied to the storage.
	Expr NodeRef

	// CreateLoc is the location the declare was created with.
	CreateLoc NodeRef

	// InstLoc is the location later stamped onto the declare instruction from
	// the builder's location register.
	InstLoc NodeRef

	// Block is the basic block the declare was appended to.
	Block *ir.Block
}
