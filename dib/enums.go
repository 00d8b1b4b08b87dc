package dib

// DIFlags represents a set of debug info node flags.
type DIFlags int

// Enumeration of the debug info flags understood by the builder.
const (
	DIFlagZero           DIFlags = 0
	DIFlagPrivate        DIFlags = 1
	DIFlagProtected      DIFlags = 2
	DIFlagPublic         DIFlags = 3
	DIFlagFwdDecl        DIFlags = 1 << 2
	DIFlagVirtual        DIFlags = 1 << 5
	DIFlagArtificial     DIFlags = 1 << 6
	DIFlagPrototyped     DIFlags = 1 << 8
	DIFlagNoReturn       DIFlags = 1 << 20
	DIFlagMainSubprogram DIFlags = 1 << 21
)

// -----------------------------------------------------------------------------

// DWARFSourceLanguage represents a DWARF source language code.
type DWARFSourceLanguage int

// Enumeration of the source languages the compiler emits.
const (
	DWARFSourceLanguageC      DWARFSourceLanguage = 0x0002
	DWARFSourceLanguageOolong DWARFSourceLanguage = 0x8001
)

// -----------------------------------------------------------------------------

// DWARFEmissionKind represents how much debug info a compile unit carries.
type DWARFEmissionKind int

// Enumeration of DWARF emission kinds.
const (
	DWARFEmissionNone DWARFEmissionKind = iota
	DWARFEmissionFull
	DWARFEmissionLineTablesOnly
)

// -----------------------------------------------------------------------------

// DWARFTypeEncoding represents a DWARF basic type encoding.
type DWARFTypeEncoding int

// Enumeration of DWARF type encodings.
const (
	AddressTypeEncoding DWARFTypeEncoding = iota + 1
	BooleanTypeEncoding
	ComplexFloatTypeEncoding
	FloatTypeEncoding
	SignedTypeEncoding
	SignedCharTypeEncoding
	UnsignedTypeEncoding
	UnsignedCharTypeEncoding
)

// -----------------------------------------------------------------------------

// DWARFExprOpCode represents a DWARF expression op code.
type DWARFExprOpCode int64

// Enumeration of DWARF expression op codes supported by the builder.
const (
	DerefExprOpCode      DWARFExprOpCode = 0x06
	OverExprOpCode       DWARFExprOpCode = 0x14
	SwapExprOpCode       DWARFExprOpCode = 0x16
	MinusExprOpCode      DWARFExprOpCode = 0x1c
	PlusExprOpCode       DWARFExprOpCode = 0x22
	PlusUConstExprOpCode DWARFExprOpCode = 0x23
	StackValueExprOpCode DWARFExprOpCode = 0x9f
)

// -----------------------------------------------------------------------------

// DWARF tags recorded on variable nodes.  The distinction between formal
// parameters and auto variables survives into the final debug format.
const (
	DWTagAutoVariable = 0x100
	DWTagArgVariable  = 0x101
)

// -----------------------------------------------------------------------------

// CompositeClass indicates what kind of composite a placeholder describes.
// Must be one of the enumerated composite classes.
type CompositeClass int

// Enumeration of composite classes.
const (
	StructClass CompositeClass = iota
	UnionClass
	VariantClass
)

// -----------------------------------------------------------------------------

// FlagBehavior controls how the linker merges a module flag across modules.
type FlagBehavior int

// Enumeration of module flag behaviors.
const (
	ErrorFlagBehavior FlagBehavior = iota + 1
	WarningFlagBehavior
	RequireFlagBehavior
	OverrideFlagBehavior
	AppendFlagBehavior
	AppendUniqueFlagBehavior
	MaxFlagBehavior
)
