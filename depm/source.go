package depm

// Unit represents an Oolong compilation unit: a single package compiled into
// one object file.  Units are the granularity of separate compilation, and
// each unit gets its own debug-info context during code generation.
type Unit struct {
	// ID is the unique ID of this unit.
	ID uint64

	// Name is the unit's package name.
	Name string

	// RootDir is the absolute path to the root directory of the unit.
	RootDir string

	// Files is a list of all the Oolong source files that belong to this unit.
	Files []*SourceFile

	// RootDef is the definition representing the unit itself: the root of the
	// unit's definition tree.  All top level definitions in the unit have the
	// root as their parent.
	RootDef *Def
}

// NewUnit creates a new unit rooted at the given directory.
func NewUnit(name, rootDir string) *Unit {
	u := &Unit{
		ID:      GenerateIDFromPath(rootDir),
		Name:    name,
		RootDir: rootDir,
	}

	u.RootDef = &Def{
		ID:   u.ID,
		Unit: u,
		Kind: UnitRootDef,
		Name: name,
	}

	return u
}

// AddFile adds a source file with the given paths to the unit.
func (u *Unit) AddFile(absPath, reprPath string) *SourceFile {
	file := &SourceFile{
		Parent:   u,
		AbsPath:  absPath,
		ReprPath: reprPath,
	}

	u.Files = append(u.Files, file)
	return file
}

// -----------------------------------------------------------------------------

// SourceFile represents an Oolong source file.
type SourceFile struct {
	// Parent is the parent unit of the file.
	Parent *Unit

	// AbsPath is the absolute path to the file.
	AbsPath string

	// ReprPath is the representative path of the file: the path as it should
	// be displayed to the user and recorded in debug information.
	ReprPath string
}
