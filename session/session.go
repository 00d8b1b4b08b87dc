package session

import (
	"oolong/depm"
	"oolong/target"
)

// Version is the current compiler version string.
const Version = "0.4.2"

// DebugInfoKind indicates how much debug information a build emits.  Must be
// one of the enumerated debug info kinds.
type DebugInfoKind int

// Enumeration of debug info kinds.
const (
	DebugInfoNone    DebugInfoKind = iota // No debug information at all.
	DebugInfoLimited                      // Line tables and file mappings only.
	DebugInfoFull                         // Full type, variable, and scope information.
)

// Session holds the per-invocation configuration shared by every compilation
// unit of a build.  A session is created once by the driver and treated as
// read-only afterwards.
type Session struct {
	// Target is the platform being compiled for.
	Target *target.Spec

	// DebugInfo is the configured debug information level.
	DebugInfo DebugInfoKind

	// OptLevel is the optimization level, 0 through 3.
	OptLevel int

	// Producer identifies the compiler in emitted debug information.
	Producer string

	// WorkingDir is the directory compilation was invoked from.  Relative
	// source paths in debug information are resolved against it.
	WorkingDir string

	// EntryPoint is the ID of the program's entry function definition, or
	// zero for library builds.
	EntryPoint uint64
}

// New creates a session with the given target and debug level and defaults
// for everything else.
func New(spec *target.Spec, debugInfo DebugInfoKind) *Session {
	return &Session{
		Target:    spec,
		DebugInfo: debugInfo,
		Producer:  "oolongc v" + Version,
	}
}

// IsOptimized returns whether the session compiles with optimizations on.
func (s *Session) IsOptimized() bool {
	return s.OptLevel > 0
}

// IsEntryPoint returns whether the given definition is the program's entry
// function.
func (s *Session) IsEntryPoint(def *depm.Def) bool {
	return s.EntryPoint != 0 && def.ID == s.EntryPoint
}
