package debuginfo

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
)

// gdbScriptsGlobalName is the name of the marker global that asks debuggers
// to load the pretty-printer script.
const gdbScriptsGlobalName = "__oolong_debug_gdb_scripts_section__"

// gdbScriptsSectionName is the object file section debuggers scan for
// scripts to auto-load.
const gdbScriptsSectionName = ".debug_gdb_scripts"

// gdbPrettyPrinterLoader is the marker section's payload: a one-byte "file
// script" kind tag, the script name, and a terminating NUL.
const gdbPrettyPrinterLoader = "\x01oolong_gdb_pretty_printers.py\x00"

// emitGdbScriptsMarker emits the global that makes debuggers auto-load the
// pretty-printer script.  The global is emitted at most once per module.
func (uc *UnitContext) emitGdbScriptsMarker() {
	for _, global := range uc.mod.Globals {
		if global.GlobalName == gdbScriptsGlobalName {
			return
		}
	}

	marker := uc.mod.NewGlobalDef(gdbScriptsGlobalName, constant.NewCharArrayFromString(gdbPrettyPrinterLoader))
	marker.Linkage = enum.LinkageInternal
	marker.Section = gdbScriptsSectionName
	marker.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	marker.Immutable = true
}
