package util

// PointerSize is the size of a pointer in bytes on the compilation target.
// Oolong currently only targets 64-bit platforms.
const PointerSize = 8
