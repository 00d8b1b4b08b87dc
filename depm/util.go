package depm

import "hash/fnv"

// GenerateIDFromPath generates an ID from an absolute path.
func GenerateIDFromPath(abspath string) uint64 {
	a := fnv.New64a()
	a.Write([]byte(abspath))
	return a.Sum64()
}
