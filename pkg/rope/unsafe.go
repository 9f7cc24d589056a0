package rope

import "unsafe"

// unsafeStringBytes returns a []byte view over s's backing array without
// copying. This is sound because Go strings are immutable for their
// entire lifetime: nothing can write through the returned slice's
// backing array by mutating s, so aliasing it into a leaf segment (which
// is likewise never written after commit) cannot violate the rope's
// immutability. Callers must still never write into the returned slice
// directly. The same trick is used the other direction (bytes -> string,
// no copy) by this lineage's builder for small-write accumulation.
func unsafeStringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
