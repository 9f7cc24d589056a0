// Package rope implements an immutable byte-rope: a logical contiguous
// byte sequence represented as a tree of shared segments.
//
// A Rope is a cheap handle (a length plus a pointer to a shared segment
// store) over an immutable tree. Concatenating two ropes, or installing
// one rope inside another, never copies the underlying bytes: it adds a
// branch segment referencing the other rope's store. Building up a rope
// from many small writes coalesces them into as few heap allocations as
// the Builder's commit policy allows, while still aliasing long static
// byte slices instead of copying them.
//
// # Why a rope and not a string or bytes.Buffer
//
// This package exists for a build system that repeatedly reassembles
// large generated outputs (bundled JavaScript, source maps) out of
// fragments that recur across many outputs: import preambles, runtime
// stubs, vendored chunks. A plain string or []byte forces a copy on every
// concatenation. A Rope instead lets the same leaf bytes be referenced
// from many trees simultaneously.
//
// # Thread safety
//
// Once a Builder has produced a Rope (via Build), that Rope, every
// segment store reachable from it, and every leaf slice are immutable
// and safe to share across goroutines without synchronization — they are
// simply never written again. A Builder itself is not safe for concurrent
// use; it is meant to be owned by a single goroutine while it accumulates
// writes. A Reader is independent per goroutine: construct one Reader per
// consumer.
//
// # What this package does not do
//
// Ropes here are strictly append/concat-only once built: there is no
// mutation of an existing Rope, no splicing or insertion at an arbitrary
// position, no tree rebalancing, and no Unicode-aware indexing (content
// is addressed by byte offset only). A package that needs those
// operations should build them on top, the way an editor's buffer would
// be built on top of a generic immutable string representation.
package rope
