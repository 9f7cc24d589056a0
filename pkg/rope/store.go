package rope

import (
	"hash"
	"hash/fnv"
	"unicode/utf8"
)

// segmentStore is an immutable, ordered sequence of segments. Once built
// it is never mutated; sharing across ropes, builders, and readers is
// just sharing the pointer — the garbage collector keeps it alive for as
// long as anything still references it.
type segmentStore struct {
	segments []segment
}

// emptyStore is the canonical zero-length store (invariant I6): every
// empty Rope points at this same value instead of allocating its own
// zero-length slice.
var emptyStore = &segmentStore{}

// newSegmentStore builds a store from a finalized segment slice,
// checking I1/I2 when debug assertions are enabled. An empty slice
// collapses to emptyStore.
func newSegmentStore(segments []segment) *segmentStore {
	if len(segments) == 0 {
		return emptyStore
	}
	if debugAssertions {
		for i, s := range segments {
			if s.isBranch() {
				if s.branch.length() == 0 {
					invariantf("segment %d is a branch to an empty store", i)
				}
			} else if len(s.leaf) == 0 {
				invariantf("segment %d is an empty leaf", i)
			}
		}
	}
	return &segmentStore{segments: segments}
}

// singleLeafStore wraps one non-empty leaf buffer. Callers must not pass
// an empty buffer; use emptyStore instead.
func singleLeafStore(b []byte) *segmentStore {
	return &segmentStore{segments: []segment{leafSegment(b)}}
}

func (s *segmentStore) len() int {
	return len(s.segments)
}

func (s *segmentStore) at(i int) segment {
	return s.segments[i]
}

// length returns the total byte length reachable from this store.
func (s *segmentStore) length() int {
	total := 0
	for _, seg := range s.segments {
		total += seg.length()
	}
	return total
}

// equal reports whether two stores hold byte-identical content,
// regardless of how each tree is shaped. It walks a reader over each
// store in lockstep, comparing aligned prefixes.
func (s *segmentStore) equal(other *segmentStore) bool {
	if s == other {
		return true
	}
	left := newReaderFromStore(s)
	right := newReaderFromStore(other)
	for {
		a := left.Peek()
		b := right.Peek()
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		if n == 0 {
			return len(a) == 0 && len(b) == 0
		}
		for i := 0; i < n; i++ {
			if a[i] != b[i] {
				return false
			}
		}
		left.Consume(n)
		right.Consume(n)
	}
}

// deterministicHash feeds every segment, in order, into h. A leaf writes
// its raw bytes; a branch recurses into the store it references. No
// length is mixed in at this level — only the top-level Rope hash (see
// Rope.Hash) prefixes the total length, so two ropes with identical
// bytes hash identically no matter how their trees are shaped.
func (s *segmentStore) deterministicHash(h hash.Hash64) {
	for _, seg := range s.segments {
		if seg.isBranch() {
			seg.branch.deterministicHash(h)
		} else {
			h.Write(seg.leaf)
		}
	}
}

// toString renders the store's bytes as a UTF-8 string, failing with
// ErrEncoding if the bytes are not valid UTF-8. It takes fast paths for
// the common shapes (empty, single branch, single leaf) before falling
// back to draining a reader into a freshly sized buffer.
func (s *segmentStore) toString() (string, error) {
	switch {
	case len(s.segments) == 0:
		return "", nil
	case len(s.segments) == 1 && s.segments[0].isBranch():
		return s.segments[0].branch.toString()
	case len(s.segments) == 1:
		b := stripUTF8BOM(s.segments[0].leaf)
		if !utf8.Valid(b) {
			return "", ErrEncoding
		}
		return string(b), nil
	}

	total := s.length()
	buf := make([]byte, 0, total)
	r := newReaderFromStore(s)
	for {
		chunk, ok := r.Next()
		if !ok {
			break
		}
		buf = append(buf, chunk...)
	}
	buf = stripUTF8BOM(buf)
	if !utf8.Valid(buf) {
		return "", ErrEncoding
	}
	return string(buf), nil
}

// toBytes renders the store's bytes as a flat, freshly-allocated slice,
// with the same fast paths as toString but no UTF-8 validation. Used for
// Rope.Bytes and for serialization.
func (s *segmentStore) toBytes() []byte {
	switch {
	case len(s.segments) == 0:
		return []byte{}
	case len(s.segments) == 1 && s.segments[0].isBranch():
		return s.segments[0].branch.toBytes()
	case len(s.segments) == 1:
		out := make([]byte, len(s.segments[0].leaf))
		copy(out, s.segments[0].leaf)
		return out
	}

	buf := make([]byte, 0, s.length())
	r := newReaderFromStore(s)
	for {
		chunk, ok := r.Next()
		if !ok {
			break
		}
		buf = append(buf, chunk...)
	}
	return buf
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripUTF8BOM drops a leading UTF-8 byte-order mark, which some
// upstream tools still emit into generated bundle output.
func stripUTF8BOM(b []byte) []byte {
	if len(b) >= len(utf8BOM) && b[0] == utf8BOM[0] && b[1] == utf8BOM[1] && b[2] == utf8BOM[2] {
		return b[len(utf8BOM):]
	}
	return b
}

func newFNVHash() hash.Hash64 {
	return fnv.New64a()
}
