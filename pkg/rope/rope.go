package rope

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Rope is an immutable logical byte sequence backed by a shared tree of
// segments. The zero value is the empty rope and is ready to use; so is
// the value returned by Empty.
//
// A Rope is cheap to copy: it is a length and a pointer, and copying it
// (whether by assignment or by calling Clone) never copies the
// underlying bytes. Construct one with FromBytes, FromString, or a
// Builder; read one with NewReader, String, or Bytes.
type Rope struct {
	length int
	store  *segmentStore
}

// Empty returns the canonical empty rope.
func Empty() Rope {
	return Rope{store: emptyStore}
}

// FromBytes wraps b in a Rope without copying it. b must not be mutated
// afterward — the Rope takes logical ownership of the backing array, the
// same way Builder.PushOwnedBytes takes a copy up front specifically so
// the caller remains free to reuse its buffer; FromBytes skips that copy
// and instead requires the caller to give the buffer up.
func FromBytes(b []byte) Rope {
	if len(b) == 0 {
		return Empty()
	}
	return Rope{length: len(b), store: singleLeafStore(b)}
}

// FromString wraps s in a Rope. Because Go strings are immutable for
// their entire lifetime, this never copies s's bytes (see unsafeStringBytes).
func FromString(s string) Rope {
	if len(s) == 0 {
		return Empty()
	}
	return Rope{length: len(s), store: singleLeafStore(unsafeStringBytes(s))}
}

// FromReader drains r in chunkSize-sized reads, committing each one as
// its own owned leaf, and returns the resulting rope without ever holding
// the entire source in one contiguous buffer the way reading it into one
// []byte up front would. chunkSize values below 1 fall back to 32KiB.
func FromReader(r io.Reader, chunkSize int) (Rope, error) {
	if chunkSize < 1 {
		chunkSize = 32 * 1024
	}
	b := NewBuilder()
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.PushOwnedBytes(buf[:n])
			b.Flush()
		}
		if err == io.EOF {
			return b.Build(), nil
		}
		if err != nil {
			return Rope{}, fmt.Errorf("rope: read: %w", err)
		}
	}
}

// storeOrEmpty returns r's store, treating the zero Rope (nil store) as
// the canonical empty store so every method below works on an unconstructed
// Rope exactly as it does on Empty().
func (r Rope) storeOrEmpty() *segmentStore {
	if r.store == nil {
		return emptyStore
	}
	return r.store
}

// Len returns the rope's total byte length in constant time.
func (r Rope) Len() int {
	return r.length
}

// IsEmpty reports whether the rope has zero length.
func (r Rope) IsEmpty() bool {
	return r.length == 0
}

// Clone returns a Rope sharing the same underlying tree as r. Since a
// Rope is already an immutable handle, Clone is just a plain copy of the
// struct — it exists so call sites can say what they mean ("I need my
// own handle to this content") without readers mistaking a bare
// assignment for something cheaper or riskier than it is.
func (r Rope) Clone() Rope {
	return r
}

// Equal reports whether r and other hold byte-identical content,
// regardless of how their trees are shaped.
func (r Rope) Equal(other Rope) bool {
	return r.storeOrEmpty().equal(other.storeOrEmpty())
}

// Hash returns a deterministic content hash: two ropes with equal bytes
// always hash equally, independent of tree shape. The total length is
// mixed in once, at this top level, specifically so that wrapping a rope
// in a concatenation changes neither its own hash nor the hash of
// anything that embeds it unchanged.
func (r Rope) Hash() uint64 {
	h := newFNVHash()
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(r.length))
	h.Write(lenBuf[:])
	r.storeOrEmpty().deterministicHash(h)
	return h.Sum64()
}

// String renders the rope as a UTF-8 string, failing with ErrEncoding if
// the bytes are not valid UTF-8.
func (r Rope) String() (string, error) {
	return r.storeOrEmpty().toString()
}

// MustString is like String but panics on invalid UTF-8. Useful in tests
// and in call sites that have already validated encoding upstream (for
// example, content read back from this package's own serialized form).
func (r Rope) MustString() string {
	s, err := r.String()
	if err != nil {
		panic(err)
	}
	return s
}

// Bytes renders the rope's content as a single freshly-allocated slice.
// This is the flat, on-wire serialized form: it carries no structure, no
// per-segment framing, and no version header.
func (r Rope) Bytes() []byte {
	return r.storeOrEmpty().toBytes()
}

// MarshalBinary implements encoding.BinaryMarshaler, serializing the
// rope to its flat byte form. It never returns an error.
func (r Rope) MarshalBinary() ([]byte, error) {
	return r.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It copies data
// defensively (the caller may reuse or mutate its buffer afterward) and
// constructs a single-leaf rope from it.
func (r *Rope) UnmarshalBinary(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	*r = FromBytes(cp)
	return nil
}

// NewReader returns a Reader positioned at the start of the rope. Each
// call produces an independent Reader; reading from one never affects
// another, and never affects r itself.
func (r Rope) NewReader() *Reader {
	return newReaderFromStore(r.storeOrEmpty())
}
