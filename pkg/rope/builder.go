package rope

// StaticInlineThreshold is the minimum size, in bytes, a static push
// must reach before Builder commits it directly as an aliased leaf
// instead of routing it through the pending region. Below this size, a Go slice
// header plus the bookkeeping to keep it alive costs more than just
// owning the bytes. The recommended value — four machine words — is
// exposed here as a variable rather than a constant so that pkg/config
// can override it without the core package depending on pkg/config.
var StaticInlineThreshold = 4 * 8 // 32 bytes on a 64-bit host

// pendingKind tags which of the three states (§ 4.3) a Builder's pending
// region is in.
type pendingKind int

const (
	pendingEmpty pendingKind = iota
	pendingStatic
	pendingOwned
)

// Builder accumulates writes and, at well-defined commit points,
// promotes them into committed segments. It is the only mutable type in
// this package; once Build is called the result is an ordinary immutable
// Rope. A Builder is not safe for concurrent use — it is meant to be
// owned by one goroutine while it accumulates content.
type Builder struct {
	committedLength int
	committed       []segment

	pendingKind   pendingKind
	pendingStatic []byte // valid when pendingKind == pendingStatic
	pendingOwned  []byte // valid when pendingKind == pendingOwned
}

// NewBuilder returns an empty Builder ready to accept pushes.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBuilderFromStatic returns a Builder pre-loaded with a static push
// of s, the same as calling NewBuilder().PushStatic on the string's bytes.
func NewBuilderFromStatic(s string) *Builder {
	b := NewBuilder()
	b.PushStatic(unsafeStringBytes(s))
	return b
}

// NewBuilderFromBytes returns a Builder whose pending region directly
// owns buf, skipping the copy PushOwnedBytes would otherwise make. buf
// must not be referenced by the caller afterward.
func NewBuilderFromBytes(buf []byte) *Builder {
	b := NewBuilder()
	if len(buf) > 0 {
		b.pendingKind = pendingOwned
		b.pendingOwned = buf
	}
	return b
}

// PushOwnedBytes copies buf into the pending region. Prefer PushStatic
// for long-lived buffers the caller won't mutate — it can avoid the copy
// entirely.
func (b *Builder) PushOwnedBytes(buf []byte) {
	if len(buf) == 0 {
		return
	}
	switch b.pendingKind {
	case pendingEmpty:
		owned := make([]byte, len(buf))
		copy(owned, buf)
		b.pendingKind = pendingOwned
		b.pendingOwned = owned
	case pendingStatic:
		owned := make([]byte, 0, len(b.pendingStatic)+len(buf))
		owned = append(owned, b.pendingStatic...)
		owned = append(owned, buf...)
		b.pendingStatic = nil
		b.pendingKind = pendingOwned
		b.pendingOwned = owned
	case pendingOwned:
		b.pendingOwned = append(b.pendingOwned, buf...)
	}
}

// PushStatic pushes buf, which the caller certifies will remain valid
// (unmutated, not recycled) for as long as the resulting Rope might
// live. A buffer shorter than StaticInlineThreshold goes to the pending
// region: if nothing is pending it is held as a borrow (and committed as
// an aliased leaf if nothing else is pushed before the next commit);
// otherwise it is copied into the owned scratch buffer together with
// what is pending, since two tiny aliased slices cost more than one copy.
func (b *Builder) PushStatic(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if len(buf) < StaticInlineThreshold {
		b.pushStaticSmall(buf)
		return
	}

	// Large enough to alias directly: flush whatever's pending, then
	// commit a leaf segment that borrows buf without copying it.
	b.Flush()
	b.committedLength += len(buf)
	b.committed = append(b.committed, leafSegment(buf))
}

func (b *Builder) pushStaticSmall(buf []byte) {
	switch b.pendingKind {
	case pendingEmpty:
		b.pendingKind = pendingStatic
		b.pendingStatic = buf
	default:
		// A second static hold, or a static push on top of owned scratch:
		// either way two small slice headers cost more than one owned
		// leaf, so fold into owned instead of holding both aliases.
		b.PushOwnedBytes(buf)
	}
}

// Concat installs other as a single shared branch segment, referencing
// its existing tree without copying any of its bytes. Cost is O(1)
// regardless of other's size.
func (b *Builder) Concat(other Rope) {
	if other.IsEmpty() {
		return
	}
	b.Flush()
	b.committedLength += other.length
	b.committed = append(b.committed, branchSegment(other.storeOrEmpty()))
}

// Flush promotes the pending region, if any, into a committed segment
// and resets pending to empty. It is idempotent: calling it with nothing
// pending is a no-op.
func (b *Builder) Flush() {
	switch b.pendingKind {
	case pendingEmpty:
		return
	case pendingStatic:
		if debugAssertions && len(b.pendingStatic) == 0 {
			invariantf("pending static hold must not be empty")
		}
		b.committedLength += len(b.pendingStatic)
		b.committed = append(b.committed, leafSegment(b.pendingStatic))
		b.pendingStatic = nil
	case pendingOwned:
		if debugAssertions && len(b.pendingOwned) == 0 {
			invariantf("pending owned scratch must not be empty")
		}
		b.committedLength += len(b.pendingOwned)
		b.committed = append(b.committed, leafSegment(b.pendingOwned))
		b.pendingOwned = nil
	}
	b.pendingKind = pendingEmpty
}

// Finish is an alias for Flush, matching the vocabulary callers coming
// from a "finish what you started, idempotently" mental model expect.
func (b *Builder) Finish() {
	b.Flush()
}

// Len returns the builder's current total length: committed bytes plus
// whatever is sitting in the pending region.
func (b *Builder) Len() int {
	switch b.pendingKind {
	case pendingStatic:
		return b.committedLength + len(b.pendingStatic)
	case pendingOwned:
		return b.committedLength + len(b.pendingOwned)
	default:
		return b.committedLength
	}
}

// IsEmpty reports whether the builder has accumulated zero bytes.
func (b *Builder) IsEmpty() bool {
	return b.Len() == 0
}

// Build flushes any pending region and seals the builder's committed
// segments into a Rope. The builder is left with an empty pending region
// and its committed segments untouched, so calling Build again without
// further pushes returns an equal Rope.
func (b *Builder) Build() Rope {
	b.Flush()
	if b.committedLength == 0 {
		return Empty()
	}
	return Rope{length: b.committedLength, store: newSegmentStore(b.committed)}
}

// Write implements io.Writer: every write is an owned push, and the
// byte count written always equals len(p) with a nil error.
func (b *Builder) Write(p []byte) (int, error) {
	b.PushOwnedBytes(p)
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Builder) WriteString(s string) (int, error) {
	b.PushOwnedBytes(unsafeStringBytes(s))
	return len(s), nil
}
