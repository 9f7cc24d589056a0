package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentStore_EmptyIsCanonical(t *testing.T) {
	a := newSegmentStore(nil)
	b := newSegmentStore([]segment{})
	assert.Same(t, emptyStore, a)
	assert.Same(t, emptyStore, b)
}

func TestSegmentStore_EqualIgnoresShape(t *testing.T) {
	flat := singleLeafStore([]byte("abcdef"))

	left := newSegmentStore([]segment{leafSegment([]byte("abc")), leafSegment([]byte("def"))})
	right := newSegmentStore([]segment{branchSegment(singleLeafStore([]byte("ab"))), leafSegment([]byte("cdef"))})

	assert.True(t, flat.equal(left))
	assert.True(t, left.equal(right))
	assert.True(t, flat.equal(right))
}

func TestSegmentStore_EqualDetectsDifference(t *testing.T) {
	a := singleLeafStore([]byte("abc"))
	b := singleLeafStore([]byte("abd"))
	assert.False(t, a.equal(b))
}

func TestSegmentStore_EqualDetectsLengthMismatch(t *testing.T) {
	a := singleLeafStore([]byte("abc"))
	b := singleLeafStore([]byte("ab"))
	assert.False(t, a.equal(b))
	assert.False(t, b.equal(a))
}

func TestSegmentStore_ToStringStripsLeadingBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	s := singleLeafStore(withBOM)
	str, err := s.toString()
	require.NoError(t, err)
	assert.Equal(t, "hello", str)
}

func TestSegmentStore_ToStringRejectsInvalidUTF8(t *testing.T) {
	s := singleLeafStore([]byte{0xff, 0xfe})
	_, err := s.toString()
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestSegmentStore_ToStringRejectsInvalidUTF8AcrossLeaves(t *testing.T) {
	s := newSegmentStore([]segment{leafSegment([]byte("ok-")), leafSegment([]byte{0xff})})
	_, err := s.toString()
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestSegmentStore_ToBytesFlattensTree(t *testing.T) {
	inner := singleLeafStore([]byte("mid"))
	s := newSegmentStore([]segment{leafSegment([]byte("start-")), branchSegment(inner), leafSegment([]byte("-end"))})
	assert.Equal(t, []byte("start-mid-end"), s.toBytes())
}

func TestSegmentStore_DeterministicHashIndependentOfShape(t *testing.T) {
	flat := singleLeafStore([]byte("abcdef"))
	nested := newSegmentStore([]segment{branchSegment(singleLeafStore([]byte("abc"))), leafSegment([]byte("def"))})

	h1 := newFNVHash()
	flat.deterministicHash(h1)
	h2 := newFNVHash()
	nested.deterministicHash(h2)

	assert.Equal(t, h1.Sum64(), h2.Sum64())
}

func TestSegmentStore_InvariantViolationPanicsUnderDebugAssertions(t *testing.T) {
	restore := enableDebugAssertions()
	defer restore()

	assert.Panics(t, func() {
		newSegmentStore([]segment{leafSegment(nil)})
	})
}

func TestSegmentStore_InvariantChecksOffByDefault(t *testing.T) {
	assert.NotPanics(t, func() {
		newSegmentStore([]segment{leafSegment(nil)})
	})
}
