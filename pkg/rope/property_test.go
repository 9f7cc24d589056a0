package rope

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProperty_ConcatLengthIsAdditive covers the invariant that a rope's
// reported length always equals the sum of its leaf bytes, no matter how
// many concatenations were used to build it.
func TestProperty_ConcatLengthIsAdditive(t *testing.T) {
	parts := []string{"alpha", "", "beta-gamma", "x", "", "delta"}

	b := NewBuilder()
	want := 0
	for _, p := range parts {
		b.Concat(FromString(p))
		want += len(p)
	}
	r := b.Build()

	assert.Equal(t, want, r.Len())
	assert.Equal(t, strings.Join(parts, ""), r.MustString())
}

// TestProperty_ReaderDrainEqualsBytes covers the invariant that draining a
// Reader chunk-by-chunk and concatenating produces exactly Rope.Bytes.
func TestProperty_ReaderDrainEqualsBytes(t *testing.T) {
	restore := setStaticInlineThreshold(3)
	defer restore()

	b := NewBuilder()
	b.PushStatic([]byte("one"))
	b.PushOwnedBytes([]byte("-two-"))
	b.Concat(FromString("three"))
	b.PushStatic([]byte("!"))
	r := b.Build()

	reader := r.NewReader()
	var drained []byte
	for {
		chunk, ok := reader.Next()
		if !ok {
			break
		}
		drained = append(drained, chunk...)
	}

	assert.Equal(t, r.Bytes(), drained)
}

// TestProperty_PeekConsumeMatchesRead covers the invariant that Peek+Consume
// driven byte-by-byte produces the same stream as Read.
func TestProperty_PeekConsumeMatchesRead(t *testing.T) {
	restore := setStaticInlineThreshold(2)
	defer restore()

	b := NewBuilder()
	b.PushStatic([]byte("abcdefgh"))
	b.Concat(FromString("ijklmnop"))
	r := b.Build()

	byRead, err := readAllViaRead(r.NewReader())
	require.NoError(t, err)

	byPeek := readAllViaPeekConsume(r.NewReader())

	assert.Equal(t, byRead, byPeek)
	assert.Equal(t, r.Bytes(), byRead)
}

func readAllViaRead(r *Reader) ([]byte, error) {
	var out []byte
	buf := make([]byte, 3)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}

func readAllViaPeekConsume(r *Reader) []byte {
	var out []byte
	for {
		chunk := r.Peek()
		if len(chunk) == 0 {
			return out
		}
		n := 1
		if n > len(chunk) {
			n = len(chunk)
		}
		out = append(out, chunk[:n]...)
		r.Consume(n)
	}
}

// TestProperty_EqualIsReflexiveSymmetricForVariedShapes builds the same
// logical content through several different builder call sequences and
// checks every pair compares equal and hashes equal.
func TestProperty_EqualIsReflexiveSymmetricForVariedShapes(t *testing.T) {
	want := "the quick brown fox jumps"

	restore := setStaticInlineThreshold(5)
	defer restore()

	variants := []Rope{
		FromString(want),
		func() Rope {
			b := NewBuilder()
			b.PushStatic([]byte("the quick "))
			b.PushStatic([]byte("brown fox jumps"))
			return b.Build()
		}(),
		func() Rope {
			b := NewBuilder()
			for _, word := range strings.Fields(want) {
				b.Concat(FromString(word))
				b.PushOwnedBytes([]byte(" "))
			}
			s := b.Build()
			return FromString(strings.TrimSuffix(s.MustString(), " "))
		}(),
	}

	for i, a := range variants {
		for j, b := range variants {
			assert.Truef(t, a.Equal(b), "variant %d should equal variant %d", i, j)
			assert.Equalf(t, a.Hash(), b.Hash(), "variant %d hash should match variant %d", i, j)
		}
	}
}

// TestProperty_SharedSubtreeSurvivesBuilderReuse concatenates the same
// built Rope into two different builders and checks that both results,
// and the shared Rope itself, keep their own content: appending after a
// shared branch never writes into the shared leaves.
func TestProperty_SharedSubtreeSurvivesBuilderReuse(t *testing.T) {
	shared := NewBuilderFromStatic("shared-content").Build()

	b1 := NewBuilder()
	b1.Concat(shared)
	b1.PushStatic([]byte("-one"))
	r1 := b1.Build()

	b2 := NewBuilder()
	b2.Concat(shared)
	b2.PushStatic([]byte("-two"))
	r2 := b2.Build()

	assert.Equal(t, "shared-content-one", r1.MustString())
	assert.Equal(t, "shared-content-two", r2.MustString())
	assert.Equal(t, "shared-content", shared.MustString())
}
