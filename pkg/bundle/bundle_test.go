package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

func TestLineColumnAt_TracksNewlines(t *testing.T) {
	content := rope.FromString("abc\ndef\nghi")

	line, col, err := lineColumnAt(content, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)

	line, col, err = lineColumnAt(content, 5) // 'e' in "def"
	require.NoError(t, err)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	line, col, err = lineColumnAt(content, content.Len())
	require.NoError(t, err)
	assert.Equal(t, 3, line)
	assert.Equal(t, 3, col)
}

func TestLineColumnAt_RejectsOutOfRangeOffset(t *testing.T) {
	content := rope.FromString("abc")
	_, _, err := lineColumnAt(content, -1)
	assert.Error(t, err)
	_, _, err = lineColumnAt(content, content.Len()+1)
	assert.Error(t, err)
}

func TestLineColumnAt_SpansMultipleRopeSegments(t *testing.T) {
	b := rope.NewBuilder()
	b.Concat(rope.FromString("one\ntwo"))
	b.Concat(rope.FromString("\nthree"))
	content := b.Build()

	line, col, err := lineColumnAt(content, content.Len())
	require.NoError(t, err)
	assert.Equal(t, 3, line)
	assert.Equal(t, 5, col)
}
