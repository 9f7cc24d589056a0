package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRename_ReplacesFreeIdentifierOnly(t *testing.T) {
	src := `function add(a, b) { return a + b; } var total = add(1, 2);`
	out, err := Rename(src, RenamePlan{"add": "sum"})
	require.NoError(t, err)
	assert.Contains(t, out, "function sum(a, b)")
	assert.Contains(t, out, "var total = sum(1, 2)")
}

func TestRename_DoesNotTouchLongerIdentifiers(t *testing.T) {
	src := `var addAll = 1; var add = 2;`
	out, err := Rename(src, RenamePlan{"add": "sum"})
	require.NoError(t, err)
	assert.Contains(t, out, "addAll")
	assert.Contains(t, out, "var sum = 2")
}

func TestRename_DoesNotTouchPropertyAccess(t *testing.T) {
	src := `var result = obj.add(1, 2);`
	out, err := Rename(src, RenamePlan{"add": "sum"})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestRename_RejectsResultThatFailsToParse(t *testing.T) {
	src := `var add = 1;`
	_, err := Rename(src, RenamePlan{"add": "123invalid"})
	assert.Error(t, err)
}

func TestTokens_SegmentsWords(t *testing.T) {
	tokens := Tokens("const total = addAll(1, 2);")
	assert.Contains(t, tokens, "const")
	assert.Contains(t, tokens, "total")
	assert.Contains(t, tokens, "addAll")
}

func TestValidateSyntax(t *testing.T) {
	assert.NoError(t, ValidateSyntax("var x = 1;"))
	assert.Error(t, ValidateSyntax("var x = ;"))
}
