package diagnostics

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

// CharDiff returns a human-readable character-level diff between two
// rope revisions, useful for spotting a handful of changed bytes inside
// an otherwise-identical bundle without scanning a full unified diff.
func CharDiff(before, after rope.Rope) (string, error) {
	a, err := before.String()
	if err != nil {
		return "", fmt.Errorf("diagnostics: before revision: %w", err)
	}
	b, err := after.String()
	if err != nil {
		return "", fmt.Errorf("diagnostics: after revision: %w", err)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs), nil
}

// UnifiedDiff returns a standard unified diff between two rope
// revisions, suitable for pasting into a terminal or a code review
// comment. fromFile/toFile label the two sides the way diff -u would.
func UnifiedDiff(before, after rope.Rope, fromFile, toFile string) (string, error) {
	a, err := before.String()
	if err != nil {
		return "", fmt.Errorf("diagnostics: before revision: %w", err)
	}
	b, err := after.String()
	if err != nil {
		return "", fmt.Errorf("diagnostics: after revision: %w", err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
