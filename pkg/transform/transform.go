// Package transform is a small JavaScript identifier-rewriting helper,
// built to illustrate the path-visitor idea applied to a textual rewrite
// instead of a rope: find every free occurrence of a name in a module
// (never a substring of a longer identifier, never inside another
// identifier), rename it, and confirm the result still parses as valid
// JavaScript.
//
// This package does not depend on this module's rope type; it operates
// on plain strings and is useful as a preprocessing step before content
// ever gets wrapped into one.
package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/words"
	"github.com/dlclark/regexp2"
	"github.com/dop251/goja"
)

// identifierBoundary matches a bare identifier, using lookaround
// (unavailable in Go's stdlib regexp, which is why this package reaches
// for regexp2) to reject matches that are really part of a longer name
// or a property access like obj.name.
func identifierBoundary(name string) *regexp2.Regexp {
	pattern := fmt.Sprintf(`(?<![\w$.])%s(?![\w$])`, regexp.QuoteMeta(name))
	return regexp2.MustCompile(pattern, regexp2.None)
}

// RenamePlan maps identifiers present in a module to their replacement.
type RenamePlan map[string]string

// Rename rewrites every free occurrence of each name in plan within
// src, then recompiles the result with goja to confirm the rewrite
// didn't break the module's syntax. It returns the rewritten source.
func Rename(src string, plan RenamePlan) (string, error) {
	names := make([]string, 0, len(plan))
	for name := range plan {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic application order

	out := src
	for _, name := range names {
		replaced, err := replaceAll(out, identifierBoundary(name), plan[name])
		if err != nil {
			return "", fmt.Errorf("transform: rename %q: %w", name, err)
		}
		out = replaced
	}

	if _, err := goja.Compile("rename-check", out, true); err != nil {
		return "", fmt.Errorf("transform: rewritten module no longer parses: %w", err)
	}
	return out, nil
}

// replaceAll walks every non-overlapping match of re in s, substituting
// replacement, without use of regexp2's package-level ReplaceFunc (which
// does not support lookaround-bearing patterns cleanly across matches).
func replaceAll(s string, re *regexp2.Regexp, replacement string) (string, error) {
	var b strings.Builder
	pos := 0
	match, err := re.FindStringMatch(s)
	if err != nil {
		return "", err
	}
	for match != nil {
		b.WriteString(s[pos:match.Index])
		b.WriteString(replacement)
		pos = match.Index + match.Length
		match, err = re.FindNextMatch(match)
		if err != nil {
			return "", err
		}
	}
	b.WriteString(s[pos:])
	return b.String(), nil
}

// Tokens segments src into Unicode word-boundary tokens, following the
// same rules a text editor uses to decide what double-clicking a word
// selects. It is a coarse substitute for a real JS lexer, useful for
// quick heuristics like spotting candidate identifiers worth feeding
// into Rename without parsing the whole module.
func Tokens(src string) []string {
	seg := words.NewSegmenter([]byte(src))
	var tokens []string
	for seg.Next() {
		tok := strings.TrimSpace(string(seg.Bytes()))
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ValidateSyntax reports whether src parses as a JavaScript module.
func ValidateSyntax(src string) error {
	if _, err := goja.Compile("validate", src, true); err != nil {
		return fmt.Errorf("transform: invalid syntax: %w", err)
	}
	return nil
}
