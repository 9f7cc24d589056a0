package rope

import (
	"errors"
	"fmt"
)

// ErrEncoding is returned by Rope.String when a rope's bytes are not
// valid UTF-8.
var ErrEncoding = errors.New("rope: invalid UTF-8 encoding")

// debugAssertions gates the invariant checks described in the package's
// design notes (I1/I2/I5). Its default comes from roperecoverDefault,
// set by the roperecover build tag (see rope_debug_off.go and
// rope_debug_on.go) — building with `-tags roperecover` turns invariant
// checking on for the whole binary, mirroring the source system's
// debug_assertions builds. It remains a plain var, not a const, so a
// single test can flip it on with enableDebugAssertions without
// requiring the whole test binary to be rebuilt with the tag.
var debugAssertions = roperecoverDefault

// enableDebugAssertions turns on invariant checking for the duration of
// a test and returns a function that restores the previous setting.
func enableDebugAssertions() func() {
	prev := debugAssertions
	debugAssertions = true
	return func() { debugAssertions = prev }
}

func invariantf(format string, args ...any) {
	if debugAssertions {
		panic(fmt.Sprintf("rope: invariant violation: "+format, args...))
	}
}
