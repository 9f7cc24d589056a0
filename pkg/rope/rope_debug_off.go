//go:build !roperecover

package rope

// roperecoverDefault is false for ordinary builds: invariant checks are
// compiled in but skipped at runtime unless a test opts in with
// enableDebugAssertions.
const roperecoverDefault = false
