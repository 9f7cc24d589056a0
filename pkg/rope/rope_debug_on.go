//go:build roperecover

package rope

// roperecoverDefault is true when the binary is built with
// `-tags roperecover`, turning on I1/I2/I5 invariant checking for the
// whole run, the way the source system's debug_assertions builds do.
const roperecoverDefault = true
