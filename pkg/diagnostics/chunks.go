// Package diagnostics holds the debugging tools built on top of a
// rope that have no business living in the core package: structure
// dumps, content diffs between revisions, and profile merging for
// performance investigations.
package diagnostics

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// DumpChunks renders the sequence of lazy slices a rope's Reader yields,
// which is the closest thing to its tree shape visible from outside the
// rope package: one entry per leaf the reader actually walks, in order,
// with no bytes copied beyond what spew needs to print them.
func DumpChunks(r rope.Rope) string {
	reader := r.NewReader()
	var chunks [][]byte
	for {
		chunk, ok := reader.Next()
		if !ok {
			break
		}
		chunks = append(chunks, chunk)
	}
	return dumpConfig.Sdump(chunks)
}
