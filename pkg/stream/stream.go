// Package stream sends a rope's content to a remote peer without ever
// materializing the whole thing in memory: every transport here pulls
// bytes straight off a rope.Reader and writes them out as they come, so
// a multi-megabyte generated bundle streams in the same constant
// working set as a ten-byte one.
//
// The two transports deliberately read a rope two different ways.
// WebSocketSource walks the lazy-slice sequence (Reader.Next) and sends
// exactly one frame per leaf, preserving the zero-copy boundary the
// reader already establishes. TCPSender instead drains the blocking
// reader (Reader.Read) into a fixed-size buffer, the way any other
// io.Reader-backed transport would.
//
// Every stream is tagged with a session ID so a server handling many
// concurrent rope transfers can correlate log lines and error reports
// back to the client that triggered them.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

// ErrSessionClosed is returned by TCPSender.Send once the sender has
// been closed with Close.
var ErrSessionClosed = errors.New("stream: session closed")

// SessionID identifies one streaming session across log lines, frames,
// and error reports.
type SessionID = uuid.UUID

// NewSessionID mints a fresh random session identifier.
func NewSessionID() SessionID {
	return uuid.New()
}

// frame is the on-wire unit every transport in this package exchanges:
// a session tag, a monotonically increasing sequence number, a chunk of
// rope bytes, and a final flag marking the last frame of a transfer. A
// final frame may carry a trailing chunk or none at all.
type frame struct {
	Session SessionID
	Seq     uint64
	Chunk   []byte
	Final   bool
}

func (f frame) String() string {
	return fmt.Sprintf("frame{session=%s seq=%d len=%d final=%t}", f.Session, f.Seq, len(f.Chunk), f.Final)
}

// chunkSize is the size, in bytes, of the buffer TCPSender uses when
// draining a rope's blocking reader into a connection. pkg/config tunes
// it via SetChunkSize, matching the "stream chunk size" tunable.
var chunkSize = 32 * 1024

// SetChunkSize overrides the blocking-read buffer size new TCP
// transfers use. It exists so pkg/config can tune it without this
// package depending on pkg/config. n must be positive; non-positive
// values are ignored.
func SetChunkSize(n int) {
	if n > 0 {
		chunkSize = n
	}
}

// writeRopeLeaves walks r's lazy-slice sequence one leaf at a time,
// sending exactly one frame per slice with no re-chunking: the frame
// boundary is the leaf boundary the reader already established.
func writeRopeLeaves(session SessionID, r *rope.Reader, send func(frame) error) error {
	chunk, ok := r.Next()
	if !ok {
		return send(frame{Session: session, Final: true})
	}
	seq := uint64(0)
	for {
		next, ok := r.Next()
		final := !ok
		if err := send(frame{Session: session, Seq: seq, Chunk: chunk, Final: final}); err != nil {
			return err
		}
		if final {
			return nil
		}
		seq++
		chunk = next
	}
}

// writeRopeBlocking drains r through its blocking Read method into a
// bufSize buffer, sending one frame per fill. bufSize <= 0 falls back
// to chunkSize.
func writeRopeBlocking(session SessionID, r *rope.Reader, bufSize int, send func(frame) error) error {
	if bufSize <= 0 {
		bufSize = chunkSize
	}
	buf := make([]byte, bufSize)
	seq := uint64(0)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if sendErr := send(frame{Session: session, Seq: seq, Chunk: chunk}); sendErr != nil {
				return sendErr
			}
			seq++
		}
		if err == io.EOF {
			return send(frame{Session: session, Seq: seq, Final: true})
		}
		if err != nil {
			return fmt.Errorf("stream: read: %w", err)
		}
	}
}
