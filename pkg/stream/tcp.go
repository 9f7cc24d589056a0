package stream

import (
	"encoding/gob"
	"fmt"
	"net"
	"sync"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

// TCPSender streams a single rope to one TCP connection, framed with
// encoding/gob. It is meant for short-lived, one-shot transfers: build
// a builder server-side, dial or accept a connection, then call Send.
type TCPSender struct {
	mu     sync.Mutex
	conn   net.Conn
	enc    *gob.Encoder
	closed bool
}

// NewTCPSender wraps an already-established connection.
func NewTCPSender(conn net.Conn) *TCPSender {
	return &TCPSender{conn: conn, enc: gob.NewEncoder(conn)}
}

// DialTCPSender connects to addr and returns a sender ready to stream
// rope content to it.
func DialTCPSender(addr string) (*TCPSender, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("stream: dial %s: %w", addr, err)
	}
	return NewTCPSender(conn), nil
}

// Send streams r's content as a sequence of frames tagged with session,
// draining r's blocking reader into a chunkSize buffer one fill at a
// time. The receiver knows the transfer is complete when it sees a
// frame with Final set.
func (s *TCPSender) Send(session SessionID, r rope.Rope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return writeRopeBlocking(session, r.NewReader(), chunkSize, func(f frame) error {
		if err := s.enc.Encode(&f); err != nil {
			return fmt.Errorf("stream: encode %s: %w", f, err)
		}
		return nil
	})
}

// Close closes the underlying connection.
func (s *TCPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// TCPReceiver reconstructs a rope from frames read off a TCP connection.
type TCPReceiver struct {
	conn net.Conn
	dec  *gob.Decoder
}

// NewTCPReceiver wraps an accepted connection.
func NewTCPReceiver(conn net.Conn) *TCPReceiver {
	return &TCPReceiver{conn: conn, dec: gob.NewDecoder(conn)}
}

// Receive reads frames until Final, building a rope out of the
// collected chunks by pushing each one into a Builder as owned bytes.
func (r *TCPReceiver) Receive() (rope.Rope, SessionID, error) {
	b := rope.NewBuilder()
	var session SessionID
	for {
		var f frame
		if err := r.dec.Decode(&f); err != nil {
			return rope.Rope{}, session, fmt.Errorf("stream: decode frame: %w", err)
		}
		session = f.Session
		if len(f.Chunk) > 0 {
			b.PushOwnedBytes(f.Chunk)
		}
		if f.Final {
			return b.Build(), session, nil
		}
	}
}

// TCPServer accepts connections and hands each one to a handler
// running in its own goroutine.
type TCPServer struct {
	listener net.Listener
}

// ListenTCP starts a listener on addr.
func ListenTCP(addr string) (*TCPServer, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("stream: listen %s: %w", addr, err)
	}
	return &TCPServer{listener: l}, nil
}

// Addr returns the listener's bound address.
func (s *TCPServer) Addr() net.Addr { return s.listener.Addr() }

// Serve accepts connections until the listener is closed, passing each
// one to handle in its own goroutine.
func (s *TCPServer) Serve(handle func(*TCPReceiver)) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return fmt.Errorf("stream: accept: %w", err)
		}
		go handle(NewTCPReceiver(conn))
	}
}

// Close stops accepting new connections.
func (s *TCPServer) Close() error {
	return s.listener.Close()
}
