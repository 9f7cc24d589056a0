package stream

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketSource is an http.Handler that streams a rope, picked by
// Lookup, to every client that connects. It is meant to sit behind a
// route like /bundles/{id}, where Lookup turns the path or query into
// the rope to serve.
type WebSocketSource struct {
	// Lookup resolves an incoming request to the rope it should stream.
	// A non-nil error aborts the connection with a close frame carrying
	// the error text.
	Lookup func(r *http.Request) (rope.Rope, error)
}

func (s *WebSocketSource) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	content, err := s.Lookup(r)
	if err != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()), deadline)
		return
	}

	session := NewSessionID()
	sender := &wsSender{conn: conn}
	_ = writeRopeLeaves(session, content.NewReader(), sender.send)
}

type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) send(f frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(wireFrame{
		Session: f.Session.String(),
		Seq:     f.Seq,
		Chunk:   f.Chunk,
		Final:   f.Final,
	}); err != nil {
		return fmt.Errorf("stream: websocket write: %w", err)
	}
	return nil
}

// wireFrame is frame's JSON-safe counterpart: uuid.UUID already
// marshals to its canonical string form, but spelling it out here
// keeps the wire format stable even if frame's internal layout changes.
type wireFrame struct {
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`
	Chunk   []byte `json:"chunk"`
	Final   bool   `json:"final"`
}

// DialWebSocketSink connects to a WebSocketSource and reconstructs the
// rope it streams.
func DialWebSocketSink(url string) (rope.Rope, SessionID, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return rope.Rope{}, SessionID{}, fmt.Errorf("stream: dial %s: %w", url, err)
	}
	defer conn.Close()

	b := rope.NewBuilder()
	var session SessionID
	for {
		var wf wireFrame
		if err := conn.ReadJSON(&wf); err != nil {
			return rope.Rope{}, session, fmt.Errorf("stream: websocket read: %w", err)
		}
		if id, parseErr := uuid.Parse(wf.Session); parseErr == nil {
			session = id
		}
		if len(wf.Chunk) > 0 {
			b.PushOwnedBytes(wf.Chunk)
		}
		if wf.Final {
			return b.Build(), session, nil
		}
	}
}
