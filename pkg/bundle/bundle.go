// Package bundle resolves positions in a generated build output back
// to their original source location, using the output's accompanying
// source map. The generated text and the map are both held as ropes —
// concatenating build fragments into a bundle is the rope's primary
// job, and resolving a runtime stack frame back through that bundle is
// the most common reason to then read it back out again.
package bundle

import (
	"fmt"

	"github.com/go-sourcemap/sourcemap"

	"github.com/h-a-n-a/turbo/pkg/rope"
)

// Bundle pairs a generated file's content with its parsed source map.
type Bundle struct {
	name     string
	content  rope.Rope
	consumer *sourcemap.Consumer
}

// New parses mapData (the contents of the bundle's .map file) and pairs
// it with content, the generated bundle text itself. name is used only
// for error messages.
func New(name string, content rope.Rope, mapData rope.Rope) (*Bundle, error) {
	consumer, err := sourcemap.Parse(name, mapData.Bytes())
	if err != nil {
		return nil, fmt.Errorf("bundle: parse source map for %s: %w", name, err)
	}
	return &Bundle{name: name, content: content, consumer: consumer}, nil
}

// Content returns the generated bundle text.
func (b *Bundle) Content() rope.Rope { return b.content }

// Position is a resolved location in the original, pre-bundling source.
type Position struct {
	Source string
	Name   string
	Line   int
	Column int
}

// Resolve maps a byte offset into the generated bundle back to its
// position in the original source, via the embedded source map.
func (b *Bundle) Resolve(byteOffset int) (Position, error) {
	line, col, err := lineColumnAt(b.content, byteOffset)
	if err != nil {
		return Position{}, err
	}
	source, name, fileLine, fileCol, ok := b.consumer.Source(line, col)
	if !ok {
		return Position{}, fmt.Errorf("bundle: %s: no mapping for line %d column %d", b.name, line, col)
	}
	return Position{Source: source, Name: name, Line: fileLine, Column: fileCol}, nil
}

// lineColumnAt walks content lazily, via its Reader's Peek/Consume
// pair, converting a byte offset into a 1-based line and 0-based
// column the way source maps expect. It never materializes the whole
// rope: only the bytes up to offset are ever read.
func lineColumnAt(content rope.Rope, offset int) (line, column int, err error) {
	if offset < 0 || offset > content.Len() {
		return 0, 0, fmt.Errorf("bundle: offset %d out of range [0,%d]", offset, content.Len())
	}
	r := content.NewReader()
	line, column = 1, 0
	remaining := offset
	for remaining > 0 {
		chunk := r.Peek()
		if len(chunk) == 0 {
			break
		}
		n := remaining
		if n > len(chunk) {
			n = len(chunk)
		}
		for _, c := range chunk[:n] {
			if c == '\n' {
				line++
				column = 0
			} else {
				column++
			}
		}
		r.Consume(n)
		remaining -= n
	}
	return line, column, nil
}
