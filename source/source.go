// Package source defines byte input with position tracking used by lexer.
package source

import (
	"bufio"
	"io"
)

// Pos is a position in named source. Line and column numbers start from 1.
type Pos struct {
	name      string
	line, col int
}

// NewPos creates position.
func NewPos(name string, line, col int) Pos {
	return Pos{name, line, col}
}

// SourceName returns source name, may be empty.
func (p Pos) SourceName() string {
	return p.name
}

// Line returns line number or 0 if unknown.
func (p Pos) Line() int {
	return p.line
}

// Col returns column number (in runes) or 0 if unknown.
func (p Pos) Col() int {
	return p.col
}

// Reader reads bytes from underlying io.Reader and tracks position of the next byte.
// Line is incremented after each LF byte, column counts UTF-8 runes.
// The first read error other than io.EOF is sticky.
type Reader struct {
	name      string
	r         *bufio.Reader
	line, col int
	err       error
}

// New creates Reader reading from r. r is used only until the end of input or the first error.
func New(name string, r io.Reader) *Reader {
	br, isBuffered := r.(*bufio.Reader)
	if !isBuffered {
		br = bufio.NewReader(r)
	}
	return &Reader{name: name, r: br, line: 1, col: 1}
}

func (r *Reader) Name() string {
	return r.name
}

// Pos returns position of the next byte.
func (r *Reader) Pos() Pos {
	return Pos{r.name, r.line, r.col}
}

// ReadByte returns the next byte and advances position.
// Returns io.EOF at the end of input or the underlying read error.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}

	b, e := r.r.ReadByte()
	if e != nil {
		if e != io.EOF {
			r.err = e
		}
		return 0, e
	}

	r.advance(b)
	return b, nil
}

// PeekByte returns the next byte without advancing position.
// Returns io.EOF at the end of input or the underlying read error.
func (r *Reader) PeekByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}

	buf, e := r.r.Peek(1)
	if len(buf) == 0 {
		if e == nil {
			e = io.EOF
		}
		if e != io.EOF {
			r.err = e
		}
		return 0, e
	}
	return buf[0], nil
}

func (r *Reader) advance(b byte) {
	switch {
	case b == '\n':
		r.line++
		r.col = 1
	case b&0xc0 != 0x80:
		r.col++
	}
}
