// Package lexer splits patch text into word and terminator tokens.
package lexer

import (
	"io"

	"github.com/ava12/pdpatch"
	"github.com/ava12/pdpatch/source"
)

// Error codes used by lexer:
const (
	// ErrRead indicates that underlying reader has failed, Error.Cause contains reader error.
	ErrRead = pdpatch.ReadErrors + iota

	// ErrBadEscape indicates that backslash is followed by a character that cannot be escaped.
	ErrBadEscape

	// ErrPrematureEnd indicates that input ends inside an escape sequence or inside a record not closed with ';'.
	ErrPrematureEnd
)

const (
	terminator = ';'
	escape     = '\\'
)

func readError(pos pdpatch.SourcePos, e error) *pdpatch.Error {
	return pdpatch.WrapErrorPos(pos, ErrRead, e, "input error reading pd patch")
}

func badEscapeError(pos pdpatch.SourcePos, c byte) *pdpatch.Error {
	return pdpatch.FormatErrorPos(pos, ErrBadEscape, "unrecognized escape sequence %q reading pd patch", []byte{escape, c})
}

func prematureEndError(pos pdpatch.SourcePos) *pdpatch.Error {
	return pdpatch.FormatErrorPos(pos, ErrPrematureEnd, "premature end reading pd patch")
}

// IsSpace tells whether c separates tokens: space, CR, or LF.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n'
}

// CanEscape tells whether c may follow a backslash.
// Escapable characters are space and ASCII punctuation.
func CanEscape(c byte) bool {
	return (c >= 32 && c <= 47) ||
		(c >= 58 && c <= 64) ||
		(c >= 91 && c <= 96) ||
		(c >= 123 && c <= 126)
}

// Lexer fetches tokens from source.Reader.
// A word is a maximal run of non-space characters other than ';', backslash escapes a single character.
// Every word must be followed by ';' somewhere before the end of input.
type Lexer struct {
	src    *source.Reader
	buf    []byte
	open   bool
	openAt source.Pos
	done   bool
}

// New creates Lexer reading from src.
func New(src *source.Reader) *Lexer {
	return &Lexer{src: src}
}

// Next fetches the next token.
// Returns WordToken, TerminatorToken, or EofToken (repeatedly at the end of input).
// Returns nil token and *pdpatch.Error on read error, malformed escape, or premature end.
func (l *Lexer) Next() (*Token, error) {
	if l.done {
		return NewToken(EofToken, nil, l.src.Pos()), nil
	}

	e := l.skipSpace()
	if e != nil {
		return nil, e
	}

	pos := l.src.Pos()
	c, e := l.src.ReadByte()
	if e == io.EOF {
		if l.open {
			return nil, prematureEndError(l.openAt)
		}
		l.done = true
		return NewToken(EofToken, nil, pos), nil
	}
	if e != nil {
		return nil, readError(pos, e)
	}

	if c == terminator {
		l.open = false
		return NewToken(TerminatorToken, []byte{terminator}, pos), nil
	}

	if !l.open {
		l.open = true
		l.openAt = pos
	}
	return l.word(c, pos)
}

func (l *Lexer) skipSpace() error {
	for {
		pos := l.src.Pos()
		c, e := l.src.PeekByte()
		if e == io.EOF {
			return nil
		}
		if e != nil {
			return readError(pos, e)
		}
		if !IsSpace(c) {
			return nil
		}
		_, _ = l.src.ReadByte()
	}
}

func (l *Lexer) word(c byte, pos source.Pos) (*Token, error) {
	l.buf = l.buf[:0]
	for {
		if c == escape {
			escPos := l.src.Pos()
			next, e := l.src.ReadByte()
			if e == io.EOF {
				return nil, prematureEndError(escPos)
			}
			if e != nil {
				return nil, readError(escPos, e)
			}
			if !CanEscape(next) {
				return nil, badEscapeError(escPos, next)
			}
			c = next
		}
		l.buf = append(l.buf, c)

		nextPos := l.src.Pos()
		next, e := l.src.PeekByte()
		if e == io.EOF || (e == nil && (IsSpace(next) || next == terminator)) {
			return NewToken(WordToken, l.buf, pos), nil
		}
		if e != nil {
			return nil, readError(nextPos, e)
		}
		c, _ = l.src.ReadByte()
	}
}
