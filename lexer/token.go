package lexer

import (
	"github.com/ava12/pdpatch/source"
)

// TokenType is the type of token returned by Lexer.
type TokenType int

const (
	// WordToken is a whitespace-delimited word with escapes resolved.
	WordToken TokenType = iota
	// TerminatorToken is the ';' byte closing a record.
	TerminatorToken
	// EofToken is returned at the end of input.
	EofToken
)

func (t TokenType) String() string {
	switch t {
	case WordToken:
		return "word"
	case TerminatorToken:
		return "terminator"
	case EofToken:
		return "-end-of-file-"
	default:
		return "unknown"
	}
}

// Token is a lexeme with its source position.
type Token struct {
	tokenType TokenType
	text      []byte
	pos       source.Pos
}

// NewToken creates token. Token takes ownership of text.
func NewToken(tokenType TokenType, text []byte, pos source.Pos) *Token {
	return &Token{tokenType, text, pos}
}

func (t *Token) Type() TokenType {
	return t.tokenType
}

// Text returns token text with escapes resolved.
// Returned slice may be reused by lexer after the next call to Lexer.Next.
func (t *Token) Text() []byte {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}
