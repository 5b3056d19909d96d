// Package parser builds a patch from patch file text.
package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/ava12/pdpatch/lexer"
	"github.com/ava12/pdpatch/patch"
	"github.com/ava12/pdpatch/source"
	"github.com/ava12/pdpatch/symtab"
)

// ReadPatch reads the whole input and returns parsed patch.
// name is used in error messages only, it may be empty.
// r is not used after ReadPatch returns.
// Returns nil and *pdpatch.Error (see lexer error codes) on read error or malformed input.
func ReadPatch(name string, r io.Reader) (*patch.Patch, error) {
	l := lexer.New(source.New(name, r))
	symbols := symtab.New()
	var records []patch.Record
	var atoms []patch.Atom

	for {
		tok, e := l.Next()
		if e != nil {
			return nil, e
		}

		switch tok.Type() {
		case lexer.WordToken:
			atoms = append(atoms, Atom(tok.Text(), symbols))
		case lexer.TerminatorToken:
			records = append(records, patch.NewRecord(atoms))
			atoms = nil
		case lexer.EofToken:
			return patch.New(records, symbols), nil
		}
	}
}

// ParseBytes is like ReadPatch but takes content as a byte slice.
func ParseBytes(name string, content []byte) (*patch.Patch, error) {
	return ReadPatch(name, bytes.NewReader(content))
}

// ParseString is like ReadPatch but takes content as a string.
func ParseString(name, content string) (*patch.Patch, error) {
	return ReadPatch(name, strings.NewReader(content))
}

// Atom converts token text to an atom.
// Text is a float if the whole text is a C floating-point literal (see parseNumber),
// otherwise the text is interned in symbols. Go-only syntax such as digit separators gives a symbol.
// Empty text gives absent atom.
func Atom(text []byte, symbols *symtab.Table) patch.Atom {
	if len(text) == 0 {
		return patch.Atom{}
	}

	if v, isNumber := parseNumber(string(text)); isNumber {
		return patch.FloatAtom(v)
	}

	return patch.SymbolAtom(symbols.Intern(text))
}
