/*
Package pdpatch reads Pure Data patch files and extracts a few facts about them.

Consists of subpackages:
  - source: byte input with line and column tracking;
  - lexer: splits input into word and terminator tokens, resolving escapes;
  - parser: builds a patch (records of atoms plus a symbol table) from tokens;
  - patch: atom, record, and patch types and their debug rendering;
  - symtab: symbol interning;
  - match: typed matchers for "#X obj" records;
  - facts: audio channel counts, MIDI capability, and root canvas geometry;
  - input: opens local, remote, and compressed patch files;
  - index: SQLite storage for extracted reports;
  - cmd/pdinfo: console utility printing reports for patch files.

Typical usage is:

	p, e := parser.ReadPatch(name, r)
	if e != nil {
		return e
	}
	report := facts.Collect(p)

A patch is immutable once read, it is safe to extract facts from the same patch
in several goroutines.
*/
package pdpatch

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	ReadErrors = 101 // used by lexer and parser
)

// Error is the error type returned by the patch reader.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int

	// Cause contains underlying error (e.g. reader failure) or nil.
	Cause error
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	} else if name != "" {
		msg += " in " + name
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns Error.Cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// WrapErrorPos is like FormatErrorPos but also records cause.
// Error message is followed by cause message.
func WrapErrorPos(pos SourcePos, code int, cause error, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	e := NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
	e.Cause = cause
	return e
}
