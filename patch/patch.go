// Package patch defines parsed representation of a patch file.
package patch

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ava12/pdpatch/symtab"
)

// Kind is the type of value stored in Atom.
type Kind uint8

const (
	Absent Kind = iota
	Float
	Symbol
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Float:
		return "float"
	case Symbol:
		return "symbol"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Atom is a single token value: absent, float, or symbol.
// Zero Atom is absent.
type Atom struct {
	kind Kind
	num  float64
	sym  symtab.Symbol
}

// FloatAtom creates float atom.
func FloatAtom(v float64) Atom {
	return Atom{kind: Float, num: v}
}

// SymbolAtom creates symbol atom.
func SymbolAtom(s symtab.Symbol) Atom {
	return Atom{kind: Symbol, sym: s}
}

func (a Atom) Kind() Kind {
	return a.kind
}

// Float returns stored number and true or 0 and false if a is not a float atom.
func (a Atom) Float() (float64, bool) {
	return a.num, a.kind == Float
}

// Symbol returns stored symbol and true or zero Symbol and false if a is not a symbol atom.
func (a Atom) Symbol() (symtab.Symbol, bool) {
	return a.sym, a.kind == Symbol
}

// IsSymbol tells whether a is a symbol atom with given text.
func (a Atom) IsSymbol(text string) bool {
	return a.kind == Symbol && a.sym.Is(text)
}

// Equal compares atom kinds and values, symbols are compared by text.
func (a Atom) Equal(b Atom) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Float:
		return a.num == b.num
	case Symbol:
		return a.sym.Text() == b.sym.Text()
	default:
		return true
	}
}

// String returns debug representation: #n(), #f(value), or #s(text).
func (a Atom) String() string {
	switch a.kind {
	case Float:
		return "#f(" + FormatFloat(a.num) + ")"
	case Symbol:
		return "#s(" + a.sym.Text() + ")"
	default:
		return "#n()"
	}
}

// FormatFloat formats v using at most 6 significant digits and the shortest of fixed and exponent notation.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Record is a single statement, a list of atoms between two terminators.
type Record struct {
	atoms []Atom
}

// NewRecord creates a record holding atoms. Record takes ownership of atoms.
func NewRecord(atoms []Atom) Record {
	return Record{atoms}
}

func (r Record) Len() int {
	return len(r.atoms)
}

// At returns i-th atom or absent atom if i is out of range.
func (r Record) At(i int) Atom {
	if i < 0 || i >= len(r.atoms) {
		return Atom{}
	}
	return r.atoms[i]
}

// Atoms returns underlying atom slice. Returned slice must not be modified.
func (r Record) Atoms() []Atom {
	return r.atoms
}

// Equal compares records atom by atom.
func (r Record) Equal(other Record) bool {
	if len(r.atoms) != len(other.atoms) {
		return false
	}
	for i, a := range r.atoms {
		if !a.Equal(other.atoms[i]) {
			return false
		}
	}
	return true
}

// String returns space-separated debug representations of atoms.
func (r Record) String() string {
	var sb strings.Builder
	for i, a := range r.atoms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}

// Patch is a parsed patch file: a list of records and a symbol table owning all symbols used by record atoms.
// Patch must not be modified after construction.
type Patch struct {
	records []Record
	symbols *symtab.Table
}

// New creates a patch. Patch takes ownership of records and symbols.
// nil symbols are replaced with empty table.
func New(records []Record, symbols *symtab.Table) *Patch {
	if symbols == nil {
		symbols = symtab.New()
	}
	return &Patch{records, symbols}
}

// Records returns underlying record slice. Returned slice must not be modified.
// The first record is the root canvas declaration in well-formed patches.
func (p *Patch) Records() []Record {
	return p.records
}

func (p *Patch) Len() int {
	return len(p.records)
}

// Record returns i-th record or empty record if i is out of range.
func (p *Patch) Record(i int) Record {
	if i < 0 || i >= len(p.records) {
		return Record{}
	}
	return p.records[i]
}

func (p *Patch) Symbols() *symtab.Table {
	return p.symbols
}

// Equal compares patches record by record.
func (p *Patch) Equal(other *Patch) bool {
	if len(p.records) != len(other.records) {
		return false
	}
	for i, r := range p.records {
		if !r.Equal(other.records[i]) {
			return false
		}
	}
	return true
}

// WriteTo writes debug representation of the patch, one line per record prefixed with record index.
func (p *Patch) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for i, r := range p.records {
		n, e := fmt.Fprintf(bw, "%6d:   %s\n", i, r)
		total += int64(n)
		if e != nil {
			return total, e
		}
	}
	return total, bw.Flush()
}

func (p *Patch) String() string {
	var sb strings.Builder
	_, _ = p.WriteTo(&sb)
	return sb.String()
}
