// Package symtab implements symbol interning for patch atoms.
package symtab

import (
	"sort"
	"unsafe"
)

// Symbol is a handle to a string stored in a Table.
// Handles of equal texts interned into the same table are equal, so == may be used to compare them.
// Zero Symbol is not interned anywhere, its text is empty.
type Symbol struct {
	text *string
}

// Text returns symbol text.
func (s Symbol) Text() string {
	if s.text == nil {
		return ""
	}
	return *s.text
}

// Is tells whether symbol text equals to text.
func (s Symbol) Is(text string) bool {
	return s.text != nil && *s.text == text
}

// IsZero tells whether s is zero Symbol.
func (s Symbol) IsZero() bool {
	return s.text == nil
}

func (s Symbol) String() string {
	return s.Text()
}

// Table is a deduplicating store of symbol texts.
// Symbols cannot be deleted.
// Stored texts are copied, Intern may be called with a reusable buffer.
// Table is not safe for concurrent modification, read-only use is safe.
type Table struct {
	smap map[string]Symbol
}

// New creates empty symbol table.
func New() *Table {
	return &Table{smap: make(map[string]Symbol)}
}

// Intern returns the symbol for text, adding it to the table if needed.
func (t *Table) Intern(text []byte) Symbol {
	skey := ""
	if len(text) != 0 {
		skey = unsafe.String(&text[0], len(text))
	}
	if s, has := t.smap[skey]; has {
		return s
	}

	stored := string(text)
	s := Symbol{&stored}
	t.smap[stored] = s
	return s
}

// InternString is like Intern but takes a string.
func (t *Table) InternString(text string) Symbol {
	if s, has := t.smap[text]; has {
		return s
	}

	s := Symbol{&text}
	t.smap[text] = s
	return s
}

// Lookup returns stored symbol and true or zero Symbol and false if text is not interned.
func (t *Table) Lookup(text string) (Symbol, bool) {
	s, has := t.smap[text]
	return s, has
}

// Len returns the number of stored symbols.
func (t *Table) Len() int {
	return len(t.smap)
}

// Texts returns sorted list of stored symbol texts.
func (t *Table) Texts() []string {
	result := make([]string, 0, len(t.smap))
	for text := range t.smap {
		result = append(result, text)
	}
	sort.Strings(result)
	return result
}
