// Package match recognizes object declaration records: "#X obj <x> <y> [<command> <args>...]".
package match

import (
	"github.com/ava12/pdpatch/internal/conv"
	"github.com/ava12/pdpatch/patch"
	"github.com/ava12/pdpatch/symtab"
)

// Obj is an object declaration: position and arguments following it.
// Args shares storage with the matched record and must not be modified.
type Obj struct {
	X, Y int
	Args []patch.Atom
}

// Cmd is an object declaration with a command name, e.g. "#X obj 10 10 dac~ 1 2".
// Args contains atoms following the command and shares storage with the matched record.
type Cmd struct {
	X, Y int
	Name symtab.Symbol
	Args []patch.Atom
}

// Int converts a float atom to int if the conversion is lossless.
// Values outside of 32-bit range are rejected so that results do not depend on platform.
func Int(a patch.Atom) (int, bool) {
	v, isFloat := a.Float()
	if !isFloat {
		return 0, false
	}
	i, ok := conv.To[int32](v)
	return int(i), ok
}

// Uint converts a float atom to uint if the conversion is lossless.
// Values outside of 32-bit range are rejected.
func Uint(a patch.Atom) (uint, bool) {
	v, isFloat := a.Float()
	if !isFloat {
		return 0, false
	}
	u, ok := conv.To[uint32](v)
	return uint(u), ok
}

// ParseObj matches "#X obj <x> <y> ..." record, x and y must be integers.
// Returns false if record has a different shape, this is not an error.
func ParseObj(rec patch.Record) (Obj, bool) {
	atoms := rec.Atoms()
	if len(atoms) < 4 || !atoms[0].IsSymbol("#X") || !atoms[1].IsSymbol("obj") {
		return Obj{}, false
	}

	x, xValid := Int(atoms[2])
	y, yValid := Int(atoms[3])
	if !xValid || !yValid {
		return Obj{}, false
	}

	return Obj{X: x, Y: y, Args: atoms[4:]}, true
}

// ParseCmd matches "#X obj <x> <y> <command> ..." record, command must be a symbol.
// Returns false if record has a different shape.
func ParseCmd(rec patch.Record) (Cmd, bool) {
	obj, valid := ParseObj(rec)
	if !valid || len(obj.Args) == 0 {
		return Cmd{}, false
	}

	name, isSymbol := obj.Args[0].Symbol()
	if !isSymbol {
		return Cmd{}, false
	}

	return Cmd{X: obj.X, Y: obj.Y, Name: name, Args: obj.Args[1:]}, true
}
