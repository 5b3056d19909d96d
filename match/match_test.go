package match

import (
	"testing"

	"github.com/ava12/pdpatch/internal/test"
	"github.com/ava12/pdpatch/parser"
	"github.com/ava12/pdpatch/patch"
)

func record(t *testing.T, src string) patch.Record {
	p, e := parser.ParseString("", src)
	if e != nil {
		t.Fatalf("%q: unexpected error %s", src, e)
	}
	return p.Record(0)
}

func TestParseObj(t *testing.T) {
	samples := []struct {
		src   string
		valid bool
		x, y  int
		args  string
	}{
		{"#X obj 10 20;", true, 10, 20, ""},
		{"#X obj -5 0 osc~ 440;", true, -5, 0, "#s(osc~) #f(440)"},
		{"#X obj 1 2 3;", true, 1, 2, "#f(3)"},
		{"#X obj 1.5 2;", false, 0, 0, ""},
		{"#X obj 1 1e10;", false, 0, 0, ""},
		{"#X obj 1 inf;", false, 0, 0, ""},
		{"#X obj 1;", false, 0, 0, ""},
		{"#X msg 1 2 bang;", false, 0, 0, ""},
		{"#N obj 1 2;", false, 0, 0, ""},
		{"#X obj a 2;", false, 0, 0, ""},
		{"1 obj 1 2;", false, 0, 0, ""},
		{";", false, 0, 0, ""},
	}

	for i, sample := range samples {
		obj, valid := ParseObj(record(t, sample.src))
		if valid != sample.valid {
			t.Errorf("sample #%d: expecting match %v, got %v", i, sample.valid, valid)
			continue
		}
		if !valid {
			continue
		}
		if obj.X != sample.x || obj.Y != sample.y {
			t.Errorf("sample #%d: expecting position %d %d, got %d %d", i, sample.x, sample.y, obj.X, obj.Y)
		}
		got := patch.NewRecord(obj.Args).String()
		if got != sample.args {
			t.Errorf("sample #%d: expecting args %q, got %q", i, sample.args, got)
		}
	}
}

func TestParseCmd(t *testing.T) {
	samples := []struct {
		src   string
		valid bool
		name  string
		args  string
	}{
		{"#X obj 10 10 adc~ 1 3;", true, "adc~", "#f(1) #f(3)"},
		{"#X obj 0 0 dac~;", true, "dac~", ""},
		{"#X obj 0 0 notein foo;", true, "notein", "#s(foo)"},
		{"#X obj 0 0;", false, "", ""},
		{"#X obj 0 0 5 dac~;", false, "", ""},
		{"#X obj 0 0.5 dac~;", false, "", ""},
	}

	for i, sample := range samples {
		cmd, valid := ParseCmd(record(t, sample.src))
		if valid != sample.valid {
			t.Errorf("sample #%d: expecting match %v, got %v", i, sample.valid, valid)
			continue
		}
		if !valid {
			continue
		}
		if !cmd.Name.Is(sample.name) {
			t.Errorf("sample #%d: expecting command %q, got %q", i, sample.name, cmd.Name.Text())
		}
		got := patch.NewRecord(cmd.Args).String()
		if got != sample.args {
			t.Errorf("sample #%d: expecting args %q, got %q", i, sample.args, got)
		}
	}
}

func TestArgsShareRecord(t *testing.T) {
	rec := record(t, "#X obj 3 4 metro 100;")
	cmd, valid := ParseCmd(rec)
	test.Assert(t, valid, "expecting match")
	test.ExpectInt(t, 3, cmd.X)
	test.ExpectInt(t, 4, cmd.Y)
	test.Assert(t, len(cmd.Args) == 1 && &cmd.Args[0] == &rec.Atoms()[5], "expecting args to be a view of record atoms")
}

func TestIntUint(t *testing.T) {
	i, ok := Int(patch.FloatAtom(-7))
	test.Assert(t, ok && i == -7, "expecting -7, got %d, %v", i, ok)
	_, ok = Int(patch.Atom{})
	test.ExpectBool(t, false, ok)
	_, ok = Uint(patch.FloatAtom(-1))
	test.ExpectBool(t, false, ok)
	u, ok := Uint(patch.FloatAtom(4294967295))
	test.Assert(t, ok && u == 4294967295, "expecting max uint32, got %d, %v", u, ok)
	_, ok = Uint(patch.FloatAtom(4294967296))
	test.ExpectBool(t, false, ok)
}
