package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ava12/pdpatch/internal/test"
)

const synthPatch = "#N canvas 0 50 450 300 12;\n#X obj 10 10 adc~ 1 3;\n#X obj 10 40 dac~;\n#X obj 30 10 notein;\n"

func writePatch(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if e := os.WriteFile(path, []byte(content), 0o666); e != nil {
		t.Fatal(e)
	}
	return path
}

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestTextReport(t *testing.T) {
	dir := t.TempDir()
	synth := writePatch(t, dir, "synth.pd", synthPatch)
	bare := writePatch(t, dir, "bare.pd", "#X obj 0 0 ctlout;\n")

	code, stdout, stderr := runArgs(synth, bare)
	test.ExpectInt(t, exitOk, code)
	test.ExpectString(t, "", stderr)

	expected := "<" + synth + ">\n" +
		"   -- adc channels: 3\n" +
		"   -- dac channels: 2\n" +
		"   -- midi in: yes\n" +
		"   -- midi out: no\n" +
		"   -- root canvas position: 0 50\n" +
		"   -- root canvas size: 450 300\n" +
		"   -- root canvas font: 12\n" +
		"     0:   #s(#N) #s(canvas) #f(0) #f(50) #f(450) #f(300) #f(12)\n" +
		"     1:   #s(#X) #s(obj) #f(10) #f(10) #s(adc~) #f(1) #f(3)\n" +
		"     2:   #s(#X) #s(obj) #f(10) #f(40) #s(dac~)\n" +
		"     3:   #s(#X) #s(obj) #f(30) #f(10) #s(notein)\n" +
		"\n" +
		"<" + bare + ">\n" +
		"   -- adc channels: 0\n" +
		"   -- dac channels: 0\n" +
		"   -- midi in: no\n" +
		"   -- midi out: yes\n" +
		"     0:   #s(#X) #s(obj) #f(0) #f(0) #s(ctlout)\n"
	test.ExpectString(t, expected, stdout)
}

func TestFailingFileDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	broken := writePatch(t, dir, "broken.pd", "#X obj 1 2 dac~")
	escaped := writePatch(t, dir, "escaped.pd", "\\q;")
	good := writePatch(t, dir, "good.pd", "#X obj 0 0 dac~;")

	code, stdout, stderr := runArgs("-dump=false", broken, escaped, filepath.Join(dir, "missing.pd"), good)
	test.ExpectInt(t, exitError, code)
	test.Assert(t, strings.Contains(stdout, "<"+good+">\n   -- adc channels: 0\n   -- dac channels: 2\n"), "expecting report for good file, got %q", stdout)
	test.Assert(t, !strings.Contains(stdout, "#s("), "expecting no dump, got %q", stdout)
	test.Assert(t, strings.Contains(stderr, "premature end"), "expecting premature end error, got %q", stderr)
	test.Assert(t, strings.Contains(stderr, "unrecognized escape"), "expecting escape error, got %q", stderr)
	test.Assert(t, strings.Contains(stderr, "missing.pd"), "expecting open error, got %q", stderr)
}

func TestJSONReport(t *testing.T) {
	synth := writePatch(t, t.TempDir(), "synth.pd", synthPatch)
	code, stdout, _ := runArgs("-json", synth)
	test.ExpectInt(t, exitOk, code)

	var got jsonReport
	e := json.Unmarshal([]byte(stdout), &got)
	test.Assert(t, e == nil, "unexpected error %v for %q", e, stdout)
	test.ExpectString(t, synth, got.Source)
	test.ExpectInt(t, 4, got.Records)
	test.ExpectUint(t, 3, got.Report.AdcChannels)
	test.Assert(t, got.Report.Canvas != nil && got.Report.Canvas.Font == 12, "unexpected canvas %v", got.Report.Canvas)
	test.ExpectInt(t, 4, len(got.Dump))
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "index.db")
	synth := writePatch(t, dir, "synth.pd", synthPatch)

	code, _, stderr := runArgs("-index", dbPath, "-dump=false", synth)
	test.Assert(t, code == exitOk, "unexpected exit code %d: %s", code, stderr)

	code, stdout, stderr := runArgs("-index", dbPath, "-list")
	test.Assert(t, code == exitOk, "unexpected exit code %d: %s", code, stderr)
	test.Assert(t, strings.HasPrefix(stdout, "<"+synth+">\n   -- adc channels: 3\n"), "unexpected listing %q", stdout)
	test.Assert(t, strings.Contains(stdout, "   -- indexed: "), "unexpected listing %q", stdout)
}

func TestUsage(t *testing.T) {
	code, _, stderr := runArgs()
	test.ExpectInt(t, exitUsage, code)
	test.Assert(t, strings.Contains(stderr, "Usage is"), "expecting usage, got %q", stderr)

	code, _, stderr = runArgs("-list")
	test.ExpectInt(t, exitUsage, code)
	test.Assert(t, strings.Contains(stderr, "-list requires -index"), "unexpected message %q", stderr)
}
