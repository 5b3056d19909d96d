package input

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/ava12/pdpatch/internal/test"
)

const sample = "#N canvas 0 0 400 300 12;\n#X obj 10 10 dac~;\n"

func gzipped(t *testing.T, content string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, e := w.Write([]byte(content)); e != nil {
		t.Fatal(e)
	}
	if e := w.Close(); e != nil {
		t.Fatal(e)
	}
	return buf.Bytes()
}

func zstded(t *testing.T, content string) []byte {
	w, e := zstd.NewWriter(nil)
	if e != nil {
		t.Fatal(e)
	}
	defer w.Close()
	return w.EncodeAll([]byte(content), nil)
}

func digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func writeFile(t *testing.T, name string, raw []byte) string {
	path := filepath.Join(t.TempDir(), name)
	if e := os.WriteFile(path, raw, 0o666); e != nil {
		t.Fatal(e)
	}
	return path
}

func TestLoadFiles(t *testing.T) {
	samples := []struct {
		name        string
		raw         []byte
		compression string
	}{
		{"plain.pd", []byte(sample), Plain},
		{"patch.pd.gz", gzipped(t, sample), Gzip},
		{"patch.pd.zst", zstded(t, sample), Zstd},
	}

	l := New(time.Second, 0)
	for i, s := range samples {
		path := writeFile(t, s.name, s.raw)
		in, e := l.Load(context.Background(), path)
		if e != nil {
			t.Fatalf("sample #%d: unexpected error %s", i, e)
		}
		test.ExpectString(t, s.compression, in.Compression)
		test.ExpectString(t, sample, string(in.Content))
		test.ExpectString(t, digest(s.raw), in.Digest)
		test.ExpectBool(t, false, in.Remote)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, e := New(0, 0).Load(context.Background(), filepath.Join(t.TempDir(), "missing.pd"))
	test.Assert(t, e != nil && os.IsNotExist(errors.Cause(e)), "expecting not exist error, got %v", e)
}

func TestLoadTooLarge(t *testing.T) {
	path := writeFile(t, "big.pd", []byte(sample))
	_, e := New(0, 8).Load(context.Background(), path)
	test.Assert(t, errors.Is(e, ErrTooLarge), "expecting size error, got %v", e)

	path = writeFile(t, "big.pd.gz", gzipped(t, string(bytes.Repeat([]byte(";"), 1000))))
	_, e = New(0, 100).Load(context.Background(), path)
	test.Assert(t, errors.Is(e, ErrTooLarge), "expecting size error for decompressed content, got %v", e)
}

func TestLoadURL(t *testing.T) {
	raw := gzipped(t, sample)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/patch.pd.gz" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	l := New(5*time.Second, 0)
	in, e := l.Load(context.Background(), srv.URL+"/patch.pd.gz")
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectBool(t, true, in.Remote)
	test.ExpectString(t, Gzip, in.Compression)
	test.ExpectString(t, sample, string(in.Content))

	_, e = l.Load(context.Background(), srv.URL+"/missing.pd")
	test.Assert(t, e != nil, "expecting error for missing URL")
}

func TestIsURL(t *testing.T) {
	test.ExpectBool(t, true, IsURL("https://example.com/a.pd"))
	test.ExpectBool(t, true, IsURL("http://example.com/a.pd"))
	test.ExpectBool(t, false, IsURL("ftp://example.com/a.pd"))
	test.ExpectBool(t, false, IsURL("patches/http.pd"))
}
