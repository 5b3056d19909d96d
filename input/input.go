// Package input loads patch files from local paths or HTTP URLs, decompressing gzip and zstd content.
package input

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Compression kinds detected by Load.
const (
	Plain = ""
	Gzip  = "gzip"
	Zstd  = "zstd"
)

// DefaultMaxSize limits raw and decompressed content size.
const DefaultMaxSize = 64 << 20

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ErrTooLarge is returned (possibly wrapped) when content exceeds size limit.
var ErrTooLarge = errors.New("input is too large")

// Input is loaded patch file content.
type Input struct {
	// Name is the local path or URL.
	Name string
	// Remote is true for HTTP(S) URLs.
	Remote bool
	// Compression is one of Plain, Gzip, or Zstd.
	Compression string
	// Digest is hex SHA-256 of raw (compressed) content.
	Digest string
	// Content is decompressed content.
	Content []byte
}

// Reader returns a reader over decompressed content.
func (in *Input) Reader() io.Reader {
	return bytes.NewReader(in.Content)
}

// Loader loads inputs. Zero Loader is not usable, use New.
type Loader struct {
	http    *resty.Client
	maxSize int64
}

// New creates Loader. timeout limits each HTTP request, zero means no limit.
// maxSize <= 0 means DefaultMaxSize.
func New(timeout time.Duration, maxSize int64) *Loader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	c := resty.New().SetTimeout(timeout)
	return &Loader{http: c, maxSize: maxSize}
}

// IsURL tells whether name is loaded over HTTP.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Load reads the whole input named name, "-" means standard input.
func (l *Loader) Load(ctx context.Context, name string) (*Input, error) {
	var raw []byte
	var e error
	remote := IsURL(name)
	switch {
	case remote:
		raw, e = l.fetch(ctx, name)
	case name == "-":
		raw, e = l.readAll(os.Stdin)
	default:
		raw, e = l.readFile(name)
	}
	if e != nil {
		return nil, e
	}

	sum := sha256.Sum256(raw)
	in := &Input{Name: name, Remote: remote, Digest: hex.EncodeToString(sum[:])}
	in.Compression, in.Content, e = l.decompress(raw)
	if e != nil {
		return nil, errors.Wrapf(e, "decompress %s", name)
	}
	return in, nil
}

func (l *Loader) readFile(name string) ([]byte, error) {
	f, e := os.Open(name)
	if e != nil {
		return nil, errors.Wrap(e, "open patch")
	}
	defer f.Close()

	raw, e := l.readAll(f)
	return raw, errors.Wrapf(e, "read %s", name)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, e := l.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if e != nil {
		return nil, errors.Wrapf(e, "fetch %s", url)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		return nil, errors.Errorf("fetch %s: %s", url, resp.Status())
	}

	raw, e := l.readAll(body)
	return raw, errors.Wrapf(e, "fetch %s", url)
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	raw, e := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if e != nil {
		return nil, e
	}
	if int64(len(raw)) > l.maxSize {
		return nil, errors.Wrapf(ErrTooLarge, "more than %d bytes", l.maxSize)
	}
	return raw, nil
}

func (l *Loader) decompress(raw []byte) (string, []byte, error) {
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		zr, e := gzip.NewReader(bytes.NewReader(raw))
		if e != nil {
			return Gzip, nil, e
		}
		defer zr.Close()
		content, e := l.readAll(zr)
		return Gzip, content, e

	case bytes.HasPrefix(raw, zstdMagic):
		zr, e := zstd.NewReader(bytes.NewReader(raw))
		if e != nil {
			return Zstd, nil, e
		}
		defer zr.Close()
		content, e := l.readAll(zr)
		return Zstd, content, e

	default:
		return Plain, raw, nil
	}
}
