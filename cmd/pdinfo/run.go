package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ava12/pdpatch/facts"
	"github.com/ava12/pdpatch/index"
	"github.com/ava12/pdpatch/input"
	"github.com/ava12/pdpatch/parser"
	"github.com/ava12/pdpatch/patch"
)

const (
	exitOk    = 0
	exitUsage = 2
	exitError = 3
)

type config struct {
	dump      bool
	json      bool
	indexPath string
	list      bool
	timeout   time.Duration
	debug     bool
	files     []string
}

func envString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envBool(name string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func envDuration(name string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if d, e := time.ParseDuration(v); e == nil {
			return d
		}
	}
	return def
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	var cfg config
	fs := flag.NewFlagSet("pdinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage is  pdinfo [-dump=false] [-json] [-index <db>] [-timeout <duration>] [-debug] <file>...")
		fmt.Fprintln(fs.Output(), "          pdinfo -index <db> -list")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "  <file>")
		fmt.Fprintln(fs.Output(), "\tpatch file name, \"-\" for stdin, or http(s) URL")
	}

	fs.BoolVar(&cfg.dump, "dump", envBool("PDINFO_DUMP", true), "print records after report")
	fs.BoolVar(&cfg.json, "json", false, "print one JSON object per file")
	fs.StringVar(&cfg.indexPath, "index", envString("PDINFO_INDEX", ""), "SQLite database to store reports in")
	fs.BoolVar(&cfg.list, "list", false, "print reports stored in the index")
	fs.DurationVar(&cfg.timeout, "timeout", envDuration("PDINFO_TIMEOUT", 30*time.Second), "HTTP request timeout")
	fs.BoolVar(&cfg.debug, "debug", envBool("PDINFO_DEBUG", false), "print debug info to stderr")
	if e := fs.Parse(args); e != nil {
		return nil, e
	}

	cfg.files = fs.Args()
	if cfg.list && cfg.indexPath == "" {
		fmt.Fprintln(fs.Output(), "-list requires -index")
		fs.Usage()
		return nil, flag.ErrHelp
	}
	if !cfg.list && len(cfg.files) == 0 {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	return &cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)
	cfg, e := parseFlags(args, stderr)
	if e != nil {
		return exitUsage
	}

	var store *index.Store
	if cfg.indexPath != "" {
		var db *sql.DB
		db, e = index.Open(cfg.indexPath)
		if e != nil {
			logger.Println(e)
			return exitError
		}
		defer db.Close()
		store = index.NewStore(db)
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if cfg.list {
		if e = listIndex(ctx, store, out, cfg.json); e != nil {
			logger.Println(e)
			return exitError
		}
		return exitOk
	}

	loader := input.New(cfg.timeout, 0)
	code := exitOk
	for i, name := range cfg.files {
		e = processFile(ctx, cfg, loader, store, logger, out, name, i > 0)
		if e != nil {
			// stdout and stderr may be the same terminal
			_ = out.Flush()
			logger.Printf("%s: %s", name, e)
			code = exitError
		}
	}
	return code
}

func processFile(ctx context.Context, cfg *config, loader *input.Loader, store *index.Store, logger *log.Logger, out io.Writer, name string, separate bool) error {
	in, e := loader.Load(ctx, name)
	if e != nil {
		return e
	}

	p, e := parser.ReadPatch(name, in.Reader())
	if e != nil {
		return e
	}

	if cfg.debug {
		logger.Printf("[debug] %s: remote=%v compression=%q bytes=%d records=%d symbols=%d sha256=%s",
			name, in.Remote, in.Compression, len(in.Content), p.Len(), p.Symbols().Len(), in.Digest)
	}

	report := facts.Collect(p)
	if store != nil {
		entry := &index.Entry{
			Source:      name,
			Digest:      in.Digest,
			Compression: in.Compression,
			Records:     p.Len(),
			Symbols:     p.Symbols().Len(),
			Report:      report,
		}
		if e = store.Put(ctx, entry); e != nil {
			return e
		}
	}

	if cfg.json {
		return writeJSON(out, name, p, report, cfg.dump)
	}

	if separate {
		if _, e = io.WriteString(out, "\n"); e != nil {
			return e
		}
	}
	if e = writeReport(out, name, report); e != nil {
		return e
	}
	if cfg.dump {
		_, e = p.WriteTo(out)
	}
	return e
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeReport(w io.Writer, name string, r facts.Report) error {
	var sb strings.Builder
	sb.WriteString("<" + name + ">\n")
	sb.WriteString("   -- adc channels: " + strconv.FormatUint(uint64(r.AdcChannels), 10) + "\n")
	sb.WriteString("   -- dac channels: " + strconv.FormatUint(uint64(r.DacChannels), 10) + "\n")
	sb.WriteString("   -- midi in: " + yesNo(r.MidiIn) + "\n")
	sb.WriteString("   -- midi out: " + yesNo(r.MidiOut) + "\n")
	if c := r.Canvas; c != nil {
		fmt.Fprintf(&sb, "   -- root canvas position: %d %d\n", c.Pos[0], c.Pos[1])
		fmt.Fprintf(&sb, "   -- root canvas size: %d %d\n", c.Size[0], c.Size[1])
		fmt.Fprintf(&sb, "   -- root canvas font: %d\n", c.Font)
	}
	_, e := io.WriteString(w, sb.String())
	return e
}

type jsonReport struct {
	Source  string       `json:"source"`
	Records int          `json:"records"`
	Symbols int          `json:"symbols"`
	Report  facts.Report `json:"report"`
	Dump    []string     `json:"dump,omitempty"`
}

func writeJSON(w io.Writer, name string, p *patch.Patch, r facts.Report, dump bool) error {
	jr := jsonReport{Source: name, Records: p.Len(), Symbols: p.Symbols().Len(), Report: r}
	if dump {
		jr.Dump = make([]string, p.Len())
		for i, rec := range p.Records() {
			jr.Dump[i] = rec.String()
		}
	}
	return errors.Wrap(json.NewEncoder(w).Encode(jr), "encode report")
}

func listIndex(ctx context.Context, store *index.Store, w io.Writer, asJSON bool) error {
	entries, e := store.List(ctx)
	if e != nil {
		return e
	}

	enc := json.NewEncoder(w)
	for i, entry := range entries {
		if asJSON {
			jr := jsonReport{Source: entry.Source, Records: entry.Records, Symbols: entry.Symbols, Report: entry.Report}
			if e = enc.Encode(jr); e != nil {
				return errors.Wrap(e, "encode report")
			}
			continue
		}

		if i > 0 {
			if _, e = io.WriteString(w, "\n"); e != nil {
				return e
			}
		}
		if e = writeReport(w, entry.Source, entry.Report); e != nil {
			return e
		}
		_, e = fmt.Fprintf(w, "   -- indexed: %s sha256 %s\n", entry.IndexedAt.Format(time.RFC3339), entry.Digest)
		if e != nil {
			return e
		}
	}
	return nil
}
