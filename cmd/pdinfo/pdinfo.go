/*
pdinfo is a console utility printing audio, MIDI, and canvas information about Pure Data patches.
Usage is

	pdinfo [-dump=false] [-json] [-index <db>] [-timeout <duration>] [-debug] <file>...
	pdinfo -index <db> -list

Each <file> is a local path, "-" for standard input, or an HTTP(S) URL; gzip and zstd compressed files are accepted.
A file that cannot be read or parsed is reported to stderr and the remaining files are still processed.

-dump=false suppresses record dump following each report;

-json prints one JSON object per file instead of text report;

-index <db> stores reports in SQLite database <db>;

-list prints reports stored in the index and exits;

-timeout <duration> limits each HTTP request;

-debug prints input details to stderr.

Defaults may be set with PDINFO_DUMP, PDINFO_INDEX, PDINFO_TIMEOUT, and PDINFO_DEBUG environment variables.
*/
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
