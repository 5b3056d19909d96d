package index

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/ava12/pdpatch/facts"
)

// Entry is a stored report about a single patch file.
type Entry struct {
	ID          int64
	Source      string
	Digest      string
	Compression string
	Records     int
	Symbols     int
	Report      facts.Report
	IndexedAt   time.Time
}

// Store reads and writes report entries.
type Store struct {
	DB *sql.DB
	SQ sq.StatementBuilderType
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, SQ: sq.StatementBuilder}
}

var entryColumns = []string{
	"id",
	"source",
	"digest",
	"compression",
	"records",
	"symbols",
	"adc_channels",
	"dac_channels",
	"midi_in",
	"midi_out",
	"has_canvas",
	"canvas_x",
	"canvas_y",
	"canvas_width",
	"canvas_height",
	"canvas_font",
	"indexed_at",
}

// Put stores entry, replacing the report for the same source and digest.
// Sets entry.IndexedAt.
func (s *Store) Put(ctx context.Context, entry *Entry) error {
	now := time.Now().UTC()
	r := entry.Report
	var c facts.Canvas
	if r.Canvas != nil {
		c = *r.Canvas
	}

	q := s.SQ.
		Insert("reports").
		Columns(entryColumns[1:]...).
		Values(
			entry.Source,
			entry.Digest,
			entry.Compression,
			entry.Records,
			entry.Symbols,
			r.AdcChannels,
			r.DacChannels,
			r.MidiIn,
			r.MidiOut,
			r.Canvas != nil,
			c.Pos[0],
			c.Pos[1],
			c.Size[0],
			c.Size[1],
			c.Font,
			now.Format(time.RFC3339),
		).
		Suffix("ON CONFLICT(source, digest) DO UPDATE SET " +
			"compression=excluded.compression, records=excluded.records, symbols=excluded.symbols, " +
			"adc_channels=excluded.adc_channels, dac_channels=excluded.dac_channels, " +
			"midi_in=excluded.midi_in, midi_out=excluded.midi_out, has_canvas=excluded.has_canvas, " +
			"canvas_x=excluded.canvas_x, canvas_y=excluded.canvas_y, canvas_width=excluded.canvas_width, " +
			"canvas_height=excluded.canvas_height, canvas_font=excluded.canvas_font, indexed_at=excluded.indexed_at")
	sqlStr, args, e := q.ToSql()
	if e != nil {
		return errors.Wrap(e, "build insert")
	}
	if _, e = s.DB.ExecContext(ctx, sqlStr, args...); e != nil {
		return errors.Wrapf(e, "store report for %s", entry.Source)
	}
	entry.IndexedAt = now
	return nil
}

// Get returns the most recently indexed entry for source or nil if there is none.
func (s *Store) Get(ctx context.Context, source string) (*Entry, error) {
	q := s.SQ.Select(entryColumns...).
		From("reports").
		Where(sq.Eq{"source": source}).
		OrderBy("indexed_at DESC", "id DESC").
		Limit(1)
	entries, e := s.query(ctx, q)
	if e != nil || len(entries) == 0 {
		return nil, e
	}
	return entries[0], nil
}

// Find returns entry with given digest or nil if there is none.
func (s *Store) Find(ctx context.Context, digest string) (*Entry, error) {
	q := s.SQ.Select(entryColumns...).
		From("reports").
		Where(sq.Eq{"digest": digest}).
		OrderBy("id").
		Limit(1)
	entries, e := s.query(ctx, q)
	if e != nil || len(entries) == 0 {
		return nil, e
	}
	return entries[0], nil
}

// List returns all entries ordered by source.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	q := s.SQ.Select(entryColumns...).From("reports").OrderBy("source", "id")
	return s.query(ctx, q)
}

func (s *Store) query(ctx context.Context, q sq.SelectBuilder) ([]*Entry, error) {
	sqlStr, args, e := q.ToSql()
	if e != nil {
		return nil, errors.Wrap(e, "build select")
	}
	rows, e := s.DB.QueryContext(ctx, sqlStr, args...)
	if e != nil {
		return nil, errors.Wrap(e, "query reports")
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		entry, e := scanEntry(rows)
		if e != nil {
			return nil, e
		}
		out = append(out, entry)
	}
	return out, errors.Wrap(rows.Err(), "query reports")
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var entry Entry
	var hasCanvas bool
	var c facts.Canvas
	var indexed string
	r := &entry.Report
	if e := rows.Scan(
		&entry.ID,
		&entry.Source,
		&entry.Digest,
		&entry.Compression,
		&entry.Records,
		&entry.Symbols,
		&r.AdcChannels,
		&r.DacChannels,
		&r.MidiIn,
		&r.MidiOut,
		&hasCanvas,
		&c.Pos[0],
		&c.Pos[1],
		&c.Size[0],
		&c.Size[1],
		&c.Font,
		&indexed,
	); e != nil {
		return nil, errors.Wrap(e, "scan report")
	}
	if hasCanvas {
		r.Canvas = &c
	}
	indexedAt, e := time.Parse(time.RFC3339, indexed)
	if e != nil {
		return nil, errors.Wrapf(e, "scan report for %s", entry.Source)
	}
	entry.IndexedAt = indexedAt
	return &entry, nil
}
