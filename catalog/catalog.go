// Package catalog keeps beatmap summaries in SQLite so scores can be
// synthesized by beatmap ID without the .osu file at hand.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver.

	"hitstats/stats"
)

var ErrNotFound = errors.New("beatmap not in catalog")

// fixed width so imported_at sorts chronologically as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one beatmap file summarized for one ruleset.
type Entry struct {
	BeatmapID    int           `json:"beatmap_id" yaml:"beatmap_id"`
	BeatmapSetID int           `json:"beatmapset_id" yaml:"beatmapset_id"`
	Checksum     string        `json:"checksum" yaml:"checksum"`
	Ruleset      stats.Ruleset `json:"ruleset" yaml:"ruleset"`
	Artist       string        `json:"artist" yaml:"artist"`
	Title        string        `json:"title" yaml:"title"`
	Version      string        `json:"version" yaml:"version"`
	Summary      stats.Summary `json:"summary" yaml:"summary"`
	ImportedAt   time.Time     `json:"imported_at" yaml:"imported_at"`
}

// Catalog wraps SQLite access for beatmap summaries.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one writer; parallel imports would otherwise hit SQLITE_BUSY
	db.SetMaxOpenConns(1)
	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS beatmaps (
			checksum TEXT NOT NULL,
			ruleset INTEGER NOT NULL,
			beatmap_id INTEGER NOT NULL,
			beatmapset_id INTEGER NOT NULL,
			artist TEXT NOT NULL,
			title TEXT NOT NULL,
			version TEXT NOT NULL,
			total_base_objects INTEGER NOT NULL,
			sliders INTEGER NOT NULL,
			spinners INTEGER NOT NULL,
			large_ticks INTEGER NOT NULL,
			small_ticks INTEGER NOT NULL,
			hold_notes INTEGER NOT NULL,
			imported_at TEXT NOT NULL,
			PRIMARY KEY (checksum, ruleset)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_beatmaps_beatmap_id ON beatmaps(beatmap_id, ruleset);`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Put inserts or replaces the entry for its checksum and ruleset.
func (c *Catalog) Put(ctx context.Context, e Entry) error {
	if !e.Ruleset.Valid() {
		return fmt.Errorf("%w: %d", stats.ErrInvalidRuleset, int(e.Ruleset))
	}
	if e.ImportedAt.IsZero() {
		e.ImportedAt = time.Now()
	}
	s := e.Summary
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO beatmaps (checksum, ruleset, beatmap_id, beatmapset_id, artist, title, version,
			total_base_objects, sliders, spinners, large_ticks, small_ticks, hold_notes, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (checksum, ruleset) DO UPDATE SET
			beatmap_id = excluded.beatmap_id,
			beatmapset_id = excluded.beatmapset_id,
			artist = excluded.artist,
			title = excluded.title,
			version = excluded.version,
			total_base_objects = excluded.total_base_objects,
			sliders = excluded.sliders,
			spinners = excluded.spinners,
			large_ticks = excluded.large_ticks,
			small_ticks = excluded.small_ticks,
			hold_notes = excluded.hold_notes,
			imported_at = excluded.imported_at`,
		e.Checksum, int(e.Ruleset), e.BeatmapID, e.BeatmapSetID, e.Artist, e.Title, e.Version,
		s.TotalBaseObjects, s.Sliders, s.Spinners, s.LargeTicks, s.SmallTicks, s.HoldNotes,
		e.ImportedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", e.Checksum, err)
	}
	return nil
}

const selectColumns = `SELECT checksum, ruleset, beatmap_id, beatmapset_id, artist, title, version,
	total_base_objects, sliders, spinners, large_ticks, small_ticks, hold_notes, imported_at
	FROM beatmaps`

// Get returns the most recently imported entry for a beatmap ID.
func (c *Catalog) Get(ctx context.Context, beatmapID int, r stats.Ruleset) (Entry, error) {
	row := c.db.QueryRowContext(ctx,
		selectColumns+` WHERE beatmap_id = ? AND ruleset = ? ORDER BY imported_at DESC LIMIT 1`,
		beatmapID, int(r))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: beatmap %d (%s)", ErrNotFound, beatmapID, r)
	}
	return e, err
}

func (c *Catalog) GetByChecksum(ctx context.Context, checksum string, r stats.Ruleset) (Entry, error) {
	row := c.db.QueryRowContext(ctx, selectColumns+` WHERE checksum = ? AND ruleset = ?`, checksum, int(r))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: checksum %s (%s)", ErrNotFound, checksum, r)
	}
	return e, err
}

// List returns every entry for a beatmap ID, or the whole catalog when
// beatmapID is zero, ordered by beatmap ID then ruleset.
func (c *Catalog) List(ctx context.Context, beatmapID int) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		selectColumns+` WHERE (? = 0 OR beatmap_id = ?) ORDER BY beatmap_id, ruleset, imported_at`,
		beatmapID, beatmapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e          Entry
		ruleset    int
		importedAt string
	)
	s := &e.Summary
	if err := row.Scan(&e.Checksum, &ruleset, &e.BeatmapID, &e.BeatmapSetID, &e.Artist, &e.Title, &e.Version,
		&s.TotalBaseObjects, &s.Sliders, &s.Spinners, &s.LargeTicks, &s.SmallTicks, &s.HoldNotes, &importedAt); err != nil {
		return Entry{}, err
	}
	r, err := stats.RulesetFromID(ruleset)
	if err != nil {
		return Entry{}, err
	}
	e.Ruleset = r
	e.ImportedAt, err = time.Parse(timeLayout, importedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("imported_at %q: %w", importedAt, err)
	}
	return e, nil
}
