package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runnerr0/linkpad/internal/bookmark"
)

// Store defines the interface for linkpad data operations. LoadAll is the
// boundary the query engine consumes: a fully decoded, insertion-ordered
// snapshot of every entry.
type Store interface {
	Add(ctx context.Context, entry *bookmark.Entry) error
	Get(ctx context.Context, id string) (*bookmark.Entry, error)
	Update(ctx context.Context, entry *bookmark.Entry) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]bookmark.Entry, error)
	ListTags(ctx context.Context) ([]TagCount, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getEntry    *sql.Stmt
	getTags     *sql.Stmt
	deleteEntry *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getEntry, err = s.db.Prepare(`
		SELECT id, url, title, extended, created_at FROM entries WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.getTags, err = s.db.Prepare(`
		SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY position
	`)
	if err != nil {
		return err
	}

	s.deleteEntry, err = s.db.Prepare(`DELETE FROM entries WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries the timestamp formats linkpad has written over time.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Add inserts a new entry. A missing ID is generated and a zero CreatedAt
// is set to now; both are immutable afterwards. Entries without a URL are
// rejected.
func (s *SQLiteStore) Add(ctx context.Context, entry *bookmark.Entry) error {
	if entry.URL == "" {
		return fmt.Errorf("entry URL must not be empty")
	}

	if entry.ID == "" {
		id, err := bookmark.NewID()
		if err != nil {
			return err
		}
		entry.ID = id
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, url, title, extended, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.URL, entry.Title, entry.Extended,
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	if err := insertTags(ctx, tx, entry.ID, entry.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites the mutable fields of an entry. ID and CreatedAt are
// preserved; the stored created_at is never touched.
func (s *SQLiteStore) Update(ctx context.Context, entry *bookmark.Entry) error {
	if entry.URL == "" {
		return fmt.Errorf("entry URL must not be empty")
	}
	entry.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE entries SET url = ?, title = ?, extended = ? WHERE id = ?`,
		entry.URL, entry.Title, entry.Extended, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s not found", entry.ID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entry_tags WHERE entry_id = ?`, entry.ID,
	); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}

	if err := insertTags(ctx, tx, entry.ID, entry.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// insertTags writes the ordered tag list for an entry inside a transaction.
func insertTags(ctx context.Context, tx *sql.Tx, entryID string, tags []string) error {
	for i, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entry_tags (entry_id, position, tag) VALUES (?, ?, ?)`,
			entryID, i, tag,
		); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// Get retrieves a single entry by its full id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*bookmark.Entry, error) {
	var e bookmark.Entry
	var tsStr string

	err := s.getEntry.QueryRowContext(ctx, id).Scan(
		&e.ID, &e.URL, &e.Title, &e.Extended, &tsStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entry %s not found", id)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	e.CreatedAt, _ = parseTimestamp(tsStr)

	tags, err := s.tagsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Tags = tags

	return &e, nil
}

// tagsFor loads the ordered tag list of one entry.
func (s *SQLiteStore) tagsFor(ctx context.Context, entryID string) ([]string, error) {
	rows, err := s.getTags.QueryContext(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// LoadAll returns every entry in insertion order, tags included. This is
// the snapshot handed to the query engine.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]bookmark.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, extended, created_at FROM entries ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []bookmark.Entry
	for rows.Next() {
		var e bookmark.Entry
		var tsStr string
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &e.Extended, &tsStr); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CreatedAt, _ = parseTimestamp(tsStr)
		e.Tags = []string{}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, entries); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []bookmark.Entry{}
	}
	return entries, nil
}

// attachTags fills the Tags slice of each entry with one query.
func (s *SQLiteStore) attachTags(ctx context.Context, entries []bookmark.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, tag FROM entry_tags ORDER BY entry_id, position`,
	)
	if err != nil {
		return fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	byID := make(map[string][]string)
	for rows.Next() {
		var entryID, tag string
		if err := rows.Scan(&entryID, &tag); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		byID[entryID] = append(byID[entryID], tag)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range entries {
		if tags, ok := byID[entries[i].ID]; ok {
			entries[i].Tags = tags
		}
	}
	return nil
}

// Delete removes an entry by its full id. Tags are cascade-deleted by the
// schema.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.deleteEntry.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s not found", id)
	}

	return nil
}

// ListTags returns every tag with its usage count, most used first.
func (s *SQLiteStore) ListTags(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag, COUNT(*) AS cnt FROM entry_tags GROUP BY tag ORDER BY cnt DESC, tag`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tag counts: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&stats.TotalEntries); err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT tag) FROM entry_tags").Scan(&stats.TotalTags); err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}

	if stats.TotalEntries > 0 {
		var oldestStr, newestStr string
		err := s.db.QueryRowContext(ctx,
			"SELECT MIN(created_at), MAX(created_at) FROM entries",
		).Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("entry time range: %w", err)
		}
		stats.OldestEntry, _ = parseTimestamp(oldestStr)
		stats.NewestEntry, _ = parseTimestamp(newestStr)
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed, that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.getEntry, s.getTags, s.deleteEntry}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
