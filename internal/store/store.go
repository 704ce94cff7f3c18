package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/litmap/litmap/internal/model"
)

// Store is the SQLite-backed persistence layer for places and mentions.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path. An empty path defaults
// to ~/.litmap/litmap.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".litmap", "litmap.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode for better concurrency between the extraction writers and
	// the geocoding reader
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS places (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			canonical_name      TEXT NOT NULL UNIQUE,
			aliases             TEXT NOT NULL DEFAULT '[]',
			place_type          TEXT NOT NULL DEFAULT '',
			latitude            REAL,
			longitude           REAL,
			confidence          REAL NOT NULL DEFAULT 0,
			source              TEXT NOT NULL DEFAULT '',
			verification_status TEXT NOT NULL DEFAULT 'pending',
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS mentions (
			sentence_id         TEXT NOT NULL,
			place_id            INTEGER NOT NULL REFERENCES places(id) ON DELETE CASCADE,
			work_id             TEXT NOT NULL DEFAULT '',
			author_id           TEXT NOT NULL DEFAULT '',
			matched_text        TEXT NOT NULL,
			method              TEXT NOT NULL,
			confidence          REAL NOT NULL,
			position            INTEGER NOT NULL,
			context_before      TEXT NOT NULL DEFAULT '',
			context_after       TEXT NOT NULL DEFAULT '',
			verification_status TEXT NOT NULL DEFAULT 'pending',
			UNIQUE(sentence_id, place_id)
		);

		CREATE INDEX IF NOT EXISTS idx_mentions_place ON mentions(place_id);
		CREATE INDEX IF NOT EXISTS idx_places_ungeocoded ON places(latitude) WHERE latitude IS NULL;
	`)
	return err
}

// UpsertPlace inserts a place or merges it into the existing row with the
// same canonical name. Coordinates already present are never overwritten by
// a coordinate-less upsert, confidence only ratchets upward, and alias
// variants accumulate, so replaying an extraction run cannot degrade the
// record.
func (s *Store) UpsertPlace(ctx context.Context, p model.Place) (int64, error) {
	aliases := "[]"
	if len(p.Aliases) > 0 {
		data, err := json.Marshal(p.Aliases)
		if err != nil {
			return 0, fmt.Errorf("marshal aliases: %w", err)
		}
		aliases = string(data)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO places (canonical_name, aliases, place_type, latitude, longitude, confidence, source, verification_status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(canonical_name) DO UPDATE SET
			place_type          = CASE WHEN excluded.place_type != '' THEN excluded.place_type ELSE places.place_type END,
			latitude            = COALESCE(places.latitude, excluded.latitude),
			longitude           = COALESCE(places.longitude, excluded.longitude),
			confidence          = MAX(places.confidence, excluded.confidence),
			source              = CASE WHEN places.source = '' THEN excluded.source ELSE places.source END,
			verification_status = CASE
				WHEN places.verification_status = 'verified' THEN places.verification_status
				ELSE excluded.verification_status
			END,
			updated_at          = excluded.updated_at
		RETURNING id
	`, p.CanonicalName, aliases, string(p.Type), p.Latitude, p.Longitude,
		p.Confidence, p.Source, string(p.Status), time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert place %q: %w", p.CanonicalName, err)
	}

	// The conflict branch leaves the stored aliases alone; fold the new
	// variants in afterwards so a replay cannot drop earlier ones.
	if len(p.Aliases) > 0 {
		if err := s.mergeAliases(ctx, id, p.Aliases); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// mergeAliases unions new alias variants into the stored JSON array,
// preserving first-seen order.
func (s *Store) mergeAliases(ctx context.Context, id int64, aliases []string) error {
	var raw string
	if err := s.db.QueryRowContext(ctx, "SELECT aliases FROM places WHERE id = ?", id).Scan(&raw); err != nil {
		return fmt.Errorf("read aliases for place %d: %w", id, err)
	}

	var current []string
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return fmt.Errorf("unmarshal aliases for place %d: %w", id, err)
	}

	seen := make(map[string]bool, len(current))
	for _, a := range current {
		seen[a] = true
	}
	changed := false
	for _, a := range aliases {
		if !seen[a] {
			current = append(current, a)
			seen[a] = true
			changed = true
		}
	}
	if !changed {
		return nil
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal aliases: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE places SET aliases = ? WHERE id = ?", string(merged), id); err != nil {
		return fmt.Errorf("merge aliases for place %d: %w", id, err)
	}
	return nil
}

// UpsertMention inserts a mention. A replayed (sentence, place) pair only
// replaces the stored row when the new method scored higher. The bool
// reports whether a row was actually written; a lower-confidence replay is
// a no-op and returns false.
func (s *Store) UpsertMention(ctx context.Context, m model.Mention) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO mentions (sentence_id, place_id, work_id, author_id, matched_text, method, confidence, position, context_before, context_after, verification_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sentence_id, place_id) DO UPDATE SET
			matched_text        = excluded.matched_text,
			method              = excluded.method,
			confidence          = excluded.confidence,
			position            = excluded.position,
			verification_status = excluded.verification_status
		WHERE excluded.confidence > mentions.confidence
	`, m.SentenceID, m.PlaceID, m.WorkID, m.AuthorID, m.MatchedText, m.Method,
		m.Confidence, m.Position, m.ContextBefore, m.ContextAfter, string(m.Status))
	if err != nil {
		return false, fmt.Errorf("upsert mention (%s, %d): %w", m.SentenceID, m.PlaceID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetPlace fetches a place by canonical name.
func (s *Store) GetPlace(ctx context.Context, canonicalName string) (*model.Place, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, canonical_name, aliases, place_type, latitude, longitude, confidence, source, verification_status, updated_at
		FROM places WHERE canonical_name = ?
	`, canonicalName)
	p, err := scanPlace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get place %q: %w", canonicalName, err)
	}
	return p, nil
}

// UnresolvedPlaces returns places without coordinates that have not been
// rejected, oldest first. A limit of 0 means no limit.
func (s *Store) UnresolvedPlaces(ctx context.Context, limit int) ([]model.Place, error) {
	query := `
		SELECT id, canonical_name, aliases, place_type, latitude, longitude, confidence, source, verification_status, updated_at
		FROM places
		WHERE latitude IS NULL AND verification_status != 'rejected'
		ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query unresolved places: %w", err)
	}
	defer rows.Close()

	var places []model.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, *p)
	}
	return places, rows.Err()
}

// UpdatePlaceCoordinates records a geocoding result for a place.
func (s *Store) UpdatePlaceCoordinates(ctx context.Context, id int64, lat, lng, confidence float64, source string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE places
		SET latitude = ?, longitude = ?, confidence = ?, source = ?, updated_at = ?
		WHERE id = ?
	`, lat, lng, confidence, source, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update coordinates for place %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("place %d not found", id)
	}
	return nil
}

// PlaceAggregate is one place joined with its mention statistics.
type PlaceAggregate struct {
	Place         model.Place
	MentionCount  int
	AvgConfidence float64
	Works         int // Distinct works mentioning the place
	Authors       int // Distinct authors mentioning the place
}

// PlaceStats returns every place with its mention count, average mention
// confidence, and distinct work/author counts, lowest quality first.
func (s *Store) PlaceStats(ctx context.Context) ([]PlaceAggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.canonical_name, p.aliases, p.place_type, p.latitude, p.longitude,
		       p.confidence, p.source, p.verification_status, p.updated_at,
		       COUNT(m.place_id), COALESCE(AVG(m.confidence), 0),
		       COUNT(DISTINCT NULLIF(m.work_id, '')), COUNT(DISTINCT NULLIF(m.author_id, ''))
		FROM places p
		LEFT JOIN mentions m ON m.place_id = p.id
		GROUP BY p.id
		ORDER BY COUNT(m.place_id) ASC, COALESCE(AVG(m.confidence), 0) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query place stats: %w", err)
	}
	defer rows.Close()

	var stats []PlaceAggregate
	for rows.Next() {
		var agg PlaceAggregate
		var aliases, placeType, status string
		err := rows.Scan(&agg.Place.ID, &agg.Place.CanonicalName, &aliases, &placeType,
			&agg.Place.Latitude, &agg.Place.Longitude, &agg.Place.Confidence,
			&agg.Place.Source, &status, &agg.Place.UpdatedAt,
			&agg.MentionCount, &agg.AvgConfidence, &agg.Works, &agg.Authors)
		if err != nil {
			return nil, fmt.Errorf("scan place stats: %w", err)
		}
		if err := json.Unmarshal([]byte(aliases), &agg.Place.Aliases); err != nil {
			return nil, fmt.Errorf("unmarshal aliases: %w", err)
		}
		agg.Place.Type = model.PlaceType(placeType)
		agg.Place.Status = model.VerificationStatus(status)
		agg.Place.MentionCount = agg.MentionCount
		stats = append(stats, agg)
	}
	return stats, rows.Err()
}

// DeletePlaces removes the given places and, through the cascade, their
// mentions. Runs in one transaction so a partial cleanup cannot happen.
func (s *Store) DeletePlaces(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	var deleted int64
	for _, id := range ids {
		res, err := tx.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
		if err != nil {
			return 0, fmt.Errorf("delete place %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		deleted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return deleted, nil
}

// MentionsForPlace returns every mention of a place, in sentence order.
func (s *Store) MentionsForPlace(ctx context.Context, placeID int64) ([]model.Mention, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sentence_id, place_id, work_id, author_id, matched_text, method, confidence, position, context_before, context_after, verification_status
		FROM mentions WHERE place_id = ? ORDER BY sentence_id, position
	`, placeID)
	if err != nil {
		return nil, fmt.Errorf("query mentions for place %d: %w", placeID, err)
	}
	defer rows.Close()

	var mentions []model.Mention
	for rows.Next() {
		var m model.Mention
		var status string
		err := rows.Scan(&m.SentenceID, &m.PlaceID, &m.WorkID, &m.AuthorID,
			&m.MatchedText, &m.Method, &m.Confidence, &m.Position,
			&m.ContextBefore, &m.ContextAfter, &status)
		if err != nil {
			return nil, fmt.Errorf("scan mention: %w", err)
		}
		m.Status = model.VerificationStatus(status)
		mentions = append(mentions, m)
	}
	return mentions, rows.Err()
}

// GeocodingStats summarizes geocoding coverage.
type GeocodingStats struct {
	TotalPlaces   int
	Geocoded      int
	BySource      map[string]int
	TotalMentions int
}

// Stats returns geocoding coverage counts.
func (s *Store) Stats(ctx context.Context) (*GeocodingStats, error) {
	stats := &GeocodingStats{BySource: make(map[string]int)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(latitude),
		       (SELECT COUNT(*) FROM mentions)
		FROM places
	`).Scan(&stats.TotalPlaces, &stats.Geocoded, &stats.TotalMentions)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) FROM places WHERE latitude IS NOT NULL GROUP BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("query source stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan source stats: %w", err)
		}
		stats.BySource[source] = count
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(row rowScanner) (*model.Place, error) {
	var p model.Place
	var aliases, placeType, status string
	err := row.Scan(&p.ID, &p.CanonicalName, &aliases, &placeType,
		&p.Latitude, &p.Longitude, &p.Confidence, &p.Source, &status, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(aliases), &p.Aliases); err != nil {
		return nil, fmt.Errorf("unmarshal aliases: %w", err)
	}
	p.Type = model.PlaceType(placeType)
	p.Status = model.VerificationStatus(status)
	return &p, nil
}
