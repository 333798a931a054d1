package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SqlStore implements Store on SQLite.
type SqlStore struct {
	db *sql.DB
}

var _ Store = (*SqlStore)(nil)

// Open opens or creates the SQLite DB at path and runs migrations.
// The parent directory is created if it does not exist.
func Open(path string) (*SqlStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		v = schemaVersion
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", v); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	if v != schemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SaveScan inserts a scan and returns its id.
func (s *SqlStore) SaveScan(scan *Scan) (int64, error) {
	if scan == nil {
		return 0, errors.New("scan is nil")
	}
	if scan.URL == "" {
		return 0, errors.New("scan url is empty")
	}
	scores, err := json.Marshal(normalizeScores(scan.CategoryScores))
	if err != nil {
		return 0, fmt.Errorf("marshal category scores: %w", err)
	}
	createdAt := normalizeTime(scan.CreatedAt)

	res, err := s.db.Exec(
		`INSERT INTO scans(url, score, grade, category_scores, created_at)
		 VALUES(?, ?, ?, ?, ?)`,
		scan.URL, scan.Score, scan.Grade, string(scores), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert scan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	scan.ID = id
	scan.CreatedAt = createdAt
	return id, nil
}

// GetScan returns the scan by id, or ErrNotFound.
func (s *SqlStore) GetScan(id int64) (*Scan, error) {
	row := s.db.QueryRow(
		"SELECT id, url, score, grade, category_scores, created_at FROM scans WHERE id = ?",
		id,
	)
	scan, err := scanRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get scan: %w", err)
	}
	return scan, nil
}

// ListScans returns scans newest first, optionally filtered by url and
// capped at limit.
func (s *SqlStore) ListScans(url string, limit int) ([]*Scan, error) {
	var sb strings.Builder
	sb.WriteString("SELECT id, url, score, grade, category_scores, created_at FROM scans")
	var args []any
	if url != "" {
		sb.WriteString(" WHERE url = ?")
		args = append(args, url)
	}
	sb.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var list []*Scan
	for rows.Next() {
		scan, err := scanRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		list = append(list, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	return list, nil
}

// Trend returns the score trajectory for url, oldest first. With a
// positive limit only the most recent limit scans are considered.
func (s *SqlStore) Trend(url string, limit int) ([]TrendPoint, error) {
	if url == "" {
		return nil, errors.New("trend url is empty")
	}
	scans, err := s.ListScans(url, limit)
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, 0, len(scans))
	for i := len(scans) - 1; i >= 0; i-- {
		points = append(points, TrendPoint{Score: scans[i].Score, CreatedAt: scans[i].CreatedAt})
	}
	return points, nil
}

// Clear deletes all scans.
func (s *SqlStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM scans"); err != nil {
		return fmt.Errorf("clear scans: %w", err)
	}
	return nil
}

// scanRow reads one scans row via the given Scan func (works for both
// sql.Row and sql.Rows).
func scanRow(scanFn func(dest ...any) error) (*Scan, error) {
	var sc Scan
	var scoresJSON, createdAt string
	if err := scanFn(&sc.ID, &sc.URL, &sc.Score, &sc.Grade, &scoresJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scoresJSON), &sc.CategoryScores); err != nil {
		return nil, fmt.Errorf("unmarshal category scores: %w", err)
	}
	// rows written before scores were recorded hold a JSON null
	sc.CategoryScores = normalizeScores(sc.CategoryScores)
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	sc.CreatedAt = t
	return &sc, nil
}
