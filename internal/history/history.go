// Package history persists audit scans so score changes can be tracked
// over time. Two implementations share the Store contract: SqlStore on
// SQLite for real use and MemStore for tests and no-persistence runs.
package history

import (
	"errors"
	"time"
)

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent directory if needed.
const DefaultDBPath = "seoaudit.db"

// ErrNotFound is returned when a requested scan does not exist.
var ErrNotFound = errors.New("scan not found")

// Scan is one persisted audit result, reduced to what trend tracking
// needs: the overall score, the grade and the per-category breakdown.
type Scan struct {
	ID             int64          `json:"id"`
	URL            string         `json:"url"`
	Score          int            `json:"score"`
	Grade          string         `json:"grade"`
	CategoryScores map[string]int `json:"category_scores"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TrendPoint is one step of a URL's score history, oldest first.
type TrendPoint struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence facade. Implementations are safe for
// concurrent use.
type Store interface {
	// SaveScan inserts a scan and returns its id. A zero CreatedAt is
	// filled with the current UTC time.
	SaveScan(scan *Scan) (int64, error)
	// GetScan returns the scan by id, or ErrNotFound.
	GetScan(id int64) (*Scan, error)
	// ListScans returns scans newest first. url "" means all URLs;
	// limit <= 0 means no limit.
	ListScans(url string, limit int) ([]*Scan, error)
	// Trend returns the score trajectory for one URL, oldest first,
	// keeping the most recent limit entries (<= 0 means all).
	Trend(url string, limit int) ([]TrendPoint, error)
	// Clear deletes all scans.
	Clear() error
	Close() error
}

// normalizeTime pins timestamps to UTC second precision, which is what
// the RFC 3339 column round-trips. Both stores apply it so they stay
// interchangeable.
func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Second)
}

// normalizeScores copies the category map, turning nil into an empty
// map so a scan saved without category scores round-trips as {} rather
// than null. Consumers serializing scans rely on the field being an
// object.
func normalizeScores(m map[string]int) map[string]int {
	cp := make(map[string]int, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
