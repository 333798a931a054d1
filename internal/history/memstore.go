package history

import (
	"errors"
	"sync"
)

// MemStore implements Store in memory. Used by tests and by runs that
// do not want a database on disk.
type MemStore struct {
	mu     sync.Mutex
	scans  []*Scan
	nextID int64
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) SaveScan(scan *Scan) (int64, error) {
	if scan == nil {
		return 0, errors.New("scan is nil")
	}
	if scan.URL == "" {
		return 0, errors.New("scan url is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	cp := copyScan(scan)
	cp.ID = m.nextID
	cp.CreatedAt = normalizeTime(scan.CreatedAt)
	m.scans = append(m.scans, cp)

	scan.ID = cp.ID
	scan.CreatedAt = cp.CreatedAt
	return cp.ID, nil
}

func (m *MemStore) GetScan(id int64) (*Scan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sc := range m.scans {
		if sc.ID == id {
			return copyScan(sc), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) ListScans(url string, limit int) ([]*Scan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var list []*Scan
	for i := len(m.scans) - 1; i >= 0; i-- {
		sc := m.scans[i]
		if url != "" && sc.URL != url {
			continue
		}
		list = append(list, copyScan(sc))
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

func (m *MemStore) Trend(url string, limit int) ([]TrendPoint, error) {
	if url == "" {
		return nil, errors.New("trend url is empty")
	}
	scans, err := m.ListScans(url, limit)
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, 0, len(scans))
	for i := len(scans) - 1; i >= 0; i-- {
		points = append(points, TrendPoint{Score: scans[i].Score, CreatedAt: scans[i].CreatedAt})
	}
	return points, nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans = nil
	return nil
}

func (m *MemStore) Close() error { return nil }

func copyScan(sc *Scan) *Scan {
	cp := *sc
	cp.CategoryScores = normalizeScores(sc.CategoryScores)
	return &cp
}
