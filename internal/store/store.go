// Package store implements the identifier-keyed content store backed by a
// single JSON document on disk.
package store

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/jhaShwet/content-generation/internal/domain"
	"github.com/jhaShwet/content-generation/internal/logger"
	"github.com/jhaShwet/content-generation/internal/metrics"
)

const storeFileMode = 0o644

// Store is the durable mapping from identifier to content record.
// It is the sole source of truth for whether a piece of content exists.
// All mutations happen under a single mutex so identifier assignment and
// insertion are atomic with respect to concurrent requests.
type Store struct {
	path   string
	logger logger.Logger

	mu      sync.Mutex
	records map[int64]domain.ContentRecord
	nextID  int64
	saveErr error // last persistence failure, nil when healthy
}

// New creates a store backed by the JSON document at path and loads any
// existing records. A missing file yields an empty store; a corrupt or
// unreadable file is logged and also yields an empty store, so startup
// never fails on bad stored state.
func New(path string, log logger.Logger) *Store {
	s := &Store{
		path:    path,
		logger:  log,
		records: make(map[int64]domain.ContentRecord),
	}
	s.load()
	return s
}

// load reads the backing document into memory and initializes the
// identifier counter from the highest existing id.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read content store, starting empty",
				logger.String("path", s.path),
				logger.Error(err),
			)
		}
		return
	}

	var records map[int64]domain.ContentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Failed to decode content store, starting empty",
			logger.String("path", s.path),
			logger.Error(err),
		)
		return
	}

	s.records = records
	for id := range records {
		if id > s.nextID {
			s.nextID = id
		}
	}

	s.logger.Info("Content store loaded",
		logger.String("path", s.path),
		logger.Int("records", len(records)),
	)
}

// Insert assigns the next identifier, stores the record, and persists the
// full mapping. Identifier assignment and insertion happen under the same
// critical section, so concurrent inserts always receive distinct ids.
// Persistence is best-effort: a write failure is logged and counted but the
// in-memory record remains authoritative.
func (s *Store) Insert(topic, content string) domain.ContentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	record := domain.ContentRecord{
		ID:      s.nextID,
		Topic:   topic,
		Content: content,
	}
	s.records[record.ID] = record
	s.persistLocked()

	return record
}

// persistLocked serializes the full mapping to the backing document.
// Callers must hold s.mu.
func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err == nil {
		err = os.WriteFile(s.path, data, storeFileMode)
	}

	s.saveErr = err
	if err != nil {
		metrics.PersistFailures.Inc()
		s.logger.Error("Failed to persist content store",
			logger.String("path", s.path),
			logger.Error(err),
		)
	}
}

// Get returns the record for id. Returns domain.ErrContentNotFound when the
// identifier was never produced by a generation. The store is not mutated.
func (s *Store) Get(id int64) (domain.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return domain.ContentRecord{}, domain.ErrContentNotFound
	}
	return record, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Ping reports the health of the backing document. It returns the last
// persistence failure, if any, so the health endpoint can surface degraded
// durability without failing the primary operations.
func (s *Store) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}
