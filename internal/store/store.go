// internal/store/store.go
//
// Volatile, append-only store for accepted applications.
//
// Context
// -------
// The store is the sole authority for ID assignment and CreatedAt
// stamping.  Records live for the process lifetime only; there is no
// update or delete, and IDs are never reused.  Insert is one critical
// section — assign ID, stamp time, append — so concurrent submissions can
// neither collide on an ID nor lose a record.
//
// Both read views return newest-first copies: CreatedAt descending, ties
// broken by ID descending.  Because IDs are monotonic with insertion
// order, walking the backing slice backwards yields exactly that order.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package store

import (
	"sync"
	"time"

	"github.com/yanizio/applyboard/internal/application"
	"github.com/yanizio/applyboard/internal/metrics"
)

// Store holds accepted applications in insertion order.
type Store struct {
	mu     sync.Mutex
	apps   []application.Application
	nextID int64
}

// New returns an empty Store whose first assigned ID is 1.
func New() *Store {
	return &Store{nextID: 1}
}

// Insert assigns the next sequential ID, stamps CreatedAt, and stores the
// record.  The stored copy is returned.  ID and CreatedAt on the input are
// ignored; the store owns both.
func (s *Store) Insert(app application.Application) application.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	app.ID = s.nextID
	app.CreatedAt = time.Now()
	s.nextID++
	s.apps = append(s.apps, app)

	metrics.ApplicationsStored.Set(float64(len(s.apps)))
	metrics.ApplicationsAcceptedTotal.Inc()
	return app
}

// ByUsername returns all applications whose username equals key, newest
// first.
func (s *Store) ByUsername(key string) []application.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []application.Application
	for i := len(s.apps) - 1; i >= 0; i-- {
		if s.apps[i].Username == key {
			out = append(out, s.apps[i])
		}
	}
	return out
}

// Recent returns the limit most-recently-inserted applications, newest
// first.  A non-positive limit yields an empty slice; a limit larger than
// the store returns everything.
func (s *Store) Recent(limit int) []application.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		return []application.Application{}
	}
	if limit > len(s.apps) {
		limit = len(s.apps)
	}

	out := make([]application.Application, 0, limit)
	for i := len(s.apps) - 1; i >= len(s.apps)-limit; i-- {
		out = append(out, s.apps[i])
	}
	return out
}

// Len reports the number of stored applications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}
