package telemetry

import (
	"sort"
	"sync"
	"time"

	"truckpro/internal/models"
)

// CurrentEntry is the reading a truck's cursor points at, with its position
// in the stored sequence.
type CurrentEntry struct {
	Reading  models.TruckReading
	Position int
	Total    int
}

// Store holds the per-truck reading sequences and the rotation cursors that
// walk them. All access goes through one lock so that a wholesale replace,
// a cursor advance, and a read can never interleave.
type Store struct {
	mu          sync.RWMutex
	readings    map[string][]models.TruckReading
	cursors     map[string]int
	lastRefresh time.Time
	generation  uint64
}

func NewStore() *Store {
	return &Store{
		readings: make(map[string][]models.TruckReading),
		cursors:  make(map[string]int),
	}
}

// Generation returns the current dataset generation. A caller that snapshots
// the generation before a slow fetch can use ReplaceAllIfGeneration to drop
// its result when a newer dataset landed in the meantime.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// ReplaceAll swaps in a whole new dataset. Every cursor resets to the first
// entry and trucks absent from the new data are dropped.
func (s *Store) ReplaceAll(data map[string][]models.TruckReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceAllLocked(data)
}

// ReplaceAllIfGeneration swaps in a new dataset only when the store is still
// at the given generation. It reports whether the replace happened.
func (s *Store) ReplaceAllIfGeneration(gen uint64, data map[string][]models.TruckReading) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.replaceAllLocked(data)
	return true
}

func (s *Store) replaceAllLocked(data map[string][]models.TruckReading) {
	readings := make(map[string][]models.TruckReading, len(data))
	cursors := make(map[string]int, len(data))
	for id, seq := range data {
		readings[id] = seq
		cursors[id] = 0
	}
	s.readings = readings
	s.cursors = cursors
	s.lastRefresh = time.Now()
	s.generation++
}

// ReplaceTruck swaps in a new sequence for one truck and resets its cursor.
// Other trucks keep their sequences and cursor positions.
func (s *Store) ReplaceTruck(truckID string, seq []models.TruckReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings[truckID] = seq
	s.cursors[truckID] = 0
	s.lastRefresh = time.Now()
	s.generation++
}

// Advance moves every cursor one step toward the newest reading. A cursor
// already at the last entry stays there; it never wraps around.
func (s *Store) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cur := range s.cursors {
		if last := len(s.readings[id]) - 1; cur < last {
			s.cursors[id] = cur + 1
		}
	}
}

// ResetCursor rewinds one truck's cursor to the first entry.
func (s *Store) ResetCursor(truckID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cursors[truckID]; ok {
		s.cursors[truckID] = 0
	}
}

// Current returns the reading the truck's cursor points at. ok is false when
// the truck is unknown or has no readings.
func (s *Store) Current(truckID string) (CurrentEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked(truckID)
}

func (s *Store) currentLocked(truckID string) (CurrentEntry, bool) {
	seq, ok := s.readings[truckID]
	if !ok || len(seq) == 0 {
		return CurrentEntry{}, false
	}
	cur := s.cursors[truckID]
	if cur >= len(seq) {
		cur = len(seq) - 1
	}
	return CurrentEntry{Reading: seq[cur], Position: cur, Total: len(seq)}, true
}

// Contains reports whether the store has any readings for the truck.
func (s *Store) Contains(truckID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq, ok := s.readings[truckID]
	return ok && len(seq) > 0
}

// TruckIDs returns the known truck ids in lexical order.
func (s *Store) TruckIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.readings))
	for id := range s.readings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns the current reading of every truck under one lock
// acquisition, keyed by truck id.
func (s *Store) Snapshot() map[string]CurrentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]CurrentEntry, len(s.readings))
	for id := range s.readings {
		if entry, ok := s.currentLocked(id); ok {
			out[id] = entry
		}
	}
	return out
}

// LastRefresh returns when the store last accepted new data.
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}
