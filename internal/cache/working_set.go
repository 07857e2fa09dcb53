package cache

import (
	"sync"
	"time"
)

// Entry is one user's in-memory quiz scratch state. It mirrors nothing
// durable: losing it costs at most a re-prompt.
type Entry struct {
	UserID    string
	SessionID string
	LastTouch time.Time
}

// WorkingSet is an explicit keyed store for per-user scratch state with a
// defined lifecycle: insert on session start, remove on finish/cancel,
// prune by last-touch age. It is owned by the session service and never
// accessed ambiently.
type WorkingSet struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// NewWorkingSet creates an empty WorkingSet.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Put inserts or replaces a user's entry and stamps its last touch.
func (w *WorkingSet) Put(userID, sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[userID] = &Entry{
		UserID:    userID,
		SessionID: sessionID,
		LastTouch: w.now(),
	}
}

// Touch refreshes the last-touch timestamp if the entry exists.
func (w *WorkingSet) Touch(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entries[userID]; ok {
		e.LastTouch = w.now()
	}
}

// Get returns a copy of the user's entry, or nil.
func (w *WorkingSet) Get(userID string) *Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entries[userID]
	if !ok {
		return nil
	}
	copied := *e
	return &copied
}

// Remove drops the user's entry.
func (w *WorkingSet) Remove(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entries, userID)
}

// Prune discards entries untouched for longer than maxAge and returns how
// many were dropped. Memory reclamation only, durable data is unaffected.
func (w *WorkingSet) Prune(maxAge time.Duration) int {
	cutoff := w.now().Add(-maxAge)
	w.mu.Lock()
	defer w.mu.Unlock()
	dropped := 0
	for userID, e := range w.entries {
		if e.LastTouch.Before(cutoff) {
			delete(w.entries, userID)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live entries.
func (w *WorkingSet) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}
