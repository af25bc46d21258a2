package memory

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agentrun/internal/util"
)

// ErrNotFound is returned when a memory entry for the given scope / id pair
// does not exist in the underlying store.
var ErrNotFound = errors.New("memory entry not found")

// Entry is one stored memory. Scope partitions entries (e.g. "global",
// "chat:<id>", "user:<id>"); Kind classifies them (summary, decision, action,
// knowledge).
type Entry struct {
	ID        string         `json:"id"`
	Scope     string         `json:"scope"`
	Kind      string         `json:"kind"`
	Summary   string         `json:"summary"`
	Content   string         `json:"content,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store is the contract the memory tools depend on.
type Store interface {
	// Put stores the entry, assigning an id when absent, and returns the id.
	Put(entry Entry) (string, error)
	// Get returns the entry with the given id within scope.
	Get(scope, id string) (Entry, error)
	// Search returns up to limit entries in scope whose summary, content or
	// tags contain the query substring. An empty query matches everything.
	Search(scope, query string, limit int) ([]Entry, error)
	// Delete removes an entry, returning ErrNotFound if absent.
	Delete(scope, id string) error
}

// InMemoryStore is a volatile Store backed by a process-local map, keyed by
// scope then entry id. Safe for concurrent access. Search is a linear
// substring scan; suitable for tests and demos, not large corpora.
type InMemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string]Entry
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{scopes: make(map[string]map[string]Entry)}
}

// Put implements Store.
func (s *InMemoryStore) Put(entry Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = util.NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	scope := entry.Scope
	if _, ok := s.scopes[scope]; !ok {
		s.scopes[scope] = make(map[string]Entry)
	}
	s.scopes[scope][entry.ID] = entry

	return entry.ID, nil
}

// Get implements Store.
func (s *InMemoryStore) Get(scope, id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.scopes[scope][id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// Search implements Store. Matching is a case-insensitive substring test over
// summary, content and tags.
func (s *InMemoryStore) Search(scope, query string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.scopes[scope]
	if !ok {
		return []Entry{}, nil
	}

	needle := strings.ToLower(query)
	results := make([]Entry, 0, limit)
	for _, entry := range entries {
		if limit > 0 && len(results) >= limit {
			break
		}
		if needle == "" || entryMatches(entry, needle) {
			results = append(results, entry)
		}
	}
	return results, nil
}

// Delete implements Store.
func (s *InMemoryStore) Delete(scope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scopes[scope][id]; !ok {
		return ErrNotFound
	}
	delete(s.scopes[scope], id)
	return nil
}

func entryMatches(entry Entry, needle string) bool {
	if strings.Contains(strings.ToLower(entry.Summary), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Content), needle) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
