// Package recent remembers the values a user committed per field, newest
// first, so the autocomplete can boost them and offer them on focus.
//
// The Store never returns errors to its callers. Anything the backend
// reports (missing file, corrupt payload, full disk) is logged and treated
// as "no recent values" on read or "write discarded" on save; the in-memory
// list keeps working for the rest of the process.
package recent

import (
	"context"
	"strings"
	"sync"
	"time"

	"clientele/internal/debug"
)

// MaxEntries bounds every namespace.
const MaxEntries = 10

// DefaultNamespace is shared by every field that has no name.
const DefaultNamespace = "autocomplete_recent_default"

const namespacePrefix = "autocomplete_recent_"

const backendTimeout = 2 * time.Second

// Namespace derives the storage key for a field name.
func Namespace(fieldName string) string {
	name := strings.TrimSpace(fieldName)
	if name == "" {
		return DefaultNamespace
	}
	return namespacePrefix + name
}

// FieldName reverses Namespace. The shared default namespace maps to "".
func FieldName(ns string) string {
	if ns == DefaultNamespace {
		return ""
	}
	return strings.TrimPrefix(ns, namespacePrefix)
}

// Promote moves value to the front of list, dropping any earlier copy, and
// truncates to limit. The input slice is not modified.
func Promote(list []string, value string, limit int) []string {
	if limit <= 0 {
		limit = MaxEntries
	}
	out := make([]string, 0, min(len(list)+1, limit))
	out = append(out, value)
	for _, v := range list {
		if len(out) == limit {
			break
		}
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// Store caches recent values per namespace on top of a Backend.
type Store struct {
	mu      sync.Mutex
	backend Backend
	cache   map[string][]string
	limit   int
}

// NewStore wraps backend. A nil backend keeps values in memory only.
func NewStore(backend Backend) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{
		backend: backend,
		cache:   make(map[string][]string),
		limit:   MaxEntries,
	}
}

// Load returns the recent values for ns, newest first. Missing or unreadable
// data yields an empty list.
func (s *Store) Load(ns string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.loadLocked(ns))
}

func (s *Store) loadLocked(ns string) []string {
	if list, ok := s.cache[ns]; ok {
		return list
	}
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	list, err := s.backend.Load(ctx, ns)
	if err != nil {
		debug.Debug("recent values unavailable", "namespace", ns, "err", err)
		list = nil
	}
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	s.cache[ns] = list
	return list
}

// Add records value as the newest entry for ns and returns the new list.
// Blank values are ignored.
func (s *Store) Add(ns, value string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(value) == "" {
		return clone(s.loadLocked(ns))
	}
	list := Promote(s.loadLocked(ns), value, s.limit)
	s.cache[ns] = list

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	if err := s.backend.Save(ctx, ns, list); err != nil {
		debug.Debug("recent write discarded", "namespace", ns, "err", err)
	}
	return clone(list)
}

// Clear forgets every value in ns.
func (s *Store) Clear(ns string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[ns] = nil
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	if err := s.backend.Delete(ctx, ns); err != nil {
		debug.Debug("recent clear discarded", "namespace", ns, "err", err)
	}
}

// Namespaces lists the stored namespaces when the backend can enumerate them.
func (s *Store) Namespaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lister, ok := s.backend.(Lister)
	if !ok {
		return []string{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	names, err := lister.Namespaces(ctx)
	if err != nil {
		debug.Debug("recent namespaces unavailable", "err", err)
		return []string{}
	}
	return clone(names)
}

// Close releases the backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

func clone(list []string) []string {
	if len(list) == 0 {
		return []string{}
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
