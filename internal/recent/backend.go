package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	apperrors "clientele/internal/errors"
)

// Backend persists one ordered list per namespace.
type Backend interface {
	// Load returns nil, nil when the namespace has never been written.
	Load(ctx context.Context, ns string) ([]string, error)
	Save(ctx context.Context, ns string, values []string) error
	Delete(ctx context.Context, ns string) error
	Close() error
}

// Lister is implemented by backends that can enumerate their namespaces.
type Lister interface {
	Namespaces(ctx context.Context) ([]string, error)
}

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindBolt   = "bolt"
	KindMemory = "memory"
)

// Open builds the backend named by kind. Paths are ignored for memory.
func Open(kind, path string) (Backend, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	switch kind {
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindSQLite, KindBolt:
	default:
		return nil, apperrors.New(apperrors.CodeConfigurationError, fmt.Sprintf("unknown recent backend %q", kind), nil)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, fmt.Sprintf("%s backend needs a path", kind), nil)
	}
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "create recent store directory", err)
	}
	if kind == KindBolt {
		return OpenBolt(path)
	}
	return OpenSQLite(path)
}

func encodeValues(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func decodeValues(ns string, data []byte) ([]string, error) {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, apperrors.New(apperrors.CodeCorruptRecord, fmt.Sprintf("decode recent values for %s", ns), err)
	}
	return values, nil
}

// MemoryBackend keeps lists for the lifetime of the process.
type MemoryBackend struct {
	mu    sync.RWMutex
	lists map[string][]string
}

// NewMemoryBackend returns an empty in-process backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{lists: make(map[string][]string)}
}

func (m *MemoryBackend) Load(_ context.Context, ns string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.lists[ns]), nil
}

func (m *MemoryBackend) Save(_ context.Context, ns string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[ns] = clone(values)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, ns string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, ns)
	return nil
}

// Namespaces lists namespaces in key order.
func (m *MemoryBackend) Namespaces(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.lists))
	for ns := range m.lists {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryBackend) Close() error { return nil }
