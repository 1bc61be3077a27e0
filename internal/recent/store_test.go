package recent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend models disabled storage: every call errors.
type failingBackend struct {
	saves int
}

func (f *failingBackend) Load(context.Context, string) ([]string, error) {
	return nil, errors.New("storage disabled")
}

func (f *failingBackend) Save(context.Context, string, []string) error {
	f.saves++
	return errors.New("quota exceeded")
}

func (f *failingBackend) Delete(context.Context, string) error {
	return errors.New("storage disabled")
}

func (f *failingBackend) Close() error { return nil }

func TestNamespace(t *testing.T) {
	assert.Equal(t, "autocomplete_recent_country", Namespace("country"))
	assert.Equal(t, "autocomplete_recent_country", Namespace("  country "))
	assert.Equal(t, DefaultNamespace, Namespace(""))
	assert.Equal(t, DefaultNamespace, Namespace("   "))

	assert.Equal(t, "country", FieldName(Namespace("country")))
	assert.Equal(t, "", FieldName(DefaultNamespace))
}

func TestPromote(t *testing.T) {
	t.Run("PrependsNewValue", func(t *testing.T) {
		assert.Equal(t, []string{"c", "a", "b"}, Promote([]string{"a", "b"}, "c", 10))
	})
	t.Run("MovesExistingValueToFront", func(t *testing.T) {
		assert.Equal(t, []string{"b", "a", "c"}, Promote([]string{"a", "b", "c"}, "b", 10))
	})
	t.Run("TruncatesToLimit", func(t *testing.T) {
		assert.Equal(t, []string{"d", "a", "b"}, Promote([]string{"a", "b", "c"}, "d", 3))
	})
	t.Run("DoesNotModifyInput", func(t *testing.T) {
		in := []string{"a", "b"}
		_ = Promote(in, "b", 10)
		assert.Equal(t, []string{"a", "b"}, in)
	})
}

func TestStoreAddPromotesWithoutDuplicates(t *testing.T) {
	s := NewStore(nil)
	ns := Namespace("vendor")

	s.Add(ns, "X")
	s.Add(ns, "Y")
	s.Add(ns, "X")

	assert.Equal(t, []string{"X", "Y"}, s.Load(ns))
}

func TestStoreBoundedToTenMostRecent(t *testing.T) {
	s := NewStore(nil)
	ns := Namespace("customer")

	for i := 0; i < 11; i++ {
		s.Add(ns, fmt.Sprintf("v%d", i))
	}

	got := s.Load(ns)
	require.Len(t, got, MaxEntries)
	assert.Equal(t, "v10", got[0])
	assert.Equal(t, "v1", got[MaxEntries-1])
	assert.NotContains(t, got, "v0")
}

func TestStoreNamespacesAreIndependent(t *testing.T) {
	s := NewStore(nil)
	s.Add(Namespace("country"), "France")
	s.Add(Namespace("vendor"), "Acme")

	assert.Equal(t, []string{"France"}, s.Load(Namespace("country")))
	assert.Equal(t, []string{"Acme"}, s.Load(Namespace("vendor")))
	assert.Empty(t, s.Load(Namespace("customer")))
}

func TestStoreUnnamedFieldsShareDefaultNamespace(t *testing.T) {
	s := NewStore(nil)
	s.Add(Namespace(""), "first")
	s.Add(Namespace(" "), "second")

	assert.Equal(t, []string{"second", "first"}, s.Load(DefaultNamespace))
}

func TestStoreIgnoresBlankValues(t *testing.T) {
	s := NewStore(nil)
	ns := Namespace("country")
	s.Add(ns, "Spain")

	assert.Equal(t, []string{"Spain"}, s.Add(ns, "   "))
	assert.Equal(t, []string{"Spain"}, s.Load(ns))
}

func TestStoreSwallowsBackendFailures(t *testing.T) {
	backend := &failingBackend{}
	s := NewStore(backend)
	ns := Namespace("country")

	assert.NotPanics(t, func() {
		assert.Empty(t, s.Load(ns))
	})

	assert.Equal(t, []string{"Italy"}, s.Add(ns, "Italy"))
	assert.Equal(t, []string{"Peru", "Italy"}, s.Add(ns, "Peru"))
	assert.Equal(t, 2, backend.saves)

	// The session keeps its in-memory list even though nothing persisted.
	assert.Equal(t, []string{"Peru", "Italy"}, s.Load(ns))

	assert.NotPanics(t, func() { s.Clear(ns) })
	assert.Empty(t, s.Load(ns))
}

func TestStoreLoadReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	ns := Namespace("country")
	s.Add(ns, "Chile")

	got := s.Load(ns)
	got[0] = "mutated"

	assert.Equal(t, []string{"Chile"}, s.Load(ns))
}

func TestStorePersistsThroughBackend(t *testing.T) {
	backend := NewMemoryBackend()
	ns := Namespace("vendor")

	first := NewStore(backend)
	first.Add(ns, "Acme")
	first.Add(ns, "Globex")

	second := NewStore(backend)
	assert.Equal(t, []string{"Globex", "Acme"}, second.Load(ns))
	assert.Equal(t, []string{ns}, second.Namespaces())
}

func TestStoreTruncatesOversizedPersistedList(t *testing.T) {
	backend := NewMemoryBackend()
	ns := Namespace("vendor")
	var big []string
	for i := 0; i < 15; i++ {
		big = append(big, fmt.Sprintf("v%d", i))
	}
	require.NoError(t, backend.Save(context.Background(), ns, big))

	got := NewStore(backend).Load(ns)
	assert.Len(t, got, MaxEntries)
	assert.Equal(t, "v0", got[0])
}

func TestStoreNamespacesWithoutLister(t *testing.T) {
	s := NewStore(&failingBackend{})
	assert.Empty(t, s.Namespaces())
}
