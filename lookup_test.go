package unordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSet(t *testing.T) {
	s := NewSetWith[string](StringHasher{})
	s.InsertSlice("foo", "bar", "baz")

	l := LookupSet[[]byte](s)

	require.True(t, l.Contains([]byte("foo")))
	require.False(t, l.Contains([]byte("qux")))
	require.Equal(t, 1, l.Count([]byte("bar")))
	require.Equal(t, s.Bucket("baz"), l.Bucket([]byte("baz")))

	it := l.Find([]byte("baz"))
	require.Equal(t, "baz", it.Key())
	require.True(t, l.Find([]byte("nope")).IsEnd())

	require.Equal(t, 1, l.EraseKey([]byte("foo")))
	require.Equal(t, 0, l.EraseKey([]byte("foo")))
	require.False(t, s.Contains("foo"))
}

func TestLookupMultiSet(t *testing.T) {
	s := NewMultiSetWith[string](StringHasher{})
	s.InsertSlice("a", "b", "a", "a")

	l := LookupMultiSet[[]byte](s)
	require.Equal(t, 3, l.Count([]byte("a")))

	first, last := l.EqualRange([]byte("a"))
	n := 0
	for it := first; !it.Equal(last); it.Next() {
		n++
	}
	require.Equal(t, 3, n)

	first, last = l.EqualRange([]byte("c"))
	require.True(t, first.IsEnd())
	require.True(t, last.IsEnd())

	require.Equal(t, 3, l.EraseKey([]byte("a")))
	require.Equal(t, 1, s.Len())
}

func TestLookupMap(t *testing.T) {
	m := NewMapWith[string, int](StringHasher{})
	key := func(q []byte) string { return string(q) }

	it, ok := TryEmplaceAs(m, []byte("k"), key, 1)
	require.True(t, ok)
	require.Equal(t, "k", it.Key())

	it, ok = TryEmplaceAs(m, []byte("k"), func([]byte) string {
		t.Fatal("key built for a present entry")
		return ""
	}, 2)
	require.False(t, ok)
	require.Equal(t, 1, it.Value())

	_, ok = InsertOrAssignAs(m, []byte("k"), key, 3)
	require.False(t, ok)
	_, ok = InsertOrAssignAs(m, []byte("j"), key, 4)
	require.True(t, ok)

	l := LookupMap[[]byte](m)
	found := l.Find([]byte("k"))
	require.Equal(t, 3, found.Value())
	*Ref(found) = 30

	v, _ := m.Get("k")
	assert.Equal(t, 30, v)
	assert.Equal(t, 2, m.Len())
}

func TestLookupMultiMap_Bytes(t *testing.T) {
	m := NewMultiMapWith[[]byte, int](BytesHasher{})
	m.Insert([]byte("x"), 1)
	m.Insert([]byte("x"), 2)
	m.Insert([]byte("y"), 3)

	l := LookupMultiMap[string](m)
	require.Equal(t, 2, l.Count("x"))
	require.True(t, l.Contains("y"))
	require.False(t, l.Contains("z"))

	first, _ := l.EqualRange("x")
	require.Equal(t, 1, first.Value())
}
