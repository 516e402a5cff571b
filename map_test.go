package unordered

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Basic(t *testing.T) {
	m := NewMap[string, int]()

	it, ok := m.Insert("a", 1)
	require.True(t, ok)
	assert.Equal(t, "a", it.Key())

	it, ok = m.Insert("a", 2)
	require.False(t, ok)
	assert.Equal(t, 1, it.Value())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	it, ok = m.InsertOrAssign("a", 3)
	require.False(t, ok)
	assert.Equal(t, 3, it.Value())

	v, err := m.At("a")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, ok = m.InsertOrAssign("b", 4)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestMap_At_Missing(t *testing.T) {
	m := NewMap[string, int]()

	_, err := m.At("nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrKeyNotFound))
	require.Equal(t, ErrKeyNotFound, errors.Cause(err))
	require.True(t, strings.Contains(err.Error(), "nope"))

	_, ok := m.Get("nope")
	require.False(t, ok)
	require.Equal(t, 0, m.Len())
}

func TestMap_Index(t *testing.T) {
	m := NewMap[string, int]()

	*m.Index("x") += 5
	p := m.Index("x")
	require.Equal(t, 5, *p)
	require.Equal(t, 1, m.Len())

	for i := range 300 {
		m.Insert(strings.Repeat("k", i+1), i)
	}
	require.Positive(t, m.Stats().Rehashes)

	*p = 42
	v, _ := m.Get("x")
	require.Equal(t, 42, v)
	require.Same(t, p, m.Index("x"))
}

func TestMap_TryEmplace(t *testing.T) {
	m := NewMap[int, string]()

	_, ok := m.TryEmplace(1, "one")
	require.True(t, ok)
	it, ok := m.TryEmplace(1, "uno")
	require.False(t, ok)
	require.Equal(t, "one", it.Value())

	calls := 0
	mk := func() string {
		calls++
		return "two"
	}

	_, ok = m.TryEmplaceFunc(2, mk)
	require.True(t, ok)
	_, ok = m.TryEmplaceFunc(2, mk)
	require.False(t, ok)
	require.Equal(t, 1, calls)
}

func TestMap_Emplace(t *testing.T) {
	m := NewMap[int, string]()

	_, ok := m.Emplace(1, "a")
	require.True(t, ok)

	it, ok := m.Emplace(1, "b")
	require.False(t, ok)
	require.Equal(t, "a", it.Value())

	hinted := m.EmplaceHint(it, 1, "c")
	require.True(t, hinted.Equal(it))
	hinted = m.InsertHint(it, 2, "d")
	require.Equal(t, "d", hinted.Value())
	hinted = m.EmplaceHint(m.End(), 3, "e")
	require.Equal(t, 3, hinted.Key())

	require.Equal(t, 3, m.Len())
}

func TestMap_RefThroughIterator(t *testing.T) {
	m := NewMap[int, int]()
	for i := range 50 {
		m.Insert(i, i)
	}

	for it := m.Begin(); !it.IsEnd(); it.Next() {
		*Ref(it) *= 2
	}

	for k, v := range m.All() {
		require.Equal(t, k*2, v)
	}

	values := slices.Sorted(m.Values())
	require.Len(t, values, 50)
	require.Equal(t, 98, values[49])
}

func TestMap_ExtractInsertNode(t *testing.T) {
	src := NewMap[string, int]()
	src.Insert("a", 1)
	src.Insert("b", 2)

	nh := src.ExtractKey("a")
	require.Equal(t, 1, nh.Value())
	nh.SetValue(10)

	dst := NewMap[string, int]()
	res := dst.InsertNode(&nh)
	require.True(t, res.Inserted)
	require.Equal(t, 10, res.Position.Value())

	dst.Insert("b", 20)
	nh = src.Extract(src.Find("b"))
	res = dst.InsertNode(&nh)
	require.False(t, res.Inserted)
	require.Equal(t, 2, res.Node.Value())
	require.Equal(t, 20, res.Position.Value())
	require.True(t, src.Empty())

	nh = res.Node
	nh.SetKey("c")
	pos := dst.InsertNodeHint(dst.End(), &nh)
	require.True(t, nh.Empty())
	require.Equal(t, "c", pos.Key())
	require.Equal(t, 2, pos.Value())
}

func TestMap_Merge(t *testing.T) {
	a := CollectMap(maps.All(map[int]string{1: "a", 2: "b"}))
	b := CollectMap(maps.All(map[int]string{2: "x", 3: "c"}))

	a.Merge(b)

	require.Equal(t, 3, a.Len())
	v, _ := a.Get(2)
	require.Equal(t, "b", v)
	require.Equal(t, 1, b.Len())
	require.True(t, b.Contains(2))

	mm := NewMultiMap[int, string]()
	mm.Insert(4, "first")
	mm.Insert(4, "second")
	a.MergeMulti(mm)

	v, _ = a.Get(4)
	require.Equal(t, "first", v)
	require.Equal(t, 1, mm.Len())
}

func TestMap_Equal(t *testing.T) {
	a := CollectMap(maps.All(map[string]int{"a": 1, "b": 2}))
	b := NewMap[string, int](WithBucketCount(50))
	b.Insert("b", 2)
	b.Insert("a", 1)

	require.True(t, MapsEqual(a, b))

	*b.Index("a") = 5
	require.False(t, MapsEqual(a, b))
	require.True(t, a.EqualFunc(b, func(x, y int) bool { return (x > 0) == (y > 0) }))
}

func TestMap_CollectFirstWins(t *testing.T) {
	pairs := func(yield func(string, int) bool) {
		for i, k := range []string{"a", "b", "a"} {
			if !yield(k, i) {
				return
			}
		}
	}

	m := CollectMap(pairs)
	v, _ := m.Get("a")
	require.Equal(t, 0, v)
	require.Equal(t, 2, m.Len())
	require.Equal(t, 0, m.InsertAll(pairs))
}

func TestMap_CloneMoveSwap(t *testing.T) {
	m := CollectMap(maps.All(map[int]int{1: 1, 2: 4, 3: 9}))

	c := m.Clone()
	*c.Index(1) = 100
	v, _ := m.Get(1)
	require.Equal(t, 1, v)

	other := NewMap[int, int]()
	other.Assign(c)
	require.True(t, MapsEqual(other, c))

	moved := m.Move()
	require.True(t, m.Empty())
	require.Equal(t, 3, moved.Len())

	m.Swap(moved)
	require.Equal(t, 3, m.Len())
	require.True(t, moved.Empty())
}

func TestMap_ZeroValue(t *testing.T) {
	var m Map[string, int, StringHasher]

	_, err := m.At("a")
	require.ErrorIs(t, err, ErrKeyNotFound)

	*m.Index("a") = 1
	m.InsertOrAssign("b", 2)
	require.Equal(t, 2, m.Len())
	require.Equal(t, StringHasher{}, m.Hasher())
	require.Equal(t, Allocator[string, int](HeapAllocator[string, int]{}), m.Allocator())
}

func TestMap_PanickingHasher(t *testing.T) {
	pool := NewPoolAllocator[int, string](0)
	m := NewMapWith[int, string](panicHasher{bad: 3}, WithAllocator[int, string](pool))
	m.Insert(1, "one")

	require.Panics(t, func() { m.Emplace(3, "three") })
	require.Panics(t, func() { m.TryEmplaceFunc(3, func() string { return "three" }) })
	require.Panics(t, func() { m.InsertOrAssign(3, "three") })

	require.Equal(t, 1, m.Len())
	require.Equal(t, 1, pool.Live())
}

func TestMap_EraseConst(t *testing.T) {
	m := NewMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	c := m.Find("a").AsConst()
	m.EraseConst(c)
	require.False(t, m.Contains("a"))

	nh := m.ExtractConst(m.Find("b").AsConst())
	require.Equal(t, 2, nh.Value())
	require.True(t, m.Empty())
}
