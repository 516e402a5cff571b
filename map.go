package unordered

import (
	"iter"

	"github.com/pkg/errors"
)

// MapIterator iterates over Map and MultiMap elements and can update
// mapped values through Ref.
type MapIterator[K, V any] = Iterator[K, V, Mutable]

// Map associates unique keys with values.
// The zero value is an empty map using a zero H.
type Map[K, V any, H Hasher[K]] struct {
	table[K, V, H, Mutable]
}

// Returns a new map of comparable keys hashed with a freshly seeded maphash.
func NewMap[K comparable, V any](opts ...Option) *Map[K, V, ComparableHasher[K]] {
	return NewMapWith[K, V](MakeComparableHasher[K](), opts...)
}

// Returns a new map using the given hasher.
func NewMapWith[K, V any, H Hasher[K]](h H, opts ...Option) *Map[K, V, H] {
	var m Map[K, V, H]
	m.init(h, opts)

	return &m
}

// Returns a map holding every pair of seq. For repeated keys the first pair wins.
func CollectMap[K comparable, V any](seq iter.Seq2[K, V], opts ...Option) *Map[K, V, ComparableHasher[K]] {
	m := NewMap[K, V](opts...)
	m.InsertAll(seq)

	return m
}

// Get returns the value stored for k.
func (m *Map[K, V, H]) Get(k K) (V, bool) {
	_, n := m.lookup(k, m.hasher.Hash(k))
	if n == nil {
		var zero V
		return zero, false
	}

	return n.value, true
}

// At returns the value stored for k, or ErrKeyNotFound.
func (m *Map[K, V, H]) At(k K) (V, error) {
	v, ok := m.Get(k)
	if !ok {
		return v, errors.Wrapf(ErrKeyNotFound, "key %v", k)
	}

	return v, nil
}

// Index returns a pointer to the value stored for k, inserting a zero
// value first if k is absent. The pointer stays valid until k is erased.
func (m *Map[K, V, H]) Index(k K) *V {
	var zero V
	it, _ := m.insertUnique(k, zero)

	return &it.n.value
}

// Insert adds k with v unless k is present, in which case the stored
// value is left untouched.
func (m *Map[K, V, H]) Insert(k K, v V) (MapIterator[K, V], bool) {
	return m.insertUnique(k, v)
}

func (m *Map[K, V, H]) InsertHint(hint MapIterator[K, V], k K, v V) MapIterator[K, V] {
	if !hint.IsEnd() && m.hasher.Equal(hint.n.key, k) {
		return hint
	}

	it, _ := m.Insert(k, v)

	return it
}

// InsertAll inserts every pair of seq and returns how many keys were new.
// If the hasher panics midway, pairs inserted before stay in the map.
func (m *Map[K, V, H]) InsertAll(seq iter.Seq2[K, V]) int {
	inserted := 0
	for k, v := range seq {
		if _, ok := m.Insert(k, v); ok {
			inserted++
		}
	}

	return inserted
}

// InsertOrAssign stores v for k, overwriting any previous value. It reports
// whether k was new.
func (m *Map[K, V, H]) InsertOrAssign(k K, v V) (MapIterator[K, V], bool) {
	hash := m.hasher.Hash(k)
	if idx, n := m.lookup(k, hash); n != nil {
		n.value = v
		return m.iterAt(idx, n), false
	}

	return m.linkFront(m.newNode(hash, k, v)), true
}

// TryEmplace inserts k with v only if k is absent.
func (m *Map[K, V, H]) TryEmplace(k K, v V) (MapIterator[K, V], bool) {
	return m.insertUnique(k, v)
}

// TryEmplaceFunc is TryEmplace with a value built only when k is absent.
func (m *Map[K, V, H]) TryEmplaceFunc(k K, mk func() V) (MapIterator[K, V], bool) {
	hash := m.hasher.Hash(k)
	if idx, n := m.lookup(k, hash); n != nil {
		return m.iterAt(idx, n), false
	}

	return m.linkFront(m.newNode(hash, k, mk())), true
}

// Emplace inserts k with v unless k is present. No node is allocated for
// a rejected key or when the hasher panics.
func (m *Map[K, V, H]) Emplace(k K, v V) (MapIterator[K, V], bool) {
	return m.insertUnique(k, v)
}

func (m *Map[K, V, H]) EmplaceHint(hint MapIterator[K, V], k K, v V) MapIterator[K, V] {
	if !hint.IsEnd() && m.hasher.Equal(hint.n.key, k) {
		return hint
	}

	it, _ := m.Emplace(k, v)

	return it
}

// EraseConst is Erase for an iterator narrowed with AsConst.
func (m *Map[K, V, H]) EraseConst(it Iterator[K, V, Const]) MapIterator[K, V] {
	return m.Erase(mutable(it))
}

// ExtractConst is Extract for an iterator narrowed with AsConst.
func (m *Map[K, V, H]) ExtractConst(it Iterator[K, V, Const]) NodeHandle[K, V] {
	return m.extract(mutable(it))
}

func (m *Map[K, V, H]) Extract(it MapIterator[K, V]) NodeHandle[K, V] {
	return m.extract(it)
}

func (m *Map[K, V, H]) ExtractKey(k K) NodeHandle[K, V] {
	return m.extractKey(k)
}

// InsertNode links the node owned by nh and empties nh. A node whose key is
// already present is handed back in the result.
func (m *Map[K, V, H]) InsertNode(nh *NodeHandle[K, V]) InsertReturn[K, V, Mutable] {
	res := m.insertNodeUnique(*nh)
	*nh = NodeHandle[K, V]{}

	return res
}

// InsertNodeHint is InsertNode with a position hint. A rejected node stays in nh.
func (m *Map[K, V, H]) InsertNodeHint(_ MapIterator[K, V], nh *NodeHandle[K, V]) MapIterator[K, V] {
	res := m.InsertNode(nh)
	if !res.Inserted {
		*nh = res.Node
	}

	return res.Position
}

// Merge moves every element of src whose key is not in m.
func (m *Map[K, V, H]) Merge(src *Map[K, V, H]) {
	m.mergeFrom(&src.table, true)
}

// MergeMulti moves one element per key of src that is not in m.
func (m *Map[K, V, H]) MergeMulti(src *MultiMap[K, V, H]) {
	m.mergeFrom(&src.table, true)
}

func (m *Map[K, V, H]) Swap(o *Map[K, V, H]) {
	m.swap(&o.table)
}

func (m *Map[K, V, H]) Clone() *Map[K, V, H] {
	return &Map[K, V, H]{table: m.clone(nil)}
}

func (m *Map[K, V, H]) CloneWithAllocator(a Allocator[K, V]) *Map[K, V, H] {
	return &Map[K, V, H]{table: m.clone(a)}
}

func (m *Map[K, V, H]) Move() *Map[K, V, H] {
	return &Map[K, V, H]{table: m.move(nil)}
}

// MoveWithAllocator transfers the elements to a new map using a and leaves m empty.
func (m *Map[K, V, H]) MoveWithAllocator(a Allocator[K, V]) *Map[K, V, H] {
	return &Map[K, V, H]{table: m.move(a)}
}

func (m *Map[K, V, H]) Assign(src *Map[K, V, H]) {
	m.assign(&src.table)
}

// EqualFunc reports whether both maps hold the same keys with values equal under eq.
func (m *Map[K, V, H]) EqualFunc(o *Map[K, V, H], eq func(a, b V) bool) bool {
	return m.equal(&o.table, eq)
}

// All yields every key and value in iteration order.
func (m *Map[K, V, H]) All() iter.Seq2[K, V] {
	return m.all()
}

// Values yields every value in iteration order.
func (m *Map[K, V, H]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.all() {
			if !yield(v) {
				return
			}
		}
	}
}

// MapsEqual reports whether both maps hold the same keys and values.
func MapsEqual[K any, V comparable, H Hasher[K]](a, b *Map[K, V, H]) bool {
	return a.EqualFunc(b, func(x, y V) bool { return x == y })
}
