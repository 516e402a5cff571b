package unordered

import "iter"

// MultiMap associates keys with values where keys may repeat. Elements with
// equal keys are kept next to each other in insertion order.
type MultiMap[K, V any, H Hasher[K]] struct {
	table[K, V, H, Mutable]
}

func NewMultiMap[K comparable, V any](opts ...Option) *MultiMap[K, V, ComparableHasher[K]] {
	return NewMultiMapWith[K, V](MakeComparableHasher[K](), opts...)
}

func NewMultiMapWith[K, V any, H Hasher[K]](h H, opts ...Option) *MultiMap[K, V, H] {
	var m MultiMap[K, V, H]
	m.init(h, opts)

	return &m
}

func CollectMultiMap[K comparable, V any](seq iter.Seq2[K, V], opts ...Option) *MultiMap[K, V, ComparableHasher[K]] {
	m := NewMultiMap[K, V](opts...)
	m.InsertAll(seq)

	return m
}

// Insert adds k with v after any elements with an equal key.
func (m *MultiMap[K, V, H]) Insert(k K, v V) MapIterator[K, V] {
	return m.insertMulti(k, v)
}

func (m *MultiMap[K, V, H]) InsertHint(hint MapIterator[K, V], k K, v V) MapIterator[K, V] {
	return m.insertMultiAt(hint.n, k, v)
}

func (m *MultiMap[K, V, H]) InsertAll(seq iter.Seq2[K, V]) int {
	inserted := 0
	for k, v := range seq {
		m.Insert(k, v)
		inserted++
	}

	return inserted
}

func (m *MultiMap[K, V, H]) Emplace(k K, v V) MapIterator[K, V] {
	return m.insertMulti(k, v)
}

func (m *MultiMap[K, V, H]) EmplaceHint(hint MapIterator[K, V], k K, v V) MapIterator[K, V] {
	return m.insertMultiAt(hint.n, k, v)
}

// ValuesOf yields the values stored under k in insertion order.
func (m *MultiMap[K, V, H]) ValuesOf(k K) iter.Seq[V] {
	return func(yield func(V) bool) {
		first, last := m.EqualRange(k)
		for it := first; !it.Equal(last); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// EraseConst is Erase for an iterator narrowed with AsConst.
func (m *MultiMap[K, V, H]) EraseConst(it Iterator[K, V, Const]) MapIterator[K, V] {
	return m.Erase(mutable(it))
}

func (m *MultiMap[K, V, H]) ExtractConst(it Iterator[K, V, Const]) NodeHandle[K, V] {
	return m.extract(mutable(it))
}

func (m *MultiMap[K, V, H]) Extract(it MapIterator[K, V]) NodeHandle[K, V] {
	return m.extract(it)
}

func (m *MultiMap[K, V, H]) ExtractKey(k K) NodeHandle[K, V] {
	return m.extractKey(k)
}

func (m *MultiMap[K, V, H]) InsertNode(nh *NodeHandle[K, V]) MapIterator[K, V] {
	it := m.insertNodeMulti(*nh, nil)
	*nh = NodeHandle[K, V]{}

	return it
}

func (m *MultiMap[K, V, H]) InsertNodeHint(hint MapIterator[K, V], nh *NodeHandle[K, V]) MapIterator[K, V] {
	it := m.insertNodeMulti(*nh, hint.n)
	*nh = NodeHandle[K, V]{}

	return it
}

func (m *MultiMap[K, V, H]) Merge(src *MultiMap[K, V, H]) {
	m.mergeFrom(&src.table, false)
}

func (m *MultiMap[K, V, H]) MergeUnique(src *Map[K, V, H]) {
	m.mergeFrom(&src.table, false)
}

func (m *MultiMap[K, V, H]) Swap(o *MultiMap[K, V, H]) {
	m.swap(&o.table)
}

func (m *MultiMap[K, V, H]) Clone() *MultiMap[K, V, H] {
	return &MultiMap[K, V, H]{table: m.clone(nil)}
}

func (m *MultiMap[K, V, H]) CloneWithAllocator(a Allocator[K, V]) *MultiMap[K, V, H] {
	return &MultiMap[K, V, H]{table: m.clone(a)}
}

func (m *MultiMap[K, V, H]) Move() *MultiMap[K, V, H] {
	return &MultiMap[K, V, H]{table: m.move(nil)}
}

func (m *MultiMap[K, V, H]) MoveWithAllocator(a Allocator[K, V]) *MultiMap[K, V, H] {
	return &MultiMap[K, V, H]{table: m.move(a)}
}

func (m *MultiMap[K, V, H]) Assign(src *MultiMap[K, V, H]) {
	m.assign(&src.table)
}

// EqualFunc reports whether both multimaps hold the same keys, each with the
// same values in any order.
func (m *MultiMap[K, V, H]) EqualFunc(o *MultiMap[K, V, H], eq func(a, b V) bool) bool {
	return m.equal(&o.table, eq)
}

func (m *MultiMap[K, V, H]) All() iter.Seq2[K, V] {
	return m.all()
}
