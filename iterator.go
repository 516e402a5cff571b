package unordered

// Const marks iterators that only read elements.
type Const struct{}

// Mutable marks iterators that may update mapped values through Ref.
type Mutable struct{}

// Access is the capability an iterator carries.
type Access interface {
	Const | Mutable
}

// Iterator is a forward cursor over every element of a table, bucket by
// bucket and in chain order within a bucket. The zero value is singular and
// only compares equal to other singular or end iterators.
//
// An iterator is invalidated by a rehash of its table and by erasing the
// element it points to. Inserting without a rehash and erasing other
// elements leave it valid.
type Iterator[K, V any, A Access] struct {
	buckets []*Node[K, V]
	idx     int
	n       *Node[K, V]
	gen     generation
}

func makeIterator[K, V any, A Access](buckets []*Node[K, V], idx int, n *Node[K, V], gen generation) Iterator[K, V, A] {
	it := Iterator[K, V, A]{buckets: buckets, idx: idx, n: n, gen: gen}
	it.satisfy()

	return it
}

// satisfy moves past empty buckets until the iterator sits on an element
// or on the end of the last bucket.
func (it *Iterator[K, V, A]) satisfy() {
	for it.n == nil && it.idx+1 < len(it.buckets) {
		it.idx++
		it.n = it.buckets[it.idx]
	}
}

// IsEnd reports whether the iterator is past the last element.
func (it Iterator[K, V, A]) IsEnd() bool {
	return it.n == nil
}

// Key returns the key of the current element.
func (it Iterator[K, V, A]) Key() K {
	it.gen.check()
	return it.n.key
}

// Value returns the mapped value of the current element (struct{} for sets).
func (it Iterator[K, V, A]) Value() V {
	it.gen.check()
	return it.n.value
}

// Next advances to the following element.
func (it *Iterator[K, V, A]) Next() {
	it.gen.check()
	it.n = it.n.next
	it.satisfy()
}

// Equal reports whether both iterators point at the same element.
func (it Iterator[K, V, A]) Equal(o Iterator[K, V, A]) bool {
	return it.n == o.n
}

// AsConst drops the Mutable capability. There is no conversion back; maps
// still erase through the result with EraseConst.
func (it Iterator[K, V, A]) AsConst() Iterator[K, V, Const] {
	return Iterator[K, V, Const]{buckets: it.buckets, idx: it.idx, n: it.n, gen: it.gen}
}

// mutable restores the Mutable capability for erasure by the owning container.
func mutable[K, V any](it Iterator[K, V, Const]) Iterator[K, V, Mutable] {
	return Iterator[K, V, Mutable]{buckets: it.buckets, idx: it.idx, n: it.n, gen: it.gen}
}

// Ref returns a pointer to the mapped value under a mutable iterator.
// The pointer stays valid across rehashes until the element is erased.
func Ref[K, V any](it Iterator[K, V, Mutable]) *V {
	it.gen.check()
	return &it.n.value
}

// LocalIterator walks the chain of a single bucket.
type LocalIterator[K, V any, A Access] struct {
	n   *Node[K, V]
	gen generation
}

func (it LocalIterator[K, V, A]) IsEnd() bool {
	return it.n == nil
}

func (it LocalIterator[K, V, A]) Key() K {
	it.gen.check()
	return it.n.key
}

func (it LocalIterator[K, V, A]) Value() V {
	it.gen.check()
	return it.n.value
}

func (it *LocalIterator[K, V, A]) Next() {
	it.gen.check()
	it.n = it.n.next
}

func (it LocalIterator[K, V, A]) Equal(o LocalIterator[K, V, A]) bool {
	return it.n == o.n
}

func (it LocalIterator[K, V, A]) AsConst() LocalIterator[K, V, Const] {
	return LocalIterator[K, V, Const]{n: it.n, gen: it.gen}
}

// LocalRef is Ref for local iterators.
func LocalRef[K, V any](it LocalIterator[K, V, Mutable]) *V {
	it.gen.check()
	return &it.n.value
}
