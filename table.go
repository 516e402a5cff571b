// Package unordered implements hash-table-backed associative containers:
// Set, MultiSet, Map and MultiMap. Elements live in nodes chained into an
// array of buckets; the bucket array grows by relinking nodes so element
// addresses never change while an element is stored.
//
// The containers are not safe for concurrent mutation.
package unordered

import (
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type table[K, V any, H Hasher[K], A Access] struct {
	buckets []*Node[K, V]
	size    int

	hasher H
	alloc  Allocator[K, V]
	logger *zap.Logger

	mlf    float32
	growth GrowthPolicy

	// gen is bumped whenever iterators into the table go stale. It lives
	// on the heap so it travels with the nodes on swap and move, and is
	// only allocated by checked builds.
	gen      *uint64
	rehashes int
}

func (t *table[K, V, H, A]) init(h H, opts []Option) {
	s, alloc := buildSettings[K, V](opts)

	t.hasher = h
	t.alloc = alloc
	t.logger = s.logger
	t.mlf = s.MaxLoadFactor
	t.growth = s.Growth
	t.buckets = make([]*Node[K, V], s.Growth.roundUp(s.InitialBuckets))
}

func (t *table[K, V, H, A]) allocator() Allocator[K, V] {
	if t.alloc == nil {
		t.alloc = HeapAllocator[K, V]{}
	}

	return t.alloc
}

func (t *table[K, V, H, A]) maxLoad() float32 {
	if t.mlf == 0 {
		return defaultMaxLoadFactor
	}

	return t.mlf
}

func (t *table[K, V, H, A]) bucketIndex(hash uint64) int {
	return t.growth.index(hash, len(t.buckets))
}

func (t *table[K, V, H, A]) iterAt(idx int, n *Node[K, V]) Iterator[K, V, A] {
	return makeIterator[K, V, A](t.buckets, idx, n, t.stamp())
}

func (t *table[K, V, H, A]) stamp() generation {
	if !checkedIterators {
		return generation{}
	}
	if t.gen == nil {
		t.gen = new(uint64)
	}

	return stamp(t.gen)
}

// invalidate makes every iterator stamped so far stale.
func (t *table[K, V, H, A]) invalidate() {
	if t.gen != nil {
		*t.gen++
	}
}

// Len returns the number of elements.
func (t *table[K, V, H, A]) Len() int {
	return t.size
}

// Empty reports whether the container holds no element.
func (t *table[K, V, H, A]) Empty() bool {
	return t.size == 0
}

// MaxSize returns the largest number of elements the container could address.
func (t *table[K, V, H, A]) MaxSize() int {
	return maxNodes[K, V]()
}

// Hasher returns the hash and equality functor of the container.
func (t *table[K, V, H, A]) Hasher() H {
	return t.hasher
}

// Allocator returns the node allocator of the container.
func (t *table[K, V, H, A]) Allocator() Allocator[K, V] {
	return t.allocator()
}

// Begin returns an iterator to the first element, or End for an empty container.
func (t *table[K, V, H, A]) Begin() Iterator[K, V, A] {
	if len(t.buckets) == 0 {
		return Iterator[K, V, A]{}
	}

	return t.iterAt(0, t.buckets[0])
}

// End returns the past-the-end iterator.
func (t *table[K, V, H, A]) End() Iterator[K, V, A] {
	return Iterator[K, V, A]{buckets: t.buckets, idx: max(len(t.buckets)-1, 0), gen: t.stamp()}
}

// Keys yields every key in iteration order.
func (t *table[K, V, H, A]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, head := range t.buckets {
			for n := head; n != nil; n = n.next {
				if !yield(n.key) {
					return
				}
			}
		}
	}
}

func (t *table[K, V, H, A]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, head := range t.buckets {
			for n := head; n != nil; n = n.next {
				if !yield(n.key, n.value) {
					return
				}
			}
		}
	}
}

// lookup returns the first node holding a key equal to k.
func (t *table[K, V, H, A]) lookup(k K, hash uint64) (int, *Node[K, V]) {
	if t.size == 0 {
		return 0, nil
	}

	idx := t.bucketIndex(hash)
	for n := t.buckets[idx]; n != nil; n = n.next {
		if n.hash == hash && t.hasher.Equal(n.key, k) {
			return idx, n
		}
	}

	return idx, nil
}

// lastEqual returns the last node of the run of keys equal to k, or nil.
func (t *table[K, V, H, A]) lastEqual(k K, hash uint64) *Node[K, V] {
	_, n := t.lookup(k, hash)
	if n == nil {
		return nil
	}

	for n.next != nil && n.next.hash == hash && t.hasher.Equal(n.next.key, k) {
		n = n.next
	}

	return n
}

// runEnd returns the node following the run of keys equal to first's key.
func (t *table[K, V, H, A]) runEnd(first *Node[K, V]) (*Node[K, V], int) {
	count := 1
	n := first.next
	for n != nil && n.hash == first.hash && t.hasher.Equal(n.key, first.key) {
		n = n.next
		count++
	}

	return n, count
}

// Find returns an iterator to an element with key k, or End.
func (t *table[K, V, H, A]) Find(k K) Iterator[K, V, A] {
	idx, n := t.lookup(k, t.hasher.Hash(k))
	if n == nil {
		return t.End()
	}

	return t.iterAt(idx, n)
}

// Contains reports whether an element with key k exists.
func (t *table[K, V, H, A]) Contains(k K) bool {
	_, n := t.lookup(k, t.hasher.Hash(k))
	return n != nil
}

// Count returns the number of elements with key k.
func (t *table[K, V, H, A]) Count(k K) int {
	_, n := t.lookup(k, t.hasher.Hash(k))
	if n == nil {
		return 0
	}

	_, count := t.runEnd(n)

	return count
}

// EqualRange returns the half-open range of elements with key k.
// Both iterators are End when the key is absent.
func (t *table[K, V, H, A]) EqualRange(k K) (Iterator[K, V, A], Iterator[K, V, A]) {
	idx, n := t.lookup(k, t.hasher.Hash(k))
	if n == nil {
		return t.End(), t.End()
	}

	after, _ := t.runEnd(n)

	return t.iterAt(idx, n), t.iterAt(idx, after)
}

// growFor makes room for size elements, rehashing when the max load factor
// would be exceeded.
func (t *table[K, V, H, A]) growFor(size int) {
	if len(t.buckets) == 0 {
		t.buckets = make([]*Node[K, V], 1)
	}

	mlf := t.maxLoad()
	if float64(size) <= float64(len(t.buckets))*float64(mlf) {
		return
	}

	n := max(len(t.buckets)*growthFactor, minBucketsFor(size, mlf))
	t.rehash(t.growth.roundUp(n))
}

// rehash relinks every node into a fresh array of n buckets. Chains keep
// their relative order, so runs of equal keys stay contiguous.
func (t *table[K, V, H, A]) rehash(n int) {
	buckets := make([]*Node[K, V], n)
	tails := make([]*Node[K, V], n)

	for _, head := range t.buckets {
		for cur := head; cur != nil; {
			next := cur.next
			cur.next = nil

			idx := t.growth.index(cur.hash, n)
			if tails[idx] == nil {
				buckets[idx] = cur
			} else {
				tails[idx].next = cur
			}
			tails[idx] = cur

			cur = next
		}
	}

	from := len(t.buckets)
	t.buckets = buckets
	t.invalidate()
	t.rehashes++

	if t.logger != nil {
		t.logger.Debug("rehash",
			zap.Int("from", from),
			zap.Int("to", n),
			zap.Int("size", t.size),
			zap.Stringer("growth", t.growth),
		)
	}
}

// Rehash sets the bucket count to at least n and to at least what the
// current size needs under the max load factor. The count may shrink.
func (t *table[K, V, H, A]) Rehash(n int) {
	n = max(n, minBucketsFor(t.size, t.maxLoad()))
	n = t.growth.roundUp(n)

	if n == len(t.buckets) {
		return
	}

	t.rehash(n)
}

// Reserve sets the bucket count so that n elements fit without exceeding
// the max load factor.
func (t *table[K, V, H, A]) Reserve(n int) {
	t.Rehash(minBucketsFor(n, t.maxLoad()))
}

// BucketCount returns the number of buckets, at least one.
func (t *table[K, V, H, A]) BucketCount() int {
	return max(len(t.buckets), 1)
}

// MaxBucketCount returns the largest bucket count the container could allocate.
func (t *table[K, V, H, A]) MaxBucketCount() int {
	return maxBuckets()
}

// Bucket returns the index of the bucket key k belongs to.
func (t *table[K, V, H, A]) Bucket(k K) int {
	return t.growth.index(t.hasher.Hash(k), t.BucketCount())
}

// BucketSize returns the chain length of bucket n.
func (t *table[K, V, H, A]) BucketSize(n int) int {
	if len(t.buckets) == 0 && n == 0 {
		return 0
	}

	size := 0
	for cur := t.buckets[n]; cur != nil; cur = cur.next {
		size++
	}

	return size
}

// BucketBegin returns an iterator to the first element of bucket n.
func (t *table[K, V, H, A]) BucketBegin(n int) LocalIterator[K, V, A] {
	if len(t.buckets) == 0 && n == 0 {
		return LocalIterator[K, V, A]{}
	}

	return LocalIterator[K, V, A]{n: t.buckets[n], gen: t.stamp()}
}

// BucketEnd returns the past-the-end iterator of bucket n.
func (t *table[K, V, H, A]) BucketEnd(n int) LocalIterator[K, V, A] {
	return LocalIterator[K, V, A]{gen: t.stamp()}
}

// LoadFactor returns the average number of elements per bucket.
func (t *table[K, V, H, A]) LoadFactor() float32 {
	return float32(t.size) / float32(t.BucketCount())
}

// MaxLoadFactor returns the load factor above which the container grows.
func (t *table[K, V, H, A]) MaxLoadFactor() float32 {
	return t.maxLoad()
}

// SetMaxLoadFactor changes the max load factor and rehashes right away
// when the current load exceeds it. It panics if f is not positive and finite.
func (t *table[K, V, H, A]) SetMaxLoadFactor(f float32) {
	if !validLoadFactor(f) {
		panic(errors.Wrapf(ErrInvalidLoadFactor, "%v", f))
	}

	t.mlf = f
	if float64(t.size) > float64(t.BucketCount())*float64(f) {
		t.rehash(t.growth.roundUp(minBucketsFor(t.size, f)))
	}
}

func (t *table[K, V, H, A]) newNode(hash uint64, k K, v V) *Node[K, V] {
	n := t.allocator().Allocate()
	n.next = nil
	n.hash = hash
	n.key = k
	n.value = v

	return n
}

func (t *table[K, V, H, A]) free(n *Node[K, V]) {
	var zero Node[K, V]
	*n = zero
	t.allocator().Deallocate(n)
}

// linkFront links n, whose hash is set, at the head of its bucket.
func (t *table[K, V, H, A]) linkFront(n *Node[K, V]) Iterator[K, V, A] {
	t.growFor(t.size + 1)

	idx := t.bucketIndex(n.hash)
	n.next = t.buckets[idx]
	t.buckets[idx] = n
	t.size++

	return t.iterAt(idx, n)
}

// linkAfter links n behind prev, or at the head of its bucket when prev is nil.
// prev must hold a key equal to n's key so the run stays contiguous.
func (t *table[K, V, H, A]) linkAfter(prev, n *Node[K, V]) Iterator[K, V, A] {
	if prev == nil {
		return t.linkFront(n)
	}

	// A rehash keeps prev and the run around it together.
	t.growFor(t.size + 1)

	n.next = prev.next
	prev.next = n
	t.size++

	return t.iterAt(t.bucketIndex(n.hash), n)
}

// insertUnique inserts k and v unless an equal key exists. Nothing is
// modified before the hasher returns.
func (t *table[K, V, H, A]) insertUnique(k K, v V) (Iterator[K, V, A], bool) {
	hash := t.hasher.Hash(k)
	if idx, n := t.lookup(k, hash); n != nil {
		return t.iterAt(idx, n), false
	}

	return t.linkFront(t.newNode(hash, k, v)), true
}

// insertMulti inserts k and v behind the last element with an equal key.
func (t *table[K, V, H, A]) insertMulti(k K, v V) Iterator[K, V, A] {
	return t.insertMultiAt(nil, k, v)
}

// insertMultiAt is insertMulti with a hint. A hint holding an equal key
// receives the new element right behind it. The node is allocated only
// after the hasher returned.
func (t *table[K, V, H, A]) insertMultiAt(hint *Node[K, V], k K, v V) Iterator[K, V, A] {
	hash := t.hasher.Hash(k)

	prev := hint
	if hint == nil || hint.hash != hash || !t.hasher.Equal(hint.key, k) {
		prev = t.lastEqual(k, hash)
	}

	return t.linkAfter(prev, t.newNode(hash, k, v))
}

// unlink detaches n from bucket idx and returns its successor.
func (t *table[K, V, H, A]) unlink(idx int, n *Node[K, V]) *Node[K, V] {
	next := n.next
	if t.buckets[idx] == n {
		t.buckets[idx] = next
	} else {
		prev := t.buckets[idx]
		for prev.next != n {
			prev = prev.next
		}
		prev.next = next
	}

	n.next = nil
	t.size--

	return next
}

// Erase removes the element under it and returns an iterator to the next one.
// Only iterators to the erased element are invalidated.
func (t *table[K, V, H, A]) Erase(it Iterator[K, V, A]) Iterator[K, V, A] {
	it.gen.check()

	idx := it.idx
	next := t.unlink(idx, it.n)
	t.free(it.n)

	return t.iterAt(idx, next)
}

// EraseRange removes every element in [first, last) and returns last.
func (t *table[K, V, H, A]) EraseRange(first, last Iterator[K, V, A]) Iterator[K, V, A] {
	for !first.Equal(last) {
		first = t.Erase(first)
	}

	return first
}

// EraseKey removes every element with key k and returns how many were removed.
func (t *table[K, V, H, A]) EraseKey(k K) int {
	idx, n := t.lookup(k, t.hasher.Hash(k))
	if n == nil {
		return 0
	}

	return t.eraseRun(idx, n)
}

func (t *table[K, V, H, A]) eraseRun(idx int, first *Node[K, V]) int {
	after, count := t.runEnd(first)

	if t.buckets[idx] == first {
		t.buckets[idx] = after
	} else {
		prev := t.buckets[idx]
		for prev.next != first {
			prev = prev.next
		}
		prev.next = after
	}

	for n := first; n != after; {
		next := n.next
		t.free(n)
		n = next
	}
	t.size -= count

	return count
}

// Clear removes every element. The bucket count is kept.
func (t *table[K, V, H, A]) Clear() {
	for i, head := range t.buckets {
		for n := head; n != nil; {
			next := n.next
			t.free(n)
			n = next
		}
		t.buckets[i] = nil
	}

	t.size = 0
}

// extract detaches the node under it without releasing it.
func (t *table[K, V, H, A]) extract(it Iterator[K, V, A]) NodeHandle[K, V] {
	it.gen.check()
	t.unlink(it.idx, it.n)

	return NodeHandle[K, V]{n: it.n, alloc: t.allocator()}
}

func (t *table[K, V, H, A]) extractKey(k K) NodeHandle[K, V] {
	idx, n := t.lookup(k, t.hasher.Hash(k))
	if n == nil {
		return NodeHandle[K, V]{}
	}

	t.unlink(idx, n)

	return NodeHandle[K, V]{n: n, alloc: t.allocator()}
}

// adopt takes over a node allocated by from. Nodes of a foreign allocator
// are copied into one of ours and handed back.
func (t *table[K, V, H, A]) adopt(n *Node[K, V], from Allocator[K, V]) *Node[K, V] {
	if from == nil || from == t.allocator() {
		return n
	}

	m := t.newNode(n.hash, n.key, n.value)
	var zero Node[K, V]
	*n = zero
	from.Deallocate(n)

	return m
}

// mergeFrom moves nodes of src into t. With unique set, nodes whose key
// is already present stay in src.
func (t *table[K, V, H, A]) mergeFrom(src *table[K, V, H, A], unique bool) {
	if src == t {
		return
	}

	for idx := range src.buckets {
		for cur := src.buckets[idx]; cur != nil; {
			hash := t.hasher.Hash(cur.key)
			if unique {
				if _, found := t.lookup(cur.key, hash); found != nil {
					cur = cur.next
					continue
				}
			}

			var last *Node[K, V]
			if !unique {
				last = t.lastEqual(cur.key, hash)
			}

			next := src.unlink(idx, cur)
			n := t.adopt(cur, src.allocator())
			n.hash = hash
			t.linkAfter(last, n)

			cur = next
		}
	}
}

// copyFrom fills an empty t with copies of src's elements, keeping the
// bucket layout of src.
func (t *table[K, V, H, A]) copyFrom(src *table[K, V, H, A]) {
	t.hasher = src.hasher
	t.logger = src.logger
	t.mlf = src.mlf
	t.growth = src.growth
	t.buckets = make([]*Node[K, V], len(src.buckets))

	for idx, head := range src.buckets {
		var tail *Node[K, V]
		for n := head; n != nil; n = n.next {
			m := t.newNode(n.hash, n.key, n.value)
			if tail == nil {
				t.buckets[idx] = m
			} else {
				tail.next = m
			}
			tail = m
		}
	}

	t.size = src.size
}

func (t *table[K, V, H, A]) clone(alloc Allocator[K, V]) table[K, V, H, A] {
	if alloc == nil {
		alloc = t.allocator()
	}

	dst := table[K, V, H, A]{alloc: alloc}
	dst.copyFrom(t)

	return dst
}

// move transfers t's elements into a new table using alloc and leaves t
// empty. With an equal allocator the bucket array is stolen as is.
func (t *table[K, V, H, A]) move(alloc Allocator[K, V]) table[K, V, H, A] {
	if alloc == nil || alloc == t.allocator() {
		dst := *t
		dst.alloc = t.allocator()
		t.reset()

		return dst
	}

	dst := table[K, V, H, A]{alloc: alloc}
	dst.copyFrom(t)
	t.Clear()
	t.invalidate()
	t.reset()

	return dst
}

// reset drops the bucket array, leaving an empty table with one bucket.
// Iterators stamped before keep following the nodes they point to.
func (t *table[K, V, H, A]) reset() {
	t.buckets = make([]*Node[K, V], 1)
	t.size = 0
	t.gen = nil
}

// assign replaces t's elements with copies of src's, keeping t's allocator.
func (t *table[K, V, H, A]) assign(src *table[K, V, H, A]) {
	if src == t {
		return
	}

	t.Clear()
	t.invalidate()
	t.copyFrom(src)
}

func (t *table[K, V, H, A]) swap(o *table[K, V, H, A]) {
	*t, *o = *o, *t
}

// equal reports whether both tables hold the same elements, comparing
// runs of equal keys as unordered groups.
func (t *table[K, V, H, A]) equal(o *table[K, V, H, A], eq func(a, b V) bool) bool {
	if t.size != o.size {
		return false
	}

	for _, head := range t.buckets {
		for n := head; n != nil; {
			after, count := t.runEnd(n)

			_, other := o.lookup(n.key, o.hasher.Hash(n.key))
			if other == nil {
				return false
			}
			otherAfter, otherCount := o.runEnd(other)
			if count != otherCount || !isPermutation(n, after, other, otherAfter, count, eq) {
				return false
			}

			n = after
		}
	}

	return true
}

func isPermutation[K, V any](a, aEnd, b, bEnd *Node[K, V], count int, eq func(x, y V) bool) bool {
	if count == 1 {
		return eq(a.value, b.value)
	}

	used := make([]bool, count)
	for x := a; x != aEnd; x = x.next {
		matched := false
		i := 0
		for y := b; y != bEnd; y = y.next {
			if !used[i] && eq(x.value, y.value) {
				used[i] = true
				matched = true
				break
			}
			i++
		}
		if !matched {
			return false
		}
	}

	return true
}

// Stats returns a snapshot of the table layout.
func (t *table[K, V, H, A]) Stats() Stats {
	s := Stats{
		Size:          t.size,
		BucketCount:   t.BucketCount(),
		LoadFactor:    t.LoadFactor(),
		MaxLoadFactor: t.maxLoad(),
		Rehashes:      t.rehashes,
	}

	if len(t.buckets) == 0 {
		s.EmptyBuckets = 1
		return s
	}

	for _, head := range t.buckets {
		if head == nil {
			s.EmptyBuckets++
			continue
		}

		chain := 0
		for n := head; n != nil; n = n.next {
			chain++
		}
		s.LongestChain = max(s.LongestChain, chain)
	}

	return s
}
