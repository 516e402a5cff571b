package unordered

// Lookup is a heterogeneous view of a container: it finds elements by a
// key of type Q without building a K. It can only be obtained for
// containers whose hasher implements TransparentHasher[K, Q], so the
// check happens at compile time.
type Lookup[Q, K, V any, H TransparentHasher[K, Q], A Access] struct {
	t *table[K, V, H, A]
}

// Returns a Q-keyed view of a set.
func LookupSet[Q, K any, H TransparentHasher[K, Q]](s *Set[K, H]) Lookup[Q, K, struct{}, H, Const] {
	return Lookup[Q, K, struct{}, H, Const]{t: &s.table}
}

// Returns a Q-keyed view of a multiset.
func LookupMultiSet[Q, K any, H TransparentHasher[K, Q]](s *MultiSet[K, H]) Lookup[Q, K, struct{}, H, Const] {
	return Lookup[Q, K, struct{}, H, Const]{t: &s.table}
}

// Returns a Q-keyed view of a map.
func LookupMap[Q, K, V any, H TransparentHasher[K, Q]](m *Map[K, V, H]) Lookup[Q, K, V, H, Mutable] {
	return Lookup[Q, K, V, H, Mutable]{t: &m.table}
}

// Returns a Q-keyed view of a multimap.
func LookupMultiMap[Q, K, V any, H TransparentHasher[K, Q]](m *MultiMap[K, V, H]) Lookup[Q, K, V, H, Mutable] {
	return Lookup[Q, K, V, H, Mutable]{t: &m.table}
}

func (l Lookup[Q, K, V, H, A]) lookup(q Q) (int, *Node[K, V]) {
	t := l.t
	if t.size == 0 {
		return 0, nil
	}

	hash := t.hasher.HashLookup(q)
	idx := t.bucketIndex(hash)
	for n := t.buckets[idx]; n != nil; n = n.next {
		if n.hash == hash && t.hasher.EqualLookup(q, n.key) {
			return idx, n
		}
	}

	return idx, nil
}

func (l Lookup[Q, K, V, H, A]) Find(q Q) Iterator[K, V, A] {
	idx, n := l.lookup(q)
	if n == nil {
		return l.t.End()
	}

	return l.t.iterAt(idx, n)
}

func (l Lookup[Q, K, V, H, A]) Contains(q Q) bool {
	_, n := l.lookup(q)
	return n != nil
}

func (l Lookup[Q, K, V, H, A]) Count(q Q) int {
	_, n := l.lookup(q)
	if n == nil {
		return 0
	}

	_, count := l.t.runEnd(n)

	return count
}

func (l Lookup[Q, K, V, H, A]) EqualRange(q Q) (Iterator[K, V, A], Iterator[K, V, A]) {
	idx, n := l.lookup(q)
	if n == nil {
		return l.t.End(), l.t.End()
	}

	after, _ := l.t.runEnd(n)

	return l.t.iterAt(idx, n), l.t.iterAt(idx, after)
}

// Bucket returns the index of the bucket a key equal to q belongs to.
func (l Lookup[Q, K, V, H, A]) Bucket(q Q) int {
	return l.t.growth.index(l.t.hasher.HashLookup(q), l.t.BucketCount())
}

// EraseKey removes every element whose key is equal to q.
func (l Lookup[Q, K, V, H, A]) EraseKey(q Q) int {
	idx, n := l.lookup(q)
	if n == nil {
		return 0
	}

	return l.t.eraseRun(idx, n)
}

// TryEmplaceAs inserts key(q) with v unless a key equal to q is present.
// key is only called when an insertion happens.
func TryEmplaceAs[Q, K, V any, H TransparentHasher[K, Q]](m *Map[K, V, H], q Q, key func(Q) K, v V) (MapIterator[K, V], bool) {
	if idx, n := LookupMap[Q, K, V, H](m).lookup(q); n != nil {
		return m.iterAt(idx, n), false
	}

	k := key(q)

	return m.linkFront(m.newNode(m.hasher.Hash(k), k, v)), true
}

// InsertOrAssignAs stores v under the key equal to q, inserting key(q) when absent.
func InsertOrAssignAs[Q, K, V any, H TransparentHasher[K, Q]](m *Map[K, V, H], q Q, key func(Q) K, v V) (MapIterator[K, V], bool) {
	if idx, n := LookupMap[Q, K, V, H](m).lookup(q); n != nil {
		n.value = v
		return m.iterAt(idx, n), false
	}

	k := key(q)

	return m.linkFront(m.newNode(m.hasher.Hash(k), k, v)), true
}
