package unordered

import "iter"

// SetIterator iterates over Set and MultiSet elements. Set elements cannot be
// modified in place, so set iterators are always Const.
type SetIterator[K any] = Iterator[K, struct{}, Const]

// SetNode is the node handle type of Set and MultiSet.
type SetNode[K any] = NodeHandle[K, struct{}]

// Set is a collection of unique keys organised into buckets by hash.
// The zero value is an empty set using a zero H.
type Set[K any, H Hasher[K]] struct {
	table[K, struct{}, H, Const]
}

// Returns a new set of comparable keys hashed with a freshly seeded maphash.
func NewSet[K comparable](opts ...Option) *Set[K, ComparableHasher[K]] {
	return NewSetWith[K](MakeComparableHasher[K](), opts...)
}

// Returns a new set using the given hasher.
func NewSetWith[K any, H Hasher[K]](h H, opts ...Option) *Set[K, H] {
	var s Set[K, H]
	s.init(h, opts)

	return &s
}

// Returns a set holding keys. Duplicates are dropped.
func SetOf[K comparable](keys ...K) *Set[K, ComparableHasher[K]] {
	s := NewSet[K](WithBucketCount(len(keys)))
	s.InsertSlice(keys...)

	return s
}

// Returns a set holding every key of seq.
func CollectSet[K comparable](seq iter.Seq[K], opts ...Option) *Set[K, ComparableHasher[K]] {
	s := NewSet[K](opts...)
	s.InsertAll(seq)

	return s
}

// Insert adds k unless it is present. It returns an iterator to the element
// with key k and whether it was inserted.
func (s *Set[K, H]) Insert(k K) (SetIterator[K], bool) {
	return s.insertUnique(k, struct{}{})
}

// InsertHint is Insert with a position hint. A hint at an equal key
// short-cuts the lookup.
func (s *Set[K, H]) InsertHint(hint SetIterator[K], k K) SetIterator[K] {
	if !hint.IsEnd() && s.hasher.Equal(hint.n.key, k) {
		return hint
	}

	it, _ := s.Insert(k)

	return it
}

// InsertAll inserts every key of seq and returns how many were new.
// If the hasher panics midway, keys inserted before stay in the set.
func (s *Set[K, H]) InsertAll(seq iter.Seq[K]) int {
	inserted := 0
	for k := range seq {
		if _, ok := s.Insert(k); ok {
			inserted++
		}
	}

	return inserted
}

// InsertSlice inserts keys in order and returns how many were new.
func (s *Set[K, H]) InsertSlice(keys ...K) int {
	inserted := 0
	for _, k := range keys {
		if _, ok := s.Insert(k); ok {
			inserted++
		}
	}

	return inserted
}

// Emplace inserts k unless it is present. No node is allocated for a
// rejected key or when the hasher panics.
func (s *Set[K, H]) Emplace(k K) (SetIterator[K], bool) {
	return s.insertUnique(k, struct{}{})
}

func (s *Set[K, H]) EmplaceHint(hint SetIterator[K], k K) SetIterator[K] {
	if !hint.IsEnd() && s.hasher.Equal(hint.n.key, k) {
		return hint
	}

	it, _ := s.Emplace(k)

	return it
}

// Extract unlinks the element under it and returns it as a node handle.
func (s *Set[K, H]) Extract(it SetIterator[K]) SetNode[K] {
	return s.extract(it)
}

// ExtractKey unlinks the element with key k. The handle is empty if k is absent.
func (s *Set[K, H]) ExtractKey(k K) SetNode[K] {
	return s.extractKey(k)
}

// InsertNode links the node owned by nh and empties nh. A node whose key is
// already present is handed back in the result.
func (s *Set[K, H]) InsertNode(nh *SetNode[K]) InsertReturn[K, struct{}, Const] {
	res := s.insertNodeUnique(*nh)
	*nh = SetNode[K]{}

	return res
}

// InsertNodeHint is InsertNode with a position hint. The hint does not
// change where a unique key goes. A rejected node stays in nh.
func (s *Set[K, H]) InsertNodeHint(_ SetIterator[K], nh *SetNode[K]) SetIterator[K] {
	res := s.InsertNode(nh)
	if !res.Inserted {
		*nh = res.Node
	}

	return res.Position
}

// Merge moves every element of src whose key is not in s. The others stay in src.
func (s *Set[K, H]) Merge(src *Set[K, H]) {
	s.mergeFrom(&src.table, true)
}

// MergeMulti moves one element per key of src that is not in s.
func (s *Set[K, H]) MergeMulti(src *MultiSet[K, H]) {
	s.mergeFrom(&src.table, true)
}

// Swap exchanges the contents, hashers and allocators of both sets.
func (s *Set[K, H]) Swap(o *Set[K, H]) {
	s.swap(&o.table)
}

// Clone returns a copy using the same allocator.
func (s *Set[K, H]) Clone() *Set[K, H] {
	return &Set[K, H]{table: s.clone(nil)}
}

// CloneWithAllocator returns a copy whose nodes come from a.
func (s *Set[K, H]) CloneWithAllocator(a Allocator[K, struct{}]) *Set[K, H] {
	return &Set[K, H]{table: s.clone(a)}
}

// Move transfers the elements to a new set and leaves s empty.
func (s *Set[K, H]) Move() *Set[K, H] {
	return &Set[K, H]{table: s.move(nil)}
}

// MoveWithAllocator transfers the elements to a new set using a. With an
// allocator unequal to s's, elements are moved into freshly allocated nodes.
// s is left empty either way.
func (s *Set[K, H]) MoveWithAllocator(a Allocator[K, struct{}]) *Set[K, H] {
	return &Set[K, H]{table: s.move(a)}
}

// Assign replaces the elements of s with copies of src's.
func (s *Set[K, H]) Assign(src *Set[K, H]) {
	s.assign(&src.table)
}

// Equal reports whether both sets hold the same keys.
func (s *Set[K, H]) Equal(o *Set[K, H]) bool {
	return s.equal(&o.table, eqUnit)
}

// All yields every key in iteration order.
func (s *Set[K, H]) All() iter.Seq[K] {
	return s.Keys()
}

func eqUnit(struct{}, struct{}) bool { return true }
