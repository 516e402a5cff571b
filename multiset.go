package unordered

import "iter"

// MultiSet is a collection of keys that may repeat. Equal keys are kept
// next to each other in insertion order.
type MultiSet[K any, H Hasher[K]] struct {
	table[K, struct{}, H, Const]
}

func NewMultiSet[K comparable](opts ...Option) *MultiSet[K, ComparableHasher[K]] {
	return NewMultiSetWith[K](MakeComparableHasher[K](), opts...)
}

func NewMultiSetWith[K any, H Hasher[K]](h H, opts ...Option) *MultiSet[K, H] {
	var s MultiSet[K, H]
	s.init(h, opts)

	return &s
}

func MultiSetOf[K comparable](keys ...K) *MultiSet[K, ComparableHasher[K]] {
	s := NewMultiSet[K](WithBucketCount(len(keys)))
	s.InsertSlice(keys...)

	return s
}

func CollectMultiSet[K comparable](seq iter.Seq[K], opts ...Option) *MultiSet[K, ComparableHasher[K]] {
	s := NewMultiSet[K](opts...)
	s.InsertAll(seq)

	return s
}

// Insert adds k after any elements with an equal key.
func (s *MultiSet[K, H]) Insert(k K) SetIterator[K] {
	return s.insertMulti(k, struct{}{})
}

// InsertHint inserts k right after hint when hint holds an equal key.
func (s *MultiSet[K, H]) InsertHint(hint SetIterator[K], k K) SetIterator[K] {
	return s.insertMultiAt(hint.n, k, struct{}{})
}

// InsertAll inserts every key of seq and returns how many were inserted.
func (s *MultiSet[K, H]) InsertAll(seq iter.Seq[K]) int {
	inserted := 0
	for k := range seq {
		s.Insert(k)
		inserted++
	}

	return inserted
}

func (s *MultiSet[K, H]) InsertSlice(keys ...K) int {
	for _, k := range keys {
		s.Insert(k)
	}

	return len(keys)
}

func (s *MultiSet[K, H]) Emplace(k K) SetIterator[K] {
	return s.insertMulti(k, struct{}{})
}

func (s *MultiSet[K, H]) EmplaceHint(hint SetIterator[K], k K) SetIterator[K] {
	return s.insertMultiAt(hint.n, k, struct{}{})
}

func (s *MultiSet[K, H]) Extract(it SetIterator[K]) SetNode[K] {
	return s.extract(it)
}

// ExtractKey unlinks the first element with key k.
func (s *MultiSet[K, H]) ExtractKey(k K) SetNode[K] {
	return s.extractKey(k)
}

// InsertNode links the node owned by nh and empties nh.
func (s *MultiSet[K, H]) InsertNode(nh *SetNode[K]) SetIterator[K] {
	it := s.insertNodeMulti(*nh, nil)
	*nh = SetNode[K]{}

	return it
}

// InsertNodeHint is InsertNode with a position hint.
func (s *MultiSet[K, H]) InsertNodeHint(hint SetIterator[K], nh *SetNode[K]) SetIterator[K] {
	it := s.insertNodeMulti(*nh, hint.n)
	*nh = SetNode[K]{}

	return it
}

// Merge moves every element of src into s.
func (s *MultiSet[K, H]) Merge(src *MultiSet[K, H]) {
	s.mergeFrom(&src.table, false)
}

// MergeUnique moves every element of src into s.
func (s *MultiSet[K, H]) MergeUnique(src *Set[K, H]) {
	s.mergeFrom(&src.table, false)
}

func (s *MultiSet[K, H]) Swap(o *MultiSet[K, H]) {
	s.swap(&o.table)
}

func (s *MultiSet[K, H]) Clone() *MultiSet[K, H] {
	return &MultiSet[K, H]{table: s.clone(nil)}
}

func (s *MultiSet[K, H]) CloneWithAllocator(a Allocator[K, struct{}]) *MultiSet[K, H] {
	return &MultiSet[K, H]{table: s.clone(a)}
}

func (s *MultiSet[K, H]) Move() *MultiSet[K, H] {
	return &MultiSet[K, H]{table: s.move(nil)}
}

func (s *MultiSet[K, H]) MoveWithAllocator(a Allocator[K, struct{}]) *MultiSet[K, H] {
	return &MultiSet[K, H]{table: s.move(a)}
}

func (s *MultiSet[K, H]) Assign(src *MultiSet[K, H]) {
	s.assign(&src.table)
}

// Equal reports whether both multisets hold the same keys with the same multiplicities.
func (s *MultiSet[K, H]) Equal(o *MultiSet[K, H]) bool {
	return s.equal(&o.table, eqUnit)
}

func (s *MultiSet[K, H]) All() iter.Seq[K] {
	return s.Keys()
}
