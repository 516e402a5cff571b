package unordered

// NodeHandle owns a node detached from a container by Extract. The element
// is kept as is and can be modified, including its key, before it is
// inserted into a compatible container with InsertNode.
type NodeHandle[K, V any] struct {
	n     *Node[K, V]
	alloc Allocator[K, V]
}

// Empty reports whether the handle owns no node.
func (h NodeHandle[K, V]) Empty() bool {
	return h.n == nil
}

func (h NodeHandle[K, V]) Key() K {
	return h.n.key
}

func (h NodeHandle[K, V]) Value() V {
	return h.n.value
}

// SetKey replaces the key. The hash is recomputed on insertion.
func (h NodeHandle[K, V]) SetKey(k K) {
	h.n.key = k
}

func (h NodeHandle[K, V]) SetValue(v V) {
	h.n.value = v
}

// Allocator returns the allocator the node came from.
func (h NodeHandle[K, V]) Allocator() Allocator[K, V] {
	return h.alloc
}

// Release hands the node back to its allocator and empties the handle.
func (h *NodeHandle[K, V]) Release() {
	if h.n == nil {
		return
	}

	var zero Node[K, V]
	*h.n = zero
	if h.alloc != nil {
		h.alloc.Deallocate(h.n)
	}

	*h = NodeHandle[K, V]{}
}

// InsertReturn is the result of inserting a node handle into a unique container.
// When Inserted is false, Node still owns the rejected node and Position
// points at the element that blocked it.
type InsertReturn[K, V any, A Access] struct {
	Position Iterator[K, V, A]
	Inserted bool
	Node     NodeHandle[K, V]
}

func (t *table[K, V, H, A]) insertNodeUnique(nh NodeHandle[K, V]) InsertReturn[K, V, A] {
	if nh.Empty() {
		return InsertReturn[K, V, A]{Position: t.End()}
	}

	// Hash before adopting so a panicking hasher leaves the handle intact.
	hash := t.hasher.Hash(nh.n.key)
	if idx, found := t.lookup(nh.n.key, hash); found != nil {
		return InsertReturn[K, V, A]{Position: t.iterAt(idx, found), Node: nh}
	}

	n := t.adopt(nh.n, nh.alloc)
	n.hash = hash

	return InsertReturn[K, V, A]{Position: t.linkFront(n), Inserted: true}
}

func (t *table[K, V, H, A]) insertNodeMulti(nh NodeHandle[K, V], hint *Node[K, V]) Iterator[K, V, A] {
	if nh.Empty() {
		return t.End()
	}

	hash := t.hasher.Hash(nh.n.key)

	var prev *Node[K, V]
	if hint != nil && hint.hash == hash && t.hasher.Equal(hint.key, nh.n.key) {
		prev = hint
	} else {
		prev = t.lastEqual(nh.n.key, hash)
	}

	n := t.adopt(nh.n, nh.alloc)
	n.hash = hash

	return t.linkAfter(prev, n)
}
