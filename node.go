package unordered

// Node is a chain cell owned by exactly one bucket. It is exported so
// custom allocators can hand them out; its fields are private to the table.
type Node[K, V any] struct {
	next  *Node[K, V]
	hash  uint64
	key   K
	value V
}

// Allocator hands out nodes to a table and takes them back on erase.
// Allocators are compared with ==, so implementations must be comparable
// (pointers or comparable structs).
type Allocator[K, V any] interface {
	Allocate() *Node[K, V]
	Deallocate(*Node[K, V])
}

// HeapAllocator allocates every node on the Go heap and leaves reclamation to the GC.
// All HeapAllocator values are equal.
type HeapAllocator[K, V any] struct{}

func (HeapAllocator[K, V]) Allocate() *Node[K, V] { return new(Node[K, V]) }

func (HeapAllocator[K, V]) Deallocate(*Node[K, V]) {}

// PoolAllocator keeps released nodes on a free list and reuses them.
// It is not safe for concurrent use; tables sharing one must be used
// from a single goroutine.
type PoolAllocator[K, V any] struct {
	free  *Node[K, V]
	limit int
	held  int

	allocated int
	reused    int
	released  int
}

// Returns a pool keeping at most limit released nodes. A non-positive limit means no bound.
func NewPoolAllocator[K, V any](limit int) *PoolAllocator[K, V] {
	return &PoolAllocator[K, V]{limit: limit}
}

func (p *PoolAllocator[K, V]) Allocate() *Node[K, V] {
	p.allocated++
	if n := p.free; n != nil {
		p.free = n.next
		p.held--
		p.reused++
		n.next = nil

		return n
	}

	return new(Node[K, V])
}

func (p *PoolAllocator[K, V]) Deallocate(n *Node[K, V]) {
	p.released++
	if p.limit > 0 && p.held >= p.limit {
		return
	}

	*n = Node[K, V]{next: p.free}
	p.free = n
	p.held++
}

// Live returns the number of nodes handed out and not yet released.
func (p *PoolAllocator[K, V]) Live() int {
	return p.allocated - p.released
}

// Reused returns how many allocations were served from the free list.
func (p *PoolAllocator[K, V]) Reused() int {
	return p.reused
}

// Held returns the current length of the free list.
func (p *PoolAllocator[K, V]) Held() int {
	return p.held
}
