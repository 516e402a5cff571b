package unordered

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher defines a hash function and an equivalence relation over keys of type K.
// Keys that are Equal must produce the same Hash.
type Hasher[K any] interface {
	Hash(K) uint64
	Equal(a, b K) bool
}

// TransparentHasher is a Hasher that also accepts lookup keys of type Q
// without building a K first. HashLookup(q) must equal Hash(k) whenever
// EqualLookup(q, k) holds.
type TransparentHasher[K, Q any] interface {
	Hasher[K]
	HashLookup(Q) uint64
	EqualLookup(q Q, k K) bool
}

var defaultSeed = maphash.MakeSeed()

// ComparableHasher hashes any comparable key with hash/maphash.
// The zero value uses a process-wide seed.
type ComparableHasher[K comparable] struct {
	seed maphash.Seed
}

// Returns a hasher with a fresh random seed.
func MakeComparableHasher[K comparable]() ComparableHasher[K] {
	return ComparableHasher[K]{seed: maphash.MakeSeed()}
}

func (h ComparableHasher[K]) Hash(k K) uint64 {
	seed := h.seed
	if seed == (maphash.Seed{}) {
		seed = defaultSeed
	}

	return maphash.Comparable(seed, k)
}

func (ComparableHasher[K]) Equal(a, b K) bool { return a == b }

// HashFunc is a plain hash function over comparable keys; equality is ==.
type HashFunc[K comparable] func(K) uint64

func (f HashFunc[K]) Hash(k K) uint64 { return f(k) }

func (HashFunc[K]) Equal(a, b K) bool { return a == b }

// StringHasher hashes strings with xxhash. It is transparent for []byte,
// so byte slices can be looked up in string keyed containers without
// allocating a string.
type StringHasher struct{}

func (StringHasher) Hash(k string) uint64 { return xxhash.Sum64String(k) }

func (StringHasher) Equal(a, b string) bool { return a == b }

func (StringHasher) HashLookup(q []byte) uint64 { return xxhash.Sum64(q) }

func (StringHasher) EqualLookup(q []byte, k string) bool {
	return len(q) == len(k) && string(q) == k
}

// BytesHasher hashes byte slices with xxhash. It is transparent for string.
type BytesHasher struct{}

func (BytesHasher) Hash(k []byte) uint64 { return xxhash.Sum64(k) }

func (BytesHasher) Equal(a, b []byte) bool { return string(a) == string(b) }

func (BytesHasher) HashLookup(q string) uint64 { return xxhash.Sum64String(q) }

func (BytesHasher) EqualLookup(q string, k []byte) bool { return q == string(k) }

