package unordered

import (
	"math"
	"math/bits"
	"unsafe"
)

// Returns the next power of 2 for the given value `v`.
func NextPowerOf2(v uint64) uint64 {
	if v <= 1 {
		return 1
	}

	return uint64(1) << min(bits.Len64(v-1), 63)
}

// Returns the next prime greater than or equal to `v`. Values below 2 yield 2.
func NextPrime(v uint64) uint64 {
	if v <= 2 {
		return 2
	}
	if v%2 == 0 {
		v++
	}
	for !isPrime(v) {
		v += 2
	}

	return v
}

func isPrime(v uint64) bool {
	switch {
	case v < 2:
		return false
	case v < 4:
		return true
	case v%2 == 0 || v%3 == 0:
		return false
	}

	for i := uint64(5); i <= v/i; i += 6 {
		if v%i == 0 || v%(i+2) == 0 {
			return false
		}
	}

	return true
}

// Estimates how many nodes fit in the given memory size in bytes.
func NodesFromSize[K, V any](size uintptr) int {
	return int(size / unsafe.Sizeof(Node[K, V]{}))
}

func maxNodes[K, V any]() int {
	return NodesFromSize[K, V](math.MaxInt)
}

func maxBuckets() int {
	return int(math.MaxInt / unsafe.Sizeof(uintptr(0)))
}

// minBucketsFor returns the smallest bucket count able to hold size
// elements without exceeding mlf.
func minBucketsFor(size int, mlf float32) int {
	if size == 0 {
		return 1
	}

	n := int(math.Ceil(float64(size) / float64(mlf)))
	for float64(size) > float64(n)*float64(mlf) {
		n++
	}

	return max(n, 1)
}
