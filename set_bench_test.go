package unordered

import (
	"strconv"
	"testing"
	"unsafe"
)

var sizes = []int{
	1 << 10,
	1 << 16,
	1 << 20,
}

func BenchmarkSetContains_Miss(b *testing.B) {
	b.Run("variant=stdSet", func(b *testing.B) {
		b.Run("K=string", benchSimulateLoadSet(benchmarkStdSetContainsMiss[string], genKeys[string]))
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkStdSetContainsMiss[uint64], genKeys[uint64]))
	})

	b.Run("variant=prime", func(b *testing.B) {
		b.Run("K=string", benchSimulateLoadSet(benchmarkSetContainsMiss[string](PrimeGrowth), genKeys[string]))
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkSetContainsMiss[uint64](PrimeGrowth), genKeys[uint64]))
	})

	b.Run("variant=pow2", func(b *testing.B) {
		b.Run("K=string", benchSimulateLoadSet(benchmarkSetContainsMiss[string](PowerOfTwoGrowth), genKeys[string]))
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkSetContainsMiss[uint64](PowerOfTwoGrowth), genKeys[uint64]))
	})
}

func BenchmarkSetContains_Hit(b *testing.B) {
	b.Run("variant=stdSet", func(b *testing.B) {
		b.Run("K=string", benchSimulateLoadSet(benchmarkStdSetContainsHit[string], genKeys[string]))
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkStdSetContainsHit[uint64], genKeys[uint64]))
	})

	b.Run("variant=prime", func(b *testing.B) {
		b.Run("K=string", benchSimulateLoadSet(benchmarkSetContainsHit[string](PrimeGrowth), genKeys[string]))
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkSetContainsHit[uint64](PrimeGrowth), genKeys[uint64]))
	})

	b.Run("variant=pow2", func(b *testing.B) {
		b.Run("K=string", benchSimulateLoadSet(benchmarkSetContainsHit[string](PowerOfTwoGrowth), genKeys[string]))
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkSetContainsHit[uint64](PowerOfTwoGrowth), genKeys[uint64]))
	})
}

func BenchmarkSetInsert(b *testing.B) {
	b.Run("variant=stdSet", func(b *testing.B) {
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkStdSetInsert[uint64], genKeys[uint64]))
	})

	b.Run("variant=heap", func(b *testing.B) {
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkSetInsert[uint64](false), genKeys[uint64]))
	})

	b.Run("variant=pool", func(b *testing.B) {
		b.Run("K=uint64", benchSimulateLoadSet(benchmarkSetInsert[uint64](true), genKeys[uint64]))
	})
}

func benchmarkStdSetContainsMiss[K comparable](
	b *testing.B,
	capacity int,
	genKeys func(start, end int) []K,
) {
	m := make(map[K]struct{}, capacity)
	keys := genKeys(0, capacity)
	misses := genKeys(-capacity, 0)

	for _, k := range keys {
		m[k] = struct{}{}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[misses[i%len(misses)]]
	}
}

func benchmarkSetContainsMiss[K comparable](g GrowthPolicy) func(*testing.B, int, func(start, end int) []K) {
	return func(b *testing.B, capacity int, genKeys func(start, end int) []K) {
		s := NewSet[K](WithBucketCount(capacity), WithGrowth(g))
		keys := genKeys(0, capacity)
		misses := genKeys(-capacity, 0)

		s.InsertSlice(keys...)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = s.Contains(misses[i%len(misses)])
		}
	}
}

func benchmarkStdSetContainsHit[K comparable](
	b *testing.B,
	capacity int,
	genKeys func(start, end int) []K,
) {
	m := make(map[K]struct{}, capacity)
	keys := genKeys(0, capacity)
	for _, k := range keys {
		m[k] = struct{}{}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i%len(keys)]]
	}
}

func benchmarkSetContainsHit[K comparable](g GrowthPolicy) func(*testing.B, int, func(start, end int) []K) {
	return func(b *testing.B, capacity int, genKeys func(start, end int) []K) {
		s := NewSet[K](WithBucketCount(capacity), WithGrowth(g))
		keys := genKeys(0, capacity)

		s.InsertSlice(keys...)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = s.Contains(keys[i%len(keys)])
		}
	}
}

func benchmarkStdSetInsert[K comparable](
	b *testing.B,
	capacity int,
	genKeys func(start, end int) []K,
) {
	keys := genKeys(0, capacity)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m := make(map[K]struct{})
		for _, key := range keys {
			m[key] = struct{}{}
		}
	}
}

func benchmarkSetInsert[K comparable](pooled bool) func(*testing.B, int, func(start, end int) []K) {
	return func(b *testing.B, capacity int, genKeys func(start, end int) []K) {
		keys := genKeys(0, capacity)

		var opts []Option
		if pooled {
			opts = append(opts, WithAllocator[K, struct{}](NewPoolAllocator[K, struct{}](capacity)))
		}
		s := NewSet[K](opts...)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			s.Clear()
			s.InsertSlice(keys...)
		}
	}
}

func genKeys[K comparable](start, end int) []K {
	var k K
	switch any(k).(type) {
	case uint32:
		keys := make([]uint32, end-start)
		for i := range keys {
			keys[i] = uint32(start + i)
		}
		return unsafeConvertSlice[K](keys)
	case uint64:
		keys := make([]uint64, end-start)
		for i := range keys {
			keys[i] = uint64(start + i)
		}
		return unsafeConvertSlice[K](keys)
	case string:
		keys := make([]string, end-start)
		for i := range keys {
			keys[i] = strconv.Itoa(start + i)
		}
		return unsafeConvertSlice[K](keys)
	default:
		panic("not reached")
	}
}

//go:nocheckptr
func unsafeConvertSlice[Dest any, Src any](s []Src) []Dest {
	return unsafe.Slice((*Dest)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

func benchSimulateLoadSet[K comparable](
	benchFunc func(b *testing.B, capacity int, keysFunc func(start, end int) []K),
	keysFunc func(start, end int) []K,
) func(b *testing.B) {
	return func(b *testing.B) {
		for _, size := range sizes {
			b.Run("capacity="+strconv.Itoa(size), func(b *testing.B) {
				benchFunc(b, size, keysFunc)
			})
		}
	}
}
