//go:build unordered_debug

package unordered

// generation remembers the rehash count of the table an iterator was taken from.
type generation struct {
	src *uint64
	at  uint64
}

func stamp(src *uint64) generation {
	return generation{src: src, at: *src}
}

func (g generation) check() {
	if g.src != nil && *g.src != g.at {
		panic(ErrStaleIterator)
	}
}

const checkedIterators = true
