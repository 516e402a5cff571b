package unordered

import "github.com/pkg/errors"

var (
	// ErrKeyNotFound is returned by Map.At when the key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidLoadFactor is reported for a max load factor that is not a positive finite number.
	ErrInvalidLoadFactor = errors.New("max load factor must be positive and finite")

	// ErrInvalidGrowthPolicy is reported for an unknown growth policy name.
	ErrInvalidGrowthPolicy = errors.New("unknown growth policy")

	// ErrInvalidBucketCount is reported for a negative initial bucket count.
	ErrInvalidBucketCount = errors.New("bucket count must not be negative")

	// ErrStaleIterator is the panic value of checked builds when an iterator
	// is used after the table it points into was rehashed.
	ErrStaleIterator = errors.New("iterator used after rehash")
)
