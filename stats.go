package unordered

// Stats describes the layout of a container at one point in time.
type Stats struct {
	Size          int
	BucketCount   int
	EmptyBuckets  int
	LongestChain  int
	LoadFactor    float32
	MaxLoadFactor float32
	Rehashes      int
}
