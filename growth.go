package unordered

import (
	"strings"

	"github.com/pkg/errors"
)

// GrowthPolicy decides which bucket counts a table may have.
type GrowthPolicy uint8

const (
	// PrimeGrowth rounds bucket counts up to a prime.
	PrimeGrowth GrowthPolicy = iota
	// PowerOfTwoGrowth rounds bucket counts up to a power of two and
	// maps hashes to buckets with a mask.
	PowerOfTwoGrowth
)

const growthFactor = 2

func (g GrowthPolicy) String() string {
	switch g {
	case PrimeGrowth:
		return "prime"
	case PowerOfTwoGrowth:
		return "power-of-two"
	default:
		return "unknown"
	}
}

func (g GrowthPolicy) MarshalText() ([]byte, error) {
	if g > PowerOfTwoGrowth {
		return nil, errors.Wrapf(ErrInvalidGrowthPolicy, "policy %d", uint8(g))
	}

	return []byte(g.String()), nil
}

func (g *GrowthPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "prime":
		*g = PrimeGrowth
	case "power-of-two", "pow2":
		*g = PowerOfTwoGrowth
	default:
		return errors.Wrapf(ErrInvalidGrowthPolicy, "%q", text)
	}

	return nil
}

// roundUp returns the smallest bucket count allowed by the policy that is >= n.
// A table never has fewer than one bucket.
func (g GrowthPolicy) roundUp(n int) int {
	if n <= 1 {
		return 1
	}

	switch g {
	case PowerOfTwoGrowth:
		return int(NextPowerOf2(uint64(n)))
	default:
		return int(NextPrime(uint64(n)))
	}
}

// index maps a hash onto one of n buckets. Both policies compute hash mod n.
func (g GrowthPolicy) index(hash uint64, n int) int {
	if g == PowerOfTwoGrowth {
		return int(hash & uint64(n-1))
	}

	return int(hash % uint64(n))
}
