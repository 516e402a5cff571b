package unordered

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultMaxLoadFactor = 1.0

// Config holds the tunables of a table. It can be decoded from TOML:
//
//	initial_buckets = 64
//	max_load_factor = 0.75
//	growth = "power-of-two"
type Config struct {
	InitialBuckets int          `toml:"initial_buckets"`
	MaxLoadFactor  float32      `toml:"max_load_factor"`
	Growth         GrowthPolicy `toml:"growth"`
}

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		InitialBuckets: 1,
		MaxLoadFactor:  defaultMaxLoadFactor,
		Growth:         PrimeGrowth,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.InitialBuckets < 0 {
		return errors.Wrapf(ErrInvalidBucketCount, "initial_buckets = %d", c.InitialBuckets)
	}
	if !validLoadFactor(c.MaxLoadFactor) {
		return errors.Wrapf(ErrInvalidLoadFactor, "max_load_factor = %v", c.MaxLoadFactor)
	}
	if c.Growth > PowerOfTwoGrowth {
		return errors.Wrapf(ErrInvalidGrowthPolicy, "growth = %d", uint8(c.Growth))
	}

	return nil
}

// ParseConfig decodes a TOML document over DefaultConfig and validates it.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode table config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads a TOML file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load table config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessage(err, path)
	}

	return cfg, nil
}

func validLoadFactor(f float32) bool {
	return f > 0 && !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}

type settings struct {
	Config

	logger    *zap.Logger
	allocator any
}

// Option configures a container at construction time.
type Option func(s *settings)

// Sets the initial number of buckets. The count is rounded up by the growth policy.
func WithBucketCount(n int) Option {
	return func(s *settings) {
		s.InitialBuckets = n
	}
}

// Sets the max load factor. It panics at construction if f is not positive and finite.
func WithMaxLoadFactor(f float32) Option {
	return func(s *settings) {
		s.MaxLoadFactor = f
	}
}

// Sets the bucket count growth policy.
func WithGrowth(g GrowthPolicy) Option {
	return func(s *settings) {
		s.Growth = g
	}
}

// Applies every field of a Config at once.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.Config = cfg
	}
}

// Sets the logger receiving rehash events at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// Sets the node allocator. The type arguments must match the container's
// key and value types (struct{} for sets), otherwise construction panics.
func WithAllocator[K, V any](a Allocator[K, V]) Option {
	return func(s *settings) {
		s.allocator = a
	}
}

func buildSettings[K, V any](opts []Option) (settings, Allocator[K, V]) {
	s := settings{Config: DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}

	if err := s.Validate(); err != nil {
		panic(err)
	}

	var alloc Allocator[K, V] = HeapAllocator[K, V]{}
	if s.allocator != nil {
		a, ok := s.allocator.(Allocator[K, V])
		if !ok {
			panic(fmt.Sprintf("unordered: allocator %T does not allocate %T", s.allocator, (*Node[K, V])(nil)))
		}
		alloc = a
	}

	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	return s, alloc
}
