// Package workload drives containers with random operations and checks
// them against a Go map after every step.
package workload

import (
	"context"
	"iter"
	"math/rand/v2"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/homier/unordered"
)

// ErrViolation is returned when a container disagrees with the reference map
// or breaks its load factor bound.
var ErrViolation = errors.New("container invariant violated")

const ctxCheckInterval = 1024

// Result summarises one worker run.
type Result struct {
	Worker  int
	Inserts int
	Finds   int
	Erases  int
	Stats   unordered.Stats
}

// table is the part of the container API the workload reads.
type table interface {
	Len() int
	Count(k int) int
	EraseKey(k int) int
	LoadFactor() float32
	MaxLoadFactor() float32
	Stats() unordered.Stats
	Keys() iter.Seq[int]
}

type worker struct {
	id     int
	cfg    Config
	rng    *rand.Rand
	ref    map[int]int
	table  table
	insert func(k, v int) bool
	res    Result
}

// Run executes f.Workload.Workers independent workers on an ants pool.
// Each worker owns its container; containers are never shared.
func Run(ctx context.Context, f File, logger *zap.Logger) ([]Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := ants.NewPool(f.Workload.Workers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]Result, f.Workload.Workers)
		errs    error
	)

	for i := range f.Workload.Workers {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			w := newWorker(i, f, logger)
			res, err := w.run(ctx)
			results[i] = res

			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, errors.WithMessagef(err, "worker %d", i))
				mu.Unlock()
				return
			}

			logger.Info("worker done",
				zap.Int("worker", i),
				zap.Int("inserts", res.Inserts),
				zap.Int("finds", res.Finds),
				zap.Int("erases", res.Erases),
				zap.Int("size", res.Stats.Size),
				zap.Int("buckets", res.Stats.BucketCount),
				zap.Int("rehashes", res.Stats.Rehashes),
				zap.Int("longest_chain", res.Stats.LongestChain),
			)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = multierr.Append(errs, errors.Wrapf(submitErr, "submit worker %d", i))
			mu.Unlock()
		}
	}

	wg.Wait()

	return results, errs
}

func newWorker(id int, f File, logger *zap.Logger) *worker {
	opts := []unordered.Option{
		unordered.WithConfig(f.Table),
		unordered.WithLogger(logger.Named("table").With(zap.Int("worker", id))),
	}

	w := &worker{
		id:  id,
		cfg: f.Workload,
		rng: rand.New(rand.NewPCG(f.Workload.Seed, uint64(id))),
		ref: make(map[int]int),
		res: Result{Worker: id},
	}

	if f.Workload.Multi {
		m := unordered.NewMultiMap[int, int](opts...)
		w.table = m
		w.insert = func(k, v int) bool {
			m.Insert(k, v)
			return true
		}
	} else {
		m := unordered.NewMap[int, int](opts...)
		w.table = m
		w.insert = func(k, v int) bool {
			_, ok := m.Insert(k, v)
			return ok
		}
	}

	return w
}

func (w *worker) run(ctx context.Context) (Result, error) {
	for op := range w.cfg.Ops {
		if op%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return w.finish(), err
			}
		}

		k := w.rng.IntN(w.cfg.KeySpace)

		var err error
		switch r := w.rng.IntN(10); {
		case r < 5:
			err = w.doInsert(k, op)
		case r < 8:
			err = w.doFind(k)
		default:
			err = w.doErase(k)
		}
		if err != nil {
			return w.finish(), errors.WithMessagef(err, "op %d", op)
		}
	}

	return w.finish(), w.verify()
}

func (w *worker) doInsert(k, v int) error {
	w.res.Inserts++

	inserted := w.insert(k, v)
	want := w.cfg.Multi || w.ref[k] == 0
	if inserted != want {
		return errors.Wrapf(ErrViolation, "insert %d reported %v, want %v", k, inserted, want)
	}
	if inserted {
		w.ref[k]++
	}

	if lf, mlf := w.table.LoadFactor(), w.table.MaxLoadFactor(); lf > mlf {
		return errors.Wrapf(ErrViolation, "load factor %v above %v after insert", lf, mlf)
	}

	return nil
}

func (w *worker) doFind(k int) error {
	w.res.Finds++

	if got, want := w.table.Count(k), w.ref[k]; got != want {
		return errors.Wrapf(ErrViolation, "count(%d) = %d, want %d", k, got, want)
	}

	return nil
}

func (w *worker) doErase(k int) error {
	w.res.Erases++

	if got, want := w.table.EraseKey(k), w.ref[k]; got != want {
		return errors.Wrapf(ErrViolation, "erase(%d) removed %d, want %d", k, got, want)
	}
	delete(w.ref, k)

	return nil
}

// verify checks that a full traversal visits exactly the reference elements.
func (w *worker) verify() error {
	want := 0
	for _, c := range w.ref {
		want += c
	}

	seen := make(map[int]int, len(w.ref))
	visited := 0
	for k := range w.table.Keys() {
		seen[k]++
		visited++
	}

	if visited != w.table.Len() || visited != want {
		return errors.Wrapf(ErrViolation, "traversal visited %d, len %d, want %d", visited, w.table.Len(), want)
	}
	for k, c := range w.ref {
		if seen[k] != c {
			return errors.Wrapf(ErrViolation, "key %d visited %d times, want %d", k, seen[k], c)
		}
	}

	return nil
}

func (w *worker) finish() Result {
	w.res.Stats = w.table.Stats()
	return w.res
}
