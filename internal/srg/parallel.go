package srg

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// minPartition keeps tiny inputs from being split into goroutine-per-line work.
const minPartition = 256

// defaultWorkers is used when no worker count is configured.
func defaultWorkers() int { return runtime.GOMAXPROCS(0) }

// forEachPartition splits [0, n) into contiguous partitions and runs fn on
// each, at most workers at a time. The first error is returned.
func forEachPartition(n, workers int, fn func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := max(minPartition, (n+workers*4-1)/(workers*4))

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}

// located pairs a parsed value with the input line it came from, so merges
// from concurrent partitions stay deterministic.
type located[V any] struct {
	value V
	line  int
}

// arenaMap is an insert-only map shared by concurrent partitions. Each
// partition fills a local map and merges it once; on key collision the
// entry from the earliest line wins.
type arenaMap[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]located[V]
}

func newArenaMap[K comparable, V any](capacity int) *arenaMap[K, V] {
	return &arenaMap[K, V]{m: make(map[K]located[V], capacity)}
}

func (a *arenaMap[K, V]) merge(local map[K]located[V]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for k, v := range local {
		if prev, ok := a.m[k]; ok && prev.line < v.line {
			continue
		}
		a.m[k] = v
	}
}

// freeze returns the merged contents. The arena must not be used afterwards.
func (a *arenaMap[K, V]) freeze() map[K]V {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[K]V, len(a.m))
	for k, v := range a.m {
		out[k] = v.value
	}
	a.m = nil
	return out
}
