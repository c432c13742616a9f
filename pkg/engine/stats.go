package engine

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
)

// Stats collects occupancy statistics for every defined type. Files are
// walked concurrently, one goroutine per type; the first error aborts
// the collection.
//
// Returns:
//   - map[string]heap.Stats: per-type page and slot tallies
//   - error: non-nil if any file could not be read
func (e *Engine) Stats() (map[string]heap.Stats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := e.catalog.TypeNames()
	results := make(map[string]heap.Stats, len(names))

	var resultsMu sync.Mutex
	var g errgroup.Group
	for _, name := range names {
		name := name
		g.Go(func() error {
			schema, err := e.catalog.Lookup(name)
			if err != nil {
				return err
			}
			f, err := e.fileFor(schema)
			if err != nil {
				return err
			}
			stats, err := f.CollectStats()
			if err != nil {
				return err
			}

			resultsMu.Lock()
			results[name] = stats
			resultsMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TypeStats returns occupancy statistics for a single type.
func (e *Engine) TypeStats(typeName string) (heap.Stats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	schema, err := e.catalog.Lookup(typeName)
	if err != nil {
		return heap.Stats{}, err
	}
	f, err := e.fileFor(schema)
	if err != nil {
		return heap.Stats{}, err
	}
	return f.CollectStats()
}
