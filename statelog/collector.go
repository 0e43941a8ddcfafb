package statelog

import (
	"sync"

	"restsim/shared"

	"golang.org/x/exp/slices"
)

// A Collector keeps every persisted snapshot of a run in memory.
//
// The mutex semaphore serializes the Save calls of the actors, but the
// collector is read while the run is still going (by the runner's record
// stream and by tests), so it carries its own lock.
type Collector struct {
	mu  sync.Mutex
	run []shared.Snapshot
}

func NewCollector() *Collector {
	return &Collector{run: make([]shared.Snapshot, 0)}
}

func (c *Collector) Save(s shared.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.run = append(c.run, s)
	return nil
}

// Run returns a copy of the snapshots collected so far, in persistence
// order.
func (c *Collector) Run() []shared.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.run)
}

// Len returns the number of snapshots collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.run)
}

// Tee duplicates every snapshot to each of the given sinks, stopping at the
// first sink error.
type Tee []shared.Sink

func (t Tee) Save(s shared.Snapshot) error {
	for _, sink := range t {
		if err := sink.Save(s); err != nil {
			return err
		}
	}
	return nil
}
