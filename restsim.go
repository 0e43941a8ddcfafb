// Package restsim simulates a restaurant service pipeline of independent
// concurrent actors: customer groups, a chef, a waiter, and a receptionist.
// The actors coordinate exclusively through a shared memory region guarded
// by a semaphore set, with no other communication channel. Every status
// change is persisted to a run log, and the checking package verifies the
// protocol properties over that log after the run.
package restsim

import (
	"fmt"
	"time"

	"restsim/actor"
	"restsim/checking"
	"restsim/runner"
	"restsim/sem"
	"restsim/shared"
	"restsim/statelog"
)

const recordChanBuffer = 1000

// A Simulation is a validated configuration, ready to be started.
type Simulation struct {
	cfg   shared.Config
	sinks []shared.Sink
}

// Prepare builds a Simulation from the given options and validates it.
func Prepare(opts ...Option) (*Simulation, error) {
	s := &Simulation{
		cfg: shared.Config{
			Groups:   3,
			Tables:   2,
			StartDev: 2 * time.Millisecond,
			EatDev:   2 * time.Millisecond,
			CookMin:  100 * time.Microsecond,
			CookMax:  10 * time.Millisecond,
			Seed:     time.Now().UnixNano(),
		},
	}
	for _, opt := range opts {
		opt.apply(s)
	}

	cfg := &s.cfg
	if cfg.Groups < 1 {
		return nil, fmt.Errorf("restsim: need at least one group, got %d", cfg.Groups)
	}
	if cfg.Tables < 1 {
		return nil, fmt.Errorf("restsim: need at least one table, got %d", cfg.Tables)
	}
	if cfg.StartTime == nil {
		cfg.StartTime = uniformTimes(cfg.Groups, 5*time.Millisecond)
	}
	if cfg.EatTime == nil {
		cfg.EatTime = uniformTimes(cfg.Groups, 10*time.Millisecond)
	}
	if len(cfg.StartTime) != cfg.Groups {
		return nil, fmt.Errorf("restsim: %d start times for %d groups", len(cfg.StartTime), cfg.Groups)
	}
	if len(cfg.EatTime) != cfg.Groups {
		return nil, fmt.Errorf("restsim: %d eat times for %d groups", len(cfg.EatTime), cfg.Groups)
	}
	if cfg.CookMin < 0 || cfg.CookMax < 0 {
		return nil, fmt.Errorf("restsim: negative cook time")
	}
	return s, nil
}

func uniformTimes(n int, d time.Duration) []time.Duration {
	times := make([]time.Duration, n)
	for i := range times {
		times[i] = d
	}
	return times
}

// Start creates the shared region and the semaphore set, connects every
// actor to them, and starts all actors. The returned Run gives access to
// the record stream and the collected snapshots.
func (s *Simulation) Start() (*Run, error) {
	collector := statelog.NewCollector()
	rn := runner.New(recordChanBuffer)

	sinks := statelog.Tee{collector, rn.Sink()}
	sinks = append(sinks, s.sinks...)

	st := shared.NewState(s.cfg, sinks)
	sems := sem.NewSet(s.cfg.Groups, s.cfg.Tables)

	run := &Run{
		cfg:       s.cfg,
		runner:    rn,
		collector: collector,
		sems:      sems,
	}

	groups := make([]*actor.Group, s.cfg.Groups)
	for id := range groups {
		g, err := actor.NewGroup(id, st, sems)
		if err != nil {
			return nil, err
		}
		groups[id] = g
	}

	rn.Go("chef", actor.NewChef(st, sems))
	rn.Go("waiter", actor.NewWaiter(st, sems))
	rn.Go("receptionist", actor.NewReceptionist(st, sems))
	for id, g := range groups {
		rn.Go(fmt.Sprintf("group%d", id), g)
	}
	return run, nil
}

// Run executes the simulation to completion and checks the default
// predicates against the recorded run.
func (s *Simulation) Run() (checking.CheckerResponse, error) {
	run, err := s.Start()
	if err != nil {
		return nil, err
	}
	if err := run.Wait(); err != nil {
		return nil, err
	}
	return run.Check(), nil
}

// A Run is one live execution of the simulation.
type Run struct {
	cfg       shared.Config
	runner    *runner.Runner
	collector *statelog.Collector
	sems      *sem.Set
}

// Subscribe to the records published while the run executes. Must be
// drained until the channel closes.
func (r *Run) Subscribe() <-chan runner.Record {
	return r.runner.Subscribe()
}

// Wait blocks until every actor has finished and closes the record stream.
// It returns the aggregated actor errors, if any.
func (r *Run) Wait() error {
	err := r.runner.Wait()
	r.runner.Stop()
	return err
}

// Abort fails every semaphore of the run. All blocked actors return with
// an error; Wait reports them. This is the only way to get a stalled run
// (for example after an actor crash) unstuck.
func (r *Run) Abort() {
	r.sems.Close()
}

// Snapshots returns the persisted records collected so far, in order.
func (r *Run) Snapshots() []shared.Snapshot {
	return r.collector.Run()
}

// Check evaluates predicates against the collected run. Called with no
// arguments it checks the default protocol properties.
func (r *Run) Check(preds ...checking.Predicate) checking.CheckerResponse {
	if len(preds) == 0 {
		preds = DefaultPredicates(r.cfg.Tables)
	}
	return checking.NewPredicateChecker(preds...).Check(r.Snapshots())
}

// DefaultPredicates is the catalogue of protocol properties every
// successful run must satisfy.
func DefaultPredicates(tables int) []checking.Predicate {
	return []checking.Predicate{
		checking.SequenceNumbers(),
		checking.SingleTransition(),
		checking.GroupsAdvanceInOrder(),
		checking.ChefCycles(),
		checking.ChefServesEveryGroup(),
		checking.NoCrossDelivery(),
		checking.RequestsOnce(),
		checking.AllGroupsLeave(),
		checking.TablesExclusive(tables),
	}
}
