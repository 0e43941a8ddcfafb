package runner

import (
	"fmt"
	"sync"

	"restsim/shared"
)

// An Actor is one long-lived participant of the simulation. Run executes
// its fixed life cycle to completion and returns the first error it hits;
// there is no retry and no partial recovery.
type Actor interface {
	Run() error
}

// The Runner executes all actors of a run concurrently and publishes a
// stream of records: one StateRecord per persisted snapshot and one
// DoneRecord per finished actor.
type Runner struct {
	inRecordChan        chan Record
	outRecordChan       []chan<- Record
	subscribeRecordChan chan chan Record

	wg sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

// New creates a runner. recordChanBuffer specifies the size of the buffer
// between the actors and the record forwarding loop.
func New(recordChanBuffer int) *Runner {
	r := &Runner{
		inRecordChan:        make(chan Record, recordChanBuffer),
		outRecordChan:       make([]chan<- Record, 0),
		subscribeRecordChan: make(chan chan Record),
	}
	go r.forward()
	return r
}

// forward copies incoming records to every subscriber. New subscriptions
// are handled on the same loop so the slice needs no lock.
func (r *Runner) forward() {
	for {
		select {
		case rec, ok := <-r.inRecordChan:
			if !ok {
				for _, c := range r.outRecordChan {
					close(c)
				}
				return
			}
			for _, c := range r.outRecordChan {
				c <- rec
			}
		case c := <-r.subscribeRecordChan:
			r.outRecordChan = append(r.outRecordChan, c)
		}
	}
}

// Subscribe to a copy of the records published during the run.
//
// Records from the same actor arrive in the order they were produced.
// Subscribers must keep draining the channel until it is closed by Stop,
// otherwise the run stalls behind them.
func (r *Runner) Subscribe() <-chan Record {
	c := make(chan Record)
	r.subscribeRecordChan <- c
	return c
}

// Sink returns a shared.Sink that turns every persisted snapshot into a
// StateRecord on the record stream. It is meant to be combined with other
// sinks via statelog.Tee.
func (r *Runner) Sink() shared.Sink {
	return recordSink{r}
}

type recordSink struct {
	r *Runner
}

func (rs recordSink) Save(s shared.Snapshot) error {
	rs.r.inRecordChan <- StateRecord{actor: s.Author, State: s}
	return nil
}

// Go starts the actor under the given name. All actors should be started
// before Wait is called.
func (r *Runner) Go(name string, a Actor) {
	r.wg.Add(1)
	go func() {
		err := a.Run()
		if err != nil {
			r.mu.Lock()
			r.errs = append(r.errs, err)
			r.mu.Unlock()
		}
		r.inRecordChan <- DoneRecord{actor: name, Err: err}
		r.wg.Done()
	}()
}

// Wait blocks until every started actor has returned. If any actor failed,
// the collected errors are returned as one aggregate error.
func (r *Runner) Wait() error {
	r.wg.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) > 0 {
		return runError{errorSlice: r.errs}
	}
	return nil
}

// Stop closes the record stream. Must be called after Wait; records still
// buffered are delivered to subscribers before their channels close.
func (r *Runner) Stop() {
	close(r.inRecordChan)
}

// Aggregates the errors of the actors that failed during a run.
type runError struct {
	errorSlice []error
}

func (re runError) Error() string {
	return fmt.Sprintf("runner: %v actors failed. First error: %v", len(re.errorSlice), re.errorSlice[0])
}
