package sem

import (
	"errors"
	"sync"
)

// ErrClosed is returned by operations on a semaphore that has been closed.
// Closing is how the surrounding harness turns a stalled simulation into
// failing actors: every pending and future operation returns this error and
// the actors abort their run loops.
var ErrClosed = errors.New("sem: semaphore closed")

// A Semaphore is a counting semaphore with blocking Down and non-blocking Up.
//
// Every operation returns an error so that actors can treat a failing
// primitive as fatal and stop, instead of recovering locally.
type Semaphore struct {
	mu     sync.Mutex
	cond   *sync.Cond
	count  int
	closed bool
}

// Create a new semaphore with the given initial count.
//
// A binary semaphore used as a mutex is created with count 1.
// Rendezvous semaphores are created with count 0.
func New(count int) *Semaphore {
	if count < 0 {
		panic("sem: negative initial count")
	}
	s := &Semaphore{count: count}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Down decrements the semaphore, blocking while the count is zero.
func (s *Semaphore) Down() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.count == 0 && !s.closed {
		s.cond.Wait()
	}
	if s.closed {
		return ErrClosed
	}
	s.count--
	return nil
}

// TryDown attempts to decrement the semaphore without blocking.
// Returns true if the count was decremented, false if it was zero.
func (s *Semaphore) TryDown() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if s.count == 0 {
		return false, nil
	}
	s.count--
	return true, nil
}

// Up increments the semaphore, waking one blocked Down if there is one.
func (s *Semaphore) Up() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.count++
	s.cond.Signal()
	return nil
}

// Close fails the semaphore. All blocked and future operations return
// ErrClosed. Closing an already closed semaphore is a no-op.
func (s *Semaphore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cond.Broadcast()
}

// Value returns the current count. It is only a snapshot and is stale the
// moment it is returned; used by tests and by the mailbox-discipline checks.
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
