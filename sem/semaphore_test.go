package sem

import (
	"errors"
	"testing"
	"time"
)

func TestSemaphoreCounting(t *testing.T) {
	s := New(2)

	for i := 0; i < 2; i++ {
		if err := s.Down(); err != nil {
			t.Errorf("Did not expect an error. Got %v", err)
		}
	}

	ok, err := s.TryDown()
	if err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}
	if ok {
		t.Errorf("Expected TryDown to fail on a zero semaphore")
	}

	if err := s.Up(); err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}
	ok, err = s.TryDown()
	if err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}
	if !ok {
		t.Errorf("Expected TryDown to succeed after Up")
	}
}

func TestSemaphoreDownBlocksUntilUp(t *testing.T) {
	s := New(0)
	done := make(chan error)

	go func() {
		done <- s.Down()
	}()

	select {
	case err := <-done:
		t.Errorf("Down returned before Up: %v", err)
	case <-time.After(10 * time.Millisecond):
	}

	if err := s.Up(); err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Did not expect an error. Got %v", err)
		}
	case <-time.After(time.Second):
		t.Errorf("Down still blocked after Up")
	}
}

func TestSemaphoreClose(t *testing.T) {
	s := New(0)
	done := make(chan error)

	go func() {
		done <- s.Down()
	}()

	s.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("Expected ErrClosed. Got %v", err)
		}
	case <-time.After(time.Second):
		t.Errorf("Down still blocked after Close")
	}

	if err := s.Up(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Up on a closed semaphore. Got %v", err)
	}
	if err := s.Down(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Down on a closed semaphore. Got %v", err)
	}
}

func TestSetInitialCounts(t *testing.T) {
	set := NewSet(3, 2)

	if got := set.Mutex.Value(); got != 1 {
		t.Errorf("Expected mutex count 1. Got %v", got)
	}
	if got := set.WaiterRequestPossible.Value(); got != 1 {
		t.Errorf("Expected waiter mailbox gate count 1. Got %v", got)
	}
	if got := set.ReceptionistRequestPossible.Value(); got != 1 {
		t.Errorf("Expected receptionist mailbox gate count 1. Got %v", got)
	}

	if len(set.WaitForTable) != 3 {
		t.Errorf("Expected 3 per-group semaphores. Got %v", len(set.WaitForTable))
	}
	if len(set.RequestReceived) != 2 || len(set.FoodArrived) != 2 || len(set.TableDone) != 2 {
		t.Errorf("Expected 2 semaphores per table role")
	}
	for g, sm := range set.WaitForTable {
		if sm.Value() != 0 {
			t.Errorf("Expected waitForTable[%d] to start at 0", g)
		}
	}
}

func TestSetClose(t *testing.T) {
	set := NewSet(1, 1)
	set.Close()
	if err := set.FoodArrived[0].Down(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after Set.Close. Got %v", err)
	}
}
