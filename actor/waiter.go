package actor

import (
	"fmt"

	"restsim/sem"
	"restsim/shared"
)

// The Waiter relays between the groups and the chef through its single-slot
// mailbox. Each group produces two waiter requests per run: its own food
// order and the chef's food-ready handoff, so the waiter serves exactly
// twice as many requests as there are groups.
type Waiter struct {
	st   *shared.State
	sems *sem.Set
}

func NewWaiter(st *shared.State, sems *sem.Set) *Waiter {
	return &Waiter{st: st, sems: sems}
}

// Run serves 2N mailbox requests, then returns.
func (w *Waiter) Run() error {
	for n := 0; n < 2*w.st.Groups; n++ {
		if err := w.handleRequest(); err != nil {
			return err
		}
	}
	return nil
}

func (w *Waiter) handleRequest() error {
	if err := w.sems.WaiterRequest.Down(); err != nil {
		return fmt.Errorf("waiter: waiting for request: %w", err)
	}
	if err := w.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("waiter: entering critical section: %w", err)
	}

	req := w.st.WaiterRequest
	switch req.Kind {
	case shared.FoodRequest:
		return w.informChef(req.Group)
	case shared.FoodReady:
		return w.takeFoodToTable(req.Group)
	}
	w.sems.Mutex.Up()
	return fmt.Errorf("waiter: unexpected request %v", req.Kind)
}

// informChef passes the order on to the chef through the order-handoff
// field, waits for the chef to acknowledge it, and then acknowledges the
// order back to the group. Called with the mutex held.
func (w *Waiter) informChef(group int) error {
	w.st.WaiterStat = shared.WaiterInformChef
	if err := w.st.Persist("waiter"); err != nil {
		return fmt.Errorf("waiter: saving state: %w", err)
	}

	w.st.FoodGroup = group
	table := w.st.AssignedTable[group]

	if err := w.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("waiter: leaving critical section: %w", err)
	}

	if err := w.sems.WaitOrder.Up(); err != nil {
		return fmt.Errorf("waiter: signaling chef: %w", err)
	}
	if err := w.sems.OrderReceived.Down(); err != nil {
		return fmt.Errorf("waiter: waiting for chef ack: %w", err)
	}

	if err := w.sems.RequestReceived[table].Up(); err != nil {
		return fmt.Errorf("waiter: acknowledging order: %w", err)
	}
	if err := w.sems.WaiterRequestPossible.Up(); err != nil {
		return fmt.Errorf("waiter: releasing mailbox: %w", err)
	}
	return nil
}

// takeFoodToTable delivers cooked food to the ordering group's table.
// Called with the mutex held.
func (w *Waiter) takeFoodToTable(group int) error {
	w.st.WaiterStat = shared.WaiterTakeToTable
	if err := w.st.Persist("waiter"); err != nil {
		return fmt.Errorf("waiter: saving state: %w", err)
	}

	table := w.st.AssignedTable[group]

	if err := w.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("waiter: leaving critical section: %w", err)
	}

	if err := w.sems.FoodArrived[table].Up(); err != nil {
		return fmt.Errorf("waiter: delivering food: %w", err)
	}
	if err := w.sems.WaiterRequestPossible.Up(); err != nil {
		return fmt.Errorf("waiter: releasing mailbox: %w", err)
	}
	return nil
}
