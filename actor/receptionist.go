package actor

import (
	"fmt"

	"restsim/sem"
	"restsim/shared"
)

// The Receptionist seats arriving groups and processes their bills. It owns
// the table pool: with fewer tables than groups, late arrivals queue at
// reception until a checkout frees a table. The pool and the waiting list
// are local to the receptionist; only the resulting assignments are written
// to shared state.
type Receptionist struct {
	st   *shared.State
	sems *sem.Set

	freeTables []int
	waiting    []int
}

func NewReceptionist(st *shared.State, sems *sem.Set) *Receptionist {
	free := make([]int, st.Tables)
	for t := range free {
		free[t] = t
	}
	return &Receptionist{
		st:         st,
		sems:       sems,
		freeTables: free,
		waiting:    make([]int, 0, st.Groups),
	}
}

// Run serves 2N mailbox requests (one table request and one bill request
// per group), then returns.
func (r *Receptionist) Run() error {
	for n := 0; n < 2*r.st.Groups; n++ {
		if err := r.handleRequest(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Receptionist) handleRequest() error {
	if err := r.sems.ReceptionistRequest.Down(); err != nil {
		return fmt.Errorf("receptionist: waiting for request: %w", err)
	}
	if err := r.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("receptionist: entering critical section: %w", err)
	}

	req := r.st.ReceptionistRequest
	switch req.Kind {
	case shared.TableRequest:
		return r.assignTable(req.Group)
	case shared.BillRequest:
		return r.receivePayment(req.Group)
	}
	r.sems.Mutex.Up()
	return fmt.Errorf("receptionist: unexpected request %v", req.Kind)
}

// assignTable seats the group at a free table, or queues it until a table
// frees up. Called with the mutex held.
func (r *Receptionist) assignTable(group int) error {
	r.st.ReceptionistStat = shared.ReceptionistAssignTable
	if err := r.st.Persist("receptionist"); err != nil {
		return fmt.Errorf("receptionist: saving state: %w", err)
	}

	if len(r.freeTables) > 0 {
		table := r.freeTables[0]
		r.freeTables = r.freeTables[1:]
		if err := r.seat(group, table); err != nil {
			return err
		}
	} else {
		r.waiting = append(r.waiting, group)
	}

	if err := r.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("receptionist: leaving critical section: %w", err)
	}
	if err := r.sems.ReceptionistRequestPossible.Up(); err != nil {
		return fmt.Errorf("receptionist: releasing mailbox: %w", err)
	}
	return nil
}

// receivePayment settles the group's bill, signals both checkout rendezvous
// and hands the freed table to the first waiting group, if any. Called with
// the mutex held.
func (r *Receptionist) receivePayment(group int) error {
	r.st.ReceptionistStat = shared.ReceptionistReceivePayment
	if err := r.st.Persist("receptionist"); err != nil {
		return fmt.Errorf("receptionist: saving state: %w", err)
	}

	table := r.st.AssignedTable[group]
	r.st.AssignedTable[group] = shared.NoTable

	if err := r.sems.RequestReceived[table].Up(); err != nil {
		return fmt.Errorf("receptionist: acknowledging bill: %w", err)
	}
	if err := r.sems.TableDone[table].Up(); err != nil {
		return fmt.Errorf("receptionist: completing checkout: %w", err)
	}

	if len(r.waiting) > 0 {
		next := r.waiting[0]
		r.waiting = r.waiting[1:]
		if err := r.seat(next, table); err != nil {
			return err
		}
	} else {
		r.freeTables = append(r.freeTables, table)
	}

	if err := r.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("receptionist: leaving critical section: %w", err)
	}
	if err := r.sems.ReceptionistRequestPossible.Up(); err != nil {
		return fmt.Errorf("receptionist: releasing mailbox: %w", err)
	}
	return nil
}

// seat records the assignment and wakes the group. Called with the mutex
// held.
func (r *Receptionist) seat(group, table int) error {
	r.st.AssignedTable[group] = table
	if err := r.sems.WaitForTable[group].Up(); err != nil {
		return fmt.Errorf("receptionist: seating group %d: %w", group, err)
	}
	return nil
}
