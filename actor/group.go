package actor

import (
	"fmt"
	"math/rand"

	"restsim/sem"
	"restsim/shared"
)

// A Group is one party of customers. It runs a fixed six-stage sequence
// from arrival to departure, each transition gated by a rendezvous with the
// receptionist or the waiter.
type Group struct {
	id   int
	name string
	st   *shared.State
	sems *sem.Set
	rnd  *rand.Rand
}

// NewGroup creates the group with the given identity. The identity is
// validated here, before the group touches any shared resource.
func NewGroup(id int, st *shared.State, sems *sem.Set) (*Group, error) {
	if id < 0 || id >= st.Groups {
		return nil, fmt.Errorf("actor: group id %d out of range [0,%d)", id, st.Groups)
	}
	return &Group{
		id:   id,
		name: fmt.Sprintf("group%d", id),
		st:   st,
		sems: sems,
		rnd:  rand.New(rand.NewSource(st.Seed + 100 + int64(id))),
	}, nil
}

// Run executes the group life cycle. The first failing semaphore operation
// aborts the remaining stages.
func (g *Group) Run() error {
	g.goToRestaurant()
	if err := g.checkInAtReception(); err != nil {
		return err
	}
	if err := g.orderFood(); err != nil {
		return err
	}
	if err := g.waitFood(); err != nil {
		return err
	}
	g.eat()
	return g.checkOutAtReception()
}

// goToRestaurant simulates the travel time to the restaurant. No shared
// state is touched.
func (g *Group) goToRestaurant() {
	sleepJitter(g.rnd, g.st.StartTime[g.id], g.st.StartDev)
}

// eat simulates the meal.
func (g *Group) eat() {
	sleepJitter(g.rnd, g.st.EatTime[g.id], g.st.EatDev)
}

// checkInAtReception asks the receptionist for a table and blocks until one
// has been assigned.
func (g *Group) checkInAtReception() error {
	if err := g.sems.ReceptionistRequestPossible.Down(); err != nil {
		return fmt.Errorf("group %d: waiting for receptionist mailbox: %w", g.id, err)
	}
	if err := g.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("group %d: entering critical section: %w", g.id, err)
	}

	g.st.GroupStat[g.id] = shared.GroupAtReception
	if err := g.st.Persist(g.name); err != nil {
		return fmt.Errorf("group %d: saving state: %w", g.id, err)
	}

	g.st.ReceptionistRequest = shared.Request{Kind: shared.TableRequest, Group: g.id}

	if err := g.sems.ReceptionistRequest.Up(); err != nil {
		return fmt.Errorf("group %d: signaling receptionist: %w", g.id, err)
	}
	if err := g.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("group %d: leaving critical section: %w", g.id, err)
	}

	if err := g.sems.WaitForTable[g.id].Down(); err != nil {
		return fmt.Errorf("group %d: waiting for table: %w", g.id, err)
	}
	return nil
}

// orderFood places the food order with the waiter and blocks until the
// waiter acknowledges it. The assigned table is read inside the critical
// section, since it is written there by the receptionist.
func (g *Group) orderFood() error {
	if err := g.sems.WaiterRequestPossible.Down(); err != nil {
		return fmt.Errorf("group %d: waiting for waiter mailbox: %w", g.id, err)
	}
	if err := g.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("group %d: entering critical section: %w", g.id, err)
	}

	g.st.GroupStat[g.id] = shared.GroupFoodRequested
	if err := g.st.Persist(g.name); err != nil {
		return fmt.Errorf("group %d: saving state: %w", g.id, err)
	}

	g.st.WaiterRequest = shared.Request{Kind: shared.FoodRequest, Group: g.id}

	if err := g.sems.WaiterRequest.Up(); err != nil {
		return fmt.Errorf("group %d: signaling waiter: %w", g.id, err)
	}

	table := g.st.AssignedTable[g.id]

	if err := g.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("group %d: leaving critical section: %w", g.id, err)
	}

	if err := g.sems.RequestReceived[table].Down(); err != nil {
		return fmt.Errorf("group %d: waiting for order ack: %w", g.id, err)
	}
	return nil
}

// waitFood blocks until the waiter has brought the food to the table.
func (g *Group) waitFood() error {
	if err := g.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("group %d: entering critical section: %w", g.id, err)
	}

	g.st.GroupStat[g.id] = shared.GroupAwaitingFood
	if err := g.st.Persist(g.name); err != nil {
		return fmt.Errorf("group %d: saving state: %w", g.id, err)
	}

	table := g.st.AssignedTable[g.id]

	if err := g.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("group %d: leaving critical section: %w", g.id, err)
	}

	if err := g.sems.FoodArrived[table].Down(); err != nil {
		return fmt.Errorf("group %d: waiting for food: %w", g.id, err)
	}

	if err := g.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("group %d: entering critical section: %w", g.id, err)
	}

	g.st.GroupStat[g.id] = shared.GroupEating
	if err := g.st.Persist(g.name); err != nil {
		return fmt.Errorf("group %d: saving state: %w", g.id, err)
	}

	if err := g.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("group %d: leaving critical section: %w", g.id, err)
	}
	return nil
}

// checkOutAtReception asks for the bill and blocks through two rendezvous:
// the receptionist acknowledging the request, then checkout processing
// completing. Only then does the group leave.
func (g *Group) checkOutAtReception() error {
	if err := g.sems.ReceptionistRequestPossible.Down(); err != nil {
		return fmt.Errorf("group %d: waiting for receptionist mailbox: %w", g.id, err)
	}
	if err := g.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("group %d: entering critical section: %w", g.id, err)
	}

	g.st.GroupStat[g.id] = shared.GroupCheckingOut
	if err := g.st.Persist(g.name); err != nil {
		return fmt.Errorf("group %d: saving state: %w", g.id, err)
	}

	g.st.ReceptionistRequest = shared.Request{Kind: shared.BillRequest, Group: g.id}

	if err := g.sems.ReceptionistRequest.Up(); err != nil {
		return fmt.Errorf("group %d: signaling receptionist: %w", g.id, err)
	}

	table := g.st.AssignedTable[g.id]

	if err := g.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("group %d: leaving critical section: %w", g.id, err)
	}

	if err := g.sems.RequestReceived[table].Down(); err != nil {
		return fmt.Errorf("group %d: waiting for bill ack: %w", g.id, err)
	}
	if err := g.sems.TableDone[table].Down(); err != nil {
		return fmt.Errorf("group %d: waiting for checkout: %w", g.id, err)
	}

	if err := g.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("group %d: entering critical section: %w", g.id, err)
	}

	g.st.GroupStat[g.id] = shared.GroupLeaving
	if err := g.st.Persist(g.name); err != nil {
		return fmt.Errorf("group %d: saving state: %w", g.id, err)
	}

	if err := g.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("group %d: leaving critical section: %w", g.id, err)
	}
	return nil
}
