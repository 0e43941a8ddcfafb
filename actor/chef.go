package actor

import (
	"fmt"
	"math/rand"
	"time"

	"restsim/sem"
	"restsim/shared"
)

// The Chef consumes exactly one order per group, cooks it, and hands the
// food back to the waiter. It never talks to a group directly: orders
// arrive through the order-handoff field and the waitOrder semaphore, food
// leaves through the waiter mailbox.
type Chef struct {
	st   *shared.State
	sems *sem.Set
	rnd  *rand.Rand

	// Group whose order is currently being cooked, captured when the
	// order is taken.
	lastGroup int
}

func NewChef(st *shared.State, sems *sem.Set) *Chef {
	return &Chef{
		st:        st,
		sems:      sems,
		rnd:       rand.New(rand.NewSource(st.Seed + 1)),
		lastGroup: -1,
	}
}

// Run executes the chef life cycle: take an order, cook it, hand it off,
// once per group, then return. The first failing semaphore operation aborts
// the loop.
func (c *Chef) Run() error {
	for orders := 0; orders < c.st.Groups; orders++ {
		if err := c.waitForOrder(); err != nil {
			return err
		}
		if err := c.processOrder(); err != nil {
			return err
		}
	}
	return nil
}

// waitForOrder blocks until the waiter has relayed an order, captures the
// ordering group, and acknowledges the order.
func (c *Chef) waitForOrder() error {
	if err := c.sems.WaitOrder.Down(); err != nil {
		return fmt.Errorf("chef: waiting for order: %w", err)
	}
	if err := c.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("chef: entering critical section: %w", err)
	}

	c.lastGroup = c.st.FoodGroup

	c.st.ChefStat = shared.ChefCooking
	if err := c.st.Persist("chef"); err != nil {
		return fmt.Errorf("chef: saving state: %w", err)
	}

	if err := c.sems.OrderReceived.Up(); err != nil {
		return fmt.Errorf("chef: acknowledging order: %w", err)
	}
	if err := c.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("chef: leaving critical section: %w", err)
	}
	return nil
}

// processOrder cooks for a randomized duration, then writes the food-ready
// request into the waiter mailbox and wakes the waiter. The mailbox gate is
// taken before the mutex so the slot is known to be free before it is
// overwritten.
func (c *Chef) processOrder() error {
	cook := c.st.CookMin
	if c.st.CookMax > 0 {
		cook += time.Duration(c.rnd.Float64() * float64(c.st.CookMax))
	}
	if cook > 0 {
		time.Sleep(cook)
	}

	if err := c.sems.WaiterRequestPossible.Down(); err != nil {
		return fmt.Errorf("chef: waiting for waiter mailbox: %w", err)
	}
	if err := c.sems.Mutex.Down(); err != nil {
		return fmt.Errorf("chef: entering critical section: %w", err)
	}

	c.st.WaiterRequest = shared.Request{Kind: shared.FoodReady, Group: c.lastGroup}

	c.st.ChefStat = shared.ChefWaitAfterCook
	if err := c.st.Persist("chef"); err != nil {
		return fmt.Errorf("chef: saving state: %w", err)
	}

	if err := c.sems.Mutex.Up(); err != nil {
		return fmt.Errorf("chef: leaving critical section: %w", err)
	}
	if err := c.sems.WaiterRequest.Up(); err != nil {
		return fmt.Errorf("chef: signaling waiter: %w", err)
	}
	return nil
}
