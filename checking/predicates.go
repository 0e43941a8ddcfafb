package checking

import (
	"fmt"

	"restsim/shared"

	"golang.org/x/exp/slices"
)

// The predicates in this file express the observable protocol properties of
// the restaurant over a persisted run: the statuses advance the way the
// life cycles say they do, no request is lost or duplicated, and every
// cooked order reaches the group that placed it.

// SequenceNumbers checks that the records carry consecutive sequence
// numbers, i.e. that the log is complete and in persistence order.
func SequenceNumbers() Predicate {
	return func(s State) bool {
		prev, ok := s.Prev()
		if !ok {
			return s.Snapshot.Seq == 1
		}
		return s.Snapshot.Seq == prev.Seq+1
	}
}

// SingleTransition checks that consecutive records differ in the status of
// exactly one entity, and that this entity is the author of the record. A
// snapshot straddling two critical sections would break this.
func SingleTransition() Predicate {
	return func(s State) bool {
		prev, ok := s.Prev()
		if !ok {
			return true
		}
		cur := s.Snapshot
		changed := []string{}
		if cur.Chef != prev.Chef {
			changed = append(changed, "chef")
		}
		if cur.Waiter != prev.Waiter {
			changed = append(changed, "waiter")
		}
		if cur.Receptionist != prev.Receptionist {
			changed = append(changed, "receptionist")
		}
		for g := range cur.Groups {
			if cur.Groups[g] != prev.Groups[g] {
				changed = append(changed, groupName(g))
			}
		}
		// The waiter and receptionist keep their previous status when
		// handling a second request of the same kind, so an author with no
		// visible status change is legal.
		if len(changed) == 0 {
			return true
		}
		return len(changed) == 1 && changed[0] == cur.Author
	}
}

// GroupsAdvanceInOrder checks that every group walks its six statuses
// strictly forward, one step per transition, with no backtracking and no
// skipping.
func GroupsAdvanceInOrder() Predicate {
	return func(s State) bool {
		prev, ok := s.Prev()
		if !ok {
			return true
		}
		for g := range s.Snapshot.Groups {
			cur, old := s.Snapshot.Groups[g], prev.Groups[g]
			if cur != old && cur != old+1 {
				return false
			}
		}
		return true
	}
}

// ChefCycles checks that the chef only ever moves between taking an order
// and handing off the cooked food.
func ChefCycles() Predicate {
	return func(s State) bool {
		prev, ok := s.Prev()
		if !ok {
			return true
		}
		cur, old := s.Snapshot.Chef, prev.Chef
		if cur == old {
			return true
		}
		switch cur {
		case shared.ChefCooking:
			return old == shared.ChefAwaitingOrder || old == shared.ChefWaitAfterCook
		case shared.ChefWaitAfterCook:
			return old == shared.ChefCooking
		}
		return false
	}
}

// ChefServesEveryGroup checks that by the end of the run the chef has
// cooked exactly one order per group and handed each back to the waiter.
func ChefServesEveryGroup() Predicate {
	return Eventually(func(s State) bool {
		n := len(s.Snapshot.Groups)
		if len(cookedGroups(s.Sequence)) != n {
			return false
		}
		ready := mailboxWrites(s.Sequence, waiterBox, shared.FoodReady)
		if len(ready) != n {
			return false
		}
		return s.Snapshot.Chef == shared.ChefWaitAfterCook
	})
}

// NoCrossDelivery checks that every food-ready handoff names the group
// whose order the chef captured when it started cooking, in cooking order.
func NoCrossDelivery() Predicate {
	return func(s State) bool {
		ready := mailboxWrites(s.Sequence, waiterBox, shared.FoodReady)
		cooked := cookedGroups(s.Sequence)
		if len(ready) > len(cooked) {
			return false
		}
		return slices.Equal(ready, cooked[:len(ready)])
	}
}

// RequestsOnce checks that each mailbox sees each request kind at most once
// per group while the run progresses, and exactly once by the end. A
// duplicate means a request was processed twice, a missing one that it was
// silently dropped.
func RequestsOnce() Predicate {
	kinds := []struct {
		box  func(shared.Snapshot) shared.Request
		kind shared.RequestKind
	}{
		{waiterBox, shared.FoodRequest},
		{waiterBox, shared.FoodReady},
		{receptionistBox, shared.TableRequest},
		{receptionistBox, shared.BillRequest},
	}
	return func(s State) bool {
		n := len(s.Snapshot.Groups)
		for _, k := range kinds {
			writes := mailboxWrites(s.Sequence, k.box, k.kind)
			seen := make([]int, n)
			for _, g := range writes {
				if g < 0 || g >= n {
					return false
				}
				seen[g]++
				if seen[g] > 1 {
					return false
				}
			}
			if s.IsTerminal && len(writes) != n {
				return false
			}
		}
		return true
	}
}

// AllGroupsLeave checks that every group reaches its terminal status.
func AllGroupsLeave() Predicate {
	return Eventually(func(s State) bool {
		for _, gs := range s.Snapshot.Groups {
			if gs != shared.GroupLeaving {
				return false
			}
		}
		return true
	})
}

// TablesExclusive checks that no two seated groups ever hold the same
// table, and that assignments stay inside the table pool.
func TablesExclusive(tables int) Predicate {
	return func(s State) bool {
		taken := map[int]bool{}
		for _, t := range s.Snapshot.AssignedTable {
			if t == shared.NoTable {
				continue
			}
			if t < 0 || t >= tables || taken[t] {
				return false
			}
			taken[t] = true
		}
		return true
	}
}

func waiterBox(s shared.Snapshot) shared.Request {
	return s.WaiterRequest
}

func receptionistBox(s shared.Snapshot) shared.Request {
	return s.ReceptionistRequest
}

// mailboxWrites returns the groups of the writes of the given kind into the
// selected mailbox, in write order. A write is visible as a change of the
// mailbox value between consecutive records.
func mailboxWrites(run []shared.Snapshot, box func(shared.Snapshot) shared.Request, kind shared.RequestKind) []int {
	groups := []int{}
	last := shared.Request{}
	for _, snap := range run {
		req := box(snap)
		if req != last && req.Kind == kind {
			groups = append(groups, req.Group)
		}
		last = req
	}
	return groups
}

// cookedGroups returns the order-handoff groups captured at each of the
// chef's transitions into cooking, in cooking order.
func cookedGroups(run []shared.Snapshot) []int {
	groups := []int{}
	last := shared.ChefAwaitingOrder
	for _, snap := range run {
		if snap.Chef == shared.ChefCooking && last != shared.ChefCooking {
			groups = append(groups, snap.FoodGroup)
		}
		last = snap.Chef
	}
	return groups
}

func groupName(g int) string {
	return fmt.Sprintf("group%d", g)
}
