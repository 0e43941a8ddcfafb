package sem

// A Set holds every semaphore the restaurant protocol uses, one per logical
// channel. It is created once before any actor starts and every actor
// connects to the same instance; the actors never create or destroy
// semaphores themselves.
type Set struct {
	// Guards all access to the shared state.
	Mutex *Semaphore

	// Signaled by the waiter once per relayed order, waited on by the chef.
	WaitOrder *Semaphore
	// Signaled by the chef to acknowledge that it took the order.
	OrderReceived *Semaphore

	// Gates writes into the waiter mailbox. Down before writing, Up by the
	// waiter after it has read the mailbox.
	WaiterRequestPossible *Semaphore
	// Signaled after writing the waiter mailbox, wakes the waiter.
	WaiterRequest *Semaphore

	// Gates writes into the receptionist mailbox.
	ReceptionistRequestPossible *Semaphore
	// Signaled after writing the receptionist mailbox, wakes the receptionist.
	ReceptionistRequest *Semaphore

	// Per group: signaled once the receptionist has assigned a table.
	WaitForTable []*Semaphore

	// Per table: signaled once a request placed from that table was acted on.
	RequestReceived []*Semaphore
	// Per table: signaled when food for that table is ready for pickup.
	FoodArrived []*Semaphore
	// Per table: signaled once checkout for that table has been processed.
	TableDone []*Semaphore
}

// NewSet creates the semaphore set for a run with the given number of
// groups and tables. The mutex and the two mailbox gates start at one,
// every rendezvous semaphore starts at zero.
func NewSet(groups, tables int) *Set {
	s := &Set{
		Mutex:                       New(1),
		WaitOrder:                   New(0),
		OrderReceived:               New(0),
		WaiterRequestPossible:       New(1),
		WaiterRequest:               New(0),
		ReceptionistRequestPossible: New(1),
		ReceptionistRequest:         New(0),
		WaitForTable:                make([]*Semaphore, groups),
		RequestReceived:             make([]*Semaphore, tables),
		FoodArrived:                 make([]*Semaphore, tables),
		TableDone:                   make([]*Semaphore, tables),
	}
	for g := range s.WaitForTable {
		s.WaitForTable[g] = New(0)
	}
	for t := 0; t < tables; t++ {
		s.RequestReceived[t] = New(0)
		s.FoodArrived[t] = New(0)
		s.TableDone[t] = New(0)
	}
	return s
}

// Close fails every semaphore in the set, unblocking all waiting actors
// with an error.
func (s *Set) Close() {
	all := []*Semaphore{
		s.Mutex, s.WaitOrder, s.OrderReceived,
		s.WaiterRequestPossible, s.WaiterRequest,
		s.ReceptionistRequestPossible, s.ReceptionistRequest,
	}
	all = append(all, s.WaitForTable...)
	all = append(all, s.RequestReceived...)
	all = append(all, s.FoodArrived...)
	all = append(all, s.TableDone...)
	for _, sm := range all {
		sm.Close()
	}
}
