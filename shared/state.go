package shared

import (
	"time"

	"golang.org/x/exp/slices"
)

// RequestKind tags the value held by one of the single-slot mailboxes.
type RequestKind int

const (
	NoRequest RequestKind = iota

	// Waiter mailbox.
	FoodRequest
	FoodReady

	// Receptionist mailbox.
	TableRequest
	BillRequest
)

func (k RequestKind) String() string {
	switch k {
	case NoRequest:
		return "NONE"
	case FoodRequest:
		return "FOOD_REQUEST"
	case FoodReady:
		return "FOOD_READY"
	case TableRequest:
		return "TABLE_REQUEST"
	case BillRequest:
		return "BILL_REQUEST"
	}
	return "UNKNOWN"
}

// A Request is the value carried by a mailbox: what is being asked for and
// which group is asking (or, for FoodReady, being served).
type Request struct {
	Kind  RequestKind
	Group int
}

// NoTable marks a group that has not been assigned a table yet.
const NoTable = -1

// Config is the immutable part of the shared state, fixed before any actor
// starts.
type Config struct {
	Groups int
	Tables int

	// Nominal per-group travel and eating times. Actual delays add
	// zero-mean normally distributed jitter.
	StartTime []time.Duration
	EatTime   []time.Duration

	// Standard deviation of the jitter on StartTime and EatTime.
	StartDev time.Duration
	EatDev   time.Duration

	// Cooking takes CookMin plus a uniform sample on [0, CookMax).
	CookMin time.Duration
	CookMax time.Duration

	Seed int64
}

// State is the single memory region every actor shares. All fields below
// Config are mutable and must only be touched while holding the mutex
// semaphore of the accompanying sem.Set.
type State struct {
	Config

	ChefStat         ChefStatus
	GroupStat        []GroupStatus
	WaiterStat       WaiterStatus
	ReceptionistStat ReceptionistStatus

	// Single-slot mailboxes. The gating semaphores of the sem.Set make
	// sure a slot is rewritten only after its consumer has read it.
	WaiterRequest       Request
	ReceptionistRequest Request

	// Table assigned to each group by the receptionist, NoTable before
	// check-in completes.
	AssignedTable []int

	// Order handoff between waiter and chef: the group whose food is to be
	// cooked next.
	FoodGroup int

	sink Sink
	seq  int
}

// A Sink receives a snapshot of the full shared state after every status
// change. Save is always called with the mutex held, so consecutive
// snapshots are exactly the persisted-state records of the run.
type Sink interface {
	Save(Snapshot) error
}

// NewState creates the shared region for a run. Every status starts at its
// zero value (chef awaiting an order, groups arriving) and no group has a
// table.
func NewState(cfg Config, sink Sink) *State {
	st := &State{
		Config:        cfg,
		GroupStat:     make([]GroupStatus, cfg.Groups),
		AssignedTable: make([]int, cfg.Groups),
		FoodGroup:     -1,
		sink:          sink,
	}
	for g := range st.AssignedTable {
		st.AssignedTable[g] = NoTable
	}
	return st
}

// A Snapshot is one persisted-state record: a consistent copy of every
// mutable field, stamped with a monotonically increasing sequence number
// and the name of the actor that persisted it.
type Snapshot struct {
	Seq    int
	Author string

	Chef         ChefStatus
	Groups       []GroupStatus
	Waiter       WaiterStatus
	Receptionist ReceptionistStatus

	WaiterRequest       Request
	ReceptionistRequest Request

	AssignedTable []int
	FoodGroup     int
}

// Snapshot copies the mutable state. Must be called with the mutex held.
func (st *State) Snapshot(author string) Snapshot {
	return Snapshot{
		Seq:                 st.seq,
		Author:              author,
		Chef:                st.ChefStat,
		Groups:              slices.Clone(st.GroupStat),
		Waiter:              st.WaiterStat,
		Receptionist:        st.ReceptionistStat,
		WaiterRequest:       st.WaiterRequest,
		ReceptionistRequest: st.ReceptionistRequest,
		AssignedTable:       slices.Clone(st.AssignedTable),
		FoodGroup:           st.FoodGroup,
	}
}

// Persist writes the current state to the sink on behalf of the named
// actor. Must be called with the mutex held; the sequence number advances
// once per call.
func (st *State) Persist(author string) error {
	st.seq++
	if st.sink == nil {
		return nil
	}
	return st.sink.Save(st.Snapshot(author))
}
