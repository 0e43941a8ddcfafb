package runner

import (
	"fmt"

	"restsim/shared"
)

// A Record is one observation published on the runner's record stream.
type Record interface {
	// The actor that produced the record.
	Actor() string
	fmt.Stringer
}

// Sent for every snapshot persisted under the mutex, in persistence order.
type StateRecord struct {
	actor string
	State shared.Snapshot
}

func (sr StateRecord) Actor() string {
	return sr.actor
}

func (sr StateRecord) String() string {
	return fmt.Sprintf("[State %d - %v]", sr.State.Seq, sr.actor)
}

// Sent when an actor's run loop returns, successfully or not.
type DoneRecord struct {
	actor string
	Err   error
}

func (dr DoneRecord) Actor() string {
	return dr.actor
}

func (dr DoneRecord) String() string {
	if dr.Err != nil {
		return fmt.Sprintf("[Done %v - %v]", dr.actor, dr.Err)
	}
	return fmt.Sprintf("[Done %v]", dr.actor)
}
