package checking

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"restsim/shared"
)

type predicateCheckerResponse struct {
	Result   bool              // True if all predicates hold. False otherwise
	Sequence []shared.Snapshot // The prefix leading to the failing state. nil if Result is true
	Test     int               // The index of the failing predicate. -1 if Result is true
}

// Generate a response.
// Returns two parameters, result, and description.
// Result is true if all predicates hold, false otherwise.
// Description is a formatted string providing a detailed description of the
// result. If result is false the description contains the sequence of
// snapshots that lead to the failing one.
func (pcr predicateCheckerResponse) Response() (bool, string) {
	if pcr.Result {
		return pcr.Result, "All predicates hold"
	}
	var buffer bytes.Buffer
	wrt := tabwriter.NewWriter(&buffer, 4, 4, 0, ' ', 0)
	out := fmt.Sprintf("Predicate broken. Predicate: %v. Sequence: \n", pcr.Test)
	for _, element := range pcr.Sequence {
		fmt.Fprintf(wrt, "-> %+v \n", element)
	}
	wrt.Flush()
	out += buffer.String()
	return pcr.Result, out
}

// Export the failing prefix as the sequence numbers of its snapshots.
func (pcr predicateCheckerResponse) Export() []int {
	seq := []int{}
	for _, s := range pcr.Sequence {
		seq = append(seq, s.Seq)
	}
	return seq
}

// A function to be evaluated on the states of a recorded run.
// It returns true if the predicate holds for the state and false otherwise.
type Predicate func(s State) bool

type PredicateChecker struct {
	// A slice of predicates that return true while they hold.
	// A broken predicate identifies the first state breaking it.
	predicates []Predicate
}

func NewPredicateChecker(predicates ...Predicate) *PredicateChecker {
	return &PredicateChecker{
		predicates: predicates,
	}
}

// Check every predicate on every recorded state, in record order. The
// check stops at the first state that breaks a predicate.
func (pc *PredicateChecker) Check(run []shared.Snapshot) CheckerResponse {
	sequence := make([]shared.Snapshot, 0, len(run))
	for i, snap := range run {
		sequence = append(sequence, snap)
		state := State{
			Snapshot:   snap,
			IsTerminal: i == len(run)-1,
			Sequence:   sequence,
		}
		for index, pred := range pc.predicates {
			if !pred(state) {
				return predicateCheckerResponse{
					Result:   false,
					Sequence: sequence,
					Test:     index,
				}
			}
		}
	}
	return predicateCheckerResponse{
		Result:   true,
		Sequence: nil,
		Test:     -1,
	}
}
