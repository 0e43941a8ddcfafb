package checking

import "restsim/shared"

// The state of the run at one persisted record.
type State struct {
	// The snapshot under evaluation.
	Snapshot shared.Snapshot
	// True if this is the last recorded snapshot of the run. False otherwise.
	IsTerminal bool
	// The sequence of snapshots that lead to this State, including it.
	Sequence []shared.Snapshot
}

// Prev returns the snapshot preceding the one under evaluation, or false if
// this is the first record of the run.
func (s State) Prev() (shared.Snapshot, bool) {
	if len(s.Sequence) < 2 {
		return shared.Snapshot{}, false
	}
	return s.Sequence[len(s.Sequence)-2], true
}
