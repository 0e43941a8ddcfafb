package checking

// Check that the predicate happens eventually.
//
// Return a predicate that runs the provided predicate on the terminal
// state. Returns the value of the original predicate if the state is
// terminal. Otherwise, it always returns true.
func Eventually(pred Predicate) Predicate {
	return func(s State) bool {
		if !s.IsTerminal {
			return true
		}
		return pred(s)
	}
}
