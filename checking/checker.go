package checking

import "restsim/shared"

// The Checker verifies that properties hold for a recorded run.
type Checker interface {
	// Verify that the configured properties hold for the provided run
	Check(run []shared.Snapshot) CheckerResponse
}

// CheckerResponse is a response returned by a Checker
//
// Contains the result of checking the run.
type CheckerResponse interface {
	// Create a response.
	//
	// Returns a boolean that is true if all properties hold, false otherwise.
	// Returns a string describing the response.
	// This should include a detailed description of which property is
	// violated and the prefix of the run which caused it to be violated.
	Response() (bool, string)

	// Export the prefix of the run which caused a property to be violated.
	//
	// If a property was violated it returns the sequence numbers of the
	// snapshots leading to the violating one. Otherwise it returns an
	// empty slice.
	Export() []int
}
