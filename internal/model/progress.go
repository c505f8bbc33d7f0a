package model

// BatchProgress is a point-in-time snapshot of one batch export run.
//
// The batch manager mutates its own copy as tasks complete; observers
// receive value snapshots, so a BatchProgress never changes after it is
// handed out.
type BatchProgress struct {
	// Done is the number of books exported successfully so far.
	Done int

	// Total is the number of books requested for this run.
	Total int

	// Failed holds the ids that failed in the most recent round.
	// After the final round these are the permanently failed ids.
	Failed []string
}
