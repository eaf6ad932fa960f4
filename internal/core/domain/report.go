package domain

import "time"

// RunReport holds the aggregate statistics of one pipeline run.
// A completed run always produces a report, however many documents
// were dropped along the way.
type RunReport struct {
	// ID is the unique identifier for the run.
	ID string

	// InputPath and OutputPath address the corpus files of the run.
	InputPath  string
	OutputPath string

	// StartedAt and FinishedAt bound the run wall-clock time.
	StartedAt  time.Time
	FinishedAt time.Time

	// Read is the number of records read from the input, including
	// malformed ones.
	Read int

	// Malformed is the number of unparseable records skipped.
	Malformed int

	// Written is the number of surviving documents written to the output.
	Written int

	// DropsByStage maps stage name to the number of documents that
	// stage dropped.
	DropsByStage map[string]int
}

// Dropped returns the total number of documents dropped by stages.
func (r *RunReport) Dropped() int {
	total := 0
	for _, n := range r.DropsByStage {
		total += n
	}
	return total
}
