package publish

import (
	"inopush/internal/world"
)

// Outcome is what happened to one project folder.
type Outcome string

const (
	OutcomeSkippedNoSketch  Outcome = "skipped_no_sketch"
	OutcomeSkippedEmptyName Outcome = "skipped_empty_name"
	OutcomeReadFailed       Outcome = "read_failed"
	OutcomeNameFailed       Outcome = "name_failed"
	OutcomeReadmeFailed     Outcome = "readme_failed"
	OutcomeReadmeWritten    Outcome = "readme_written" // dry run
	OutcomeCreateFailed     Outcome = "create_failed"
	OutcomePushFailed       Outcome = "push_failed"
	OutcomePublished        Outcome = "published"
)

// Outcomes lists every outcome in report order.
var Outcomes = []Outcome{
	OutcomePublished,
	OutcomeReadmeWritten,
	OutcomeSkippedNoSketch,
	OutcomeSkippedEmptyName,
	OutcomeReadFailed,
	OutcomeNameFailed,
	OutcomeReadmeFailed,
	OutcomeCreateFailed,
	OutcomePushFailed,
}

// Failed reports whether the outcome is an error rather than a success or skip.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomePublished, OutcomeReadmeWritten, OutcomeSkippedNoSketch, OutcomeSkippedEmptyName:
		return false
	}
	return true
}

// ProjectResult records the processing of one project folder.
type ProjectResult struct {
	Project world.Project
	Sketch  string

	Name           string
	NameFallback   bool
	ReadmePath     string
	ReadmeFallback bool
	CloneURL       string

	Outcome Outcome
	Err     error
}

// Report is the result of a batch run.
type Report struct {
	RunID   string
	Root    string
	DryRun  bool
	Results []ProjectResult
}

// Counts tallies results by outcome.
func (r *Report) Counts() map[Outcome]int {
	counts := make(map[Outcome]int, len(Outcomes))
	for _, res := range r.Results {
		counts[res.Outcome]++
	}
	return counts
}

// Failures returns the results whose outcome is a failure.
func (r *Report) Failures() []ProjectResult {
	var out []ProjectResult
	for _, res := range r.Results {
		if res.Outcome.Failed() {
			out = append(out, res)
		}
	}
	return out
}
