package model

import "time"

// CheckRun represents an individual CI check run from the GitHub Checks API.
type CheckRun struct {
	Name        string    // Check run name (e.g., "build", "lint").
	Status      string    // queued, in_progress, completed, waiting, requested, pending.
	Conclusion  string    // success, failure, neutral, cancelled, skipped, timed_out, action_required. Empty until completed.
	DetailsURL  string    // URL to the check run details page.
	CompletedAt time.Time // When the check run completed (zero if not yet completed).
}

// CheckOutcome is the verdict for one requested check name.
type CheckOutcome struct {
	Name       string
	Conclusion string // Conclusion of the last matching check run; empty when not found.
	Found      bool   // False when no check run with this name was reported for the commit.
	Passed     bool
}
