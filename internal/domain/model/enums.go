package model

// ReviewState is the state of a single review submission, exactly as the
// GitHub REST API reports it.
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateDismissed        ReviewState = "DISMISSED"
)

// Check run status values used when describing unfinished runs.
const (
	CheckStatusCompleted = "completed"
)
