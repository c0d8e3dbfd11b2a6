package model

import "time"

// Review represents a review submitted on a pull request.
type Review struct {
	ReviewerLogin string
	State         ReviewState
	CommitID      string // SHA of the commit this review targets.
	SubmittedAt   time.Time
}

// IsApproval reports whether the review approves the pull request.
func (r Review) IsApproval() bool {
	return r.State == ReviewStateApproved
}

// ReviewDecisions holds the latest decision of every reviewer on a pull
// request, in the order each reviewer first appeared in the review history.
type ReviewDecisions struct {
	logins   []string
	approved map[string]bool
}

// NewReviewDecisions returns an empty decision set.
func NewReviewDecisions() ReviewDecisions {
	return ReviewDecisions{approved: map[string]bool{}}
}

// Record sets the decision for login, replacing any earlier one.
func (d *ReviewDecisions) Record(login string, approved bool) {
	if d.approved == nil {
		d.approved = map[string]bool{}
	}
	if _, seen := d.approved[login]; !seen {
		d.logins = append(d.logins, login)
	}
	d.approved[login] = approved
}

// Get returns the decision for login and whether login has reviewed at all.
func (d ReviewDecisions) Get(login string) (approved, reviewed bool) {
	approved, reviewed = d.approved[login]
	return approved, reviewed
}

// Logins returns every reviewer with a recorded decision.
func (d ReviewDecisions) Logins() []string {
	return append([]string(nil), d.logins...)
}

// Len returns the number of distinct reviewers.
func (d ReviewDecisions) Len() int {
	return len(d.logins)
}

// AllApproved reports whether every recorded decision is an approval.
// An empty set is vacuously approved.
func (d ReviewDecisions) AllApproved() bool {
	for _, login := range d.logins {
		if !d.approved[login] {
			return false
		}
	}
	return true
}
