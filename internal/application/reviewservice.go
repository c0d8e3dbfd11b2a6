package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ericfisherdev/mergegate/internal/domain/model"
	"github.com/ericfisherdev/mergegate/internal/domain/port/driven"
)

// ReviewReport is the combined view of requested reviewers and their latest
// review decisions on a pull request.
type ReviewReport struct {
	Requested []string
	Decisions model.ReviewDecisions

	// Missing lists requested reviewers with no submitted review.
	Missing []string
	// NonApproving lists requested reviewers whose latest review is not an approval.
	NonApproving []string

	AllRequestedReviewed bool
	// AllApproved covers every reviewer in Decisions, including reviewers
	// who are no longer requested.
	AllApproved bool
}

// RequestedApproved reports whether every requested reviewer has reviewed
// and their latest review is an approval.
func (r *ReviewReport) RequestedApproved() bool {
	return r.AllRequestedReviewed && len(r.NonApproving) == 0
}

// ReviewService verifies review state on pull requests.
type ReviewService struct {
	client driven.GitHubClient
	out    io.Writer
}

// NewReviewService creates a ReviewService. Diagnostic lines are written to out.
func NewReviewService(client driven.GitHubClient, out io.Writer) *ReviewService {
	return &ReviewService{
		client: client,
		out:    out,
	}
}

// RequestedReviewers returns the logins whose review is still requested.
func (s *ReviewService) RequestedReviewers(ctx context.Context, repo model.Repository, prNumber int) ([]string, error) {
	logins, err := s.client.FetchRequestedReviewers(ctx, repo, prNumber)
	if err != nil {
		return nil, fmt.Errorf("fetching requested reviewers for %s#%d: %w", repo.FullName(), prNumber, err)
	}
	return logins, nil
}

// ReviewerDecisions returns each reviewer's latest decision and writes a line
// for every reviewer whose latest review is not an approval.
func (s *ReviewService) ReviewerDecisions(ctx context.Context, repo model.Repository, prNumber int) (model.ReviewDecisions, error) {
	reviews, err := s.client.FetchReviews(ctx, repo, prNumber)
	if err != nil {
		return model.ReviewDecisions{}, fmt.Errorf("fetching reviews for %s#%d: %w", repo.FullName(), prNumber, err)
	}

	latest := make(map[string]model.Review, len(reviews))
	for _, r := range reviews {
		latest[r.ReviewerLogin] = r
	}

	decisions := FoldReviewDecisions(reviews)
	for _, login := range decisions.Logins() {
		if approved, _ := decisions.Get(login); !approved {
			fmt.Fprintf(s.out, "Non-approving review by reviewer %s.\n", login)
			r := latest[login]
			slog.Info("non-approving review",
				"reviewer", login,
				"state", r.State,
				"commit_id", r.CommitID,
				"submitted_at", r.SubmittedAt,
			)
		}
	}

	return decisions, nil
}

// Verify loads requested reviewers and review decisions, writes a line for
// each requested reviewer who has not reviewed, and summarizes the result.
func (s *ReviewService) Verify(ctx context.Context, repo model.Repository, prNumber int) (*ReviewReport, error) {
	requested, err := s.RequestedReviewers(ctx, repo, prNumber)
	if err != nil {
		return nil, err
	}

	decisions, err := s.ReviewerDecisions(ctx, repo, prNumber)
	if err != nil {
		return nil, err
	}

	report := &ReviewReport{
		Requested:            requested,
		Decisions:            decisions,
		AllRequestedReviewed: true,
		AllApproved:          decisions.AllApproved(),
	}

	for _, login := range requested {
		approved, reviewed := decisions.Get(login)
		if !reviewed {
			fmt.Fprintf(s.out, "Requested reviewer %s has not reviewed.\n", login)
			report.Missing = append(report.Missing, login)
			report.AllRequestedReviewed = false
			continue
		}
		if !approved {
			report.NonApproving = append(report.NonApproving, login)
		}
	}

	slog.Debug("reviews evaluated",
		"repository", repo.FullName(),
		"pull_request", prNumber,
		"requested", len(requested),
		"reviewers", decisions.Len(),
		"all_requested_reviewed", report.AllRequestedReviewed,
		"all_approved", report.AllApproved,
	)

	return report, nil
}

// FoldReviewDecisions reduces a chronological review history to each
// reviewer's latest decision. Only a review in state APPROVED approves.
func FoldReviewDecisions(reviews []model.Review) model.ReviewDecisions {
	decisions := model.NewReviewDecisions()
	for _, r := range reviews {
		decisions.Record(r.ReviewerLogin, r.IsApproval())
	}
	return decisions
}
