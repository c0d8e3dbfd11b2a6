package driven

import (
	"context"

	"github.com/ericfisherdev/mergegate/internal/domain/model"
)

// GitHubClient defines the driven port for the read-only GitHub API calls the
// merge gates make. Implementations return a *model.APIError for any
// response other than 200 OK.
type GitHubClient interface {
	// FetchCheckRuns returns the check runs reported for ref (commit SHA or
	// branch), in API order. Only the first page is read.
	FetchCheckRuns(ctx context.Context, repo model.Repository, ref string) ([]model.CheckRun, error)
	// FetchRequestedReviewers returns the logins of users with a pending
	// review request. Requested teams are not included.
	FetchRequestedReviewers(ctx context.Context, repo model.Repository, prNumber int) ([]string, error)
	// FetchReviews returns submitted reviews in chronological order.
	FetchReviews(ctx context.Context, repo model.Repository, prNumber int) ([]model.Review, error)
}
