// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"

	"github.com/ericfisherdev/mergegate/internal/domain/model"
	"github.com/ericfisherdev/mergegate/internal/domain/port/driven"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com/"

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github (GitHub REST API client with bearer token auth)
//  2. loggingTransport (Accept: application/vnd.github+json, debug request log)
//  3. httpcache backed by cacheDir (ETag revalidation across runs)
//  4. revalidateTransport (cached responses are never served without asking GitHub)
//
// An empty cacheDir disables caching. An empty token sends unauthenticated
// requests. A zero timeout disables the client timeout.
func NewClient(token, baseURL string, timeout time.Duration, cacheDir string) (*Client, error) {
	var transport http.RoundTripper = http.DefaultTransport
	if cacheDir != "" {
		cacheTransport := httpcache.NewTransport(diskcache.New(cacheDir))
		cacheTransport.Transport = &revalidateTransport{base: http.DefaultTransport}
		cacheTransport.MarkCachedResponses = true
		transport = cacheTransport
		slog.Debug("github response cache enabled", "dir", cacheDir)
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
	return NewClientWithHTTPClient(httpClient, baseURL, token)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	client := gh.NewClient(withLoggingTransport(httpClient))
	client.BaseURL = u
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{gh: client}, nil
}

// FetchCheckRuns retrieves the check runs for the given ref (commit SHA or branch).
// Only the first page of results is read.
func (c *Client) FetchCheckRuns(ctx context.Context, repo model.Repository, ref string) ([]model.CheckRun, error) {
	endpoint := fmt.Sprintf("%s/commits/%s/check-runs", repo.FullName(), ref)

	result, resp, err := c.gh.Checks.ListCheckRunsForRef(ctx, repo.Owner, repo.Name, ref, nil)
	if err := checkResponse(endpoint, resp, err); err != nil {
		return nil, err
	}

	logRateLimit(resp, endpoint, len(result.CheckRuns))

	runs := make([]model.CheckRun, 0, len(result.CheckRuns))
	for _, cr := range result.CheckRuns {
		runs = append(runs, mapCheckRun(cr))
	}

	return runs, nil
}

// FetchRequestedReviewers retrieves the logins of users whose review is still
// requested on a pull request.
func (c *Client) FetchRequestedReviewers(ctx context.Context, repo model.Repository, prNumber int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/pulls/%d/requested_reviewers", repo.FullName(), prNumber)

	reviewers, resp, err := c.gh.PullRequests.ListReviewers(ctx, repo.Owner, repo.Name, prNumber, nil)
	if err := checkResponse(endpoint, resp, err); err != nil {
		return nil, err
	}

	logRateLimit(resp, endpoint, len(reviewers.Users))

	logins := make([]string, 0, len(reviewers.Users))
	for _, u := range reviewers.Users {
		logins = append(logins, u.GetLogin())
	}

	return logins, nil
}

// FetchReviews retrieves the reviews submitted on a pull request. GitHub
// returns them in chronological order. Only the first page is read.
func (c *Client) FetchReviews(ctx context.Context, repo model.Repository, prNumber int) ([]model.Review, error) {
	endpoint := fmt.Sprintf("%s/pulls/%d/reviews", repo.FullName(), prNumber)

	reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, repo.Owner, repo.Name, prNumber, nil)
	if err := checkResponse(endpoint, resp, err); err != nil {
		return nil, err
	}

	logRateLimit(resp, endpoint, len(reviews))

	result := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, mapReview(r))
	}

	return result, nil
}

// checkResponse turns anything other than a 200 OK into a *model.APIError.
// go-github already fails non-2xx responses; other 2xx codes are rejected here.
func checkResponse(endpoint string, resp *gh.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	if err == nil && status == http.StatusOK {
		return nil
	}

	return &model.APIError{
		Endpoint:   endpoint,
		StatusCode: status,
		Err:        err,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// mapCheckRun converts a go-github CheckRun to a domain model CheckRun.
func mapCheckRun(cr *gh.CheckRun) model.CheckRun {
	var completedAt time.Time
	if cr.CompletedAt != nil {
		completedAt = cr.GetCompletedAt().Time
	}

	return model.CheckRun{
		Name:        cr.GetName(),
		Status:      cr.GetStatus(),
		Conclusion:  cr.GetConclusion(),
		DetailsURL:  cr.GetDetailsURL(),
		CompletedAt: completedAt,
	}
}

// mapReview converts a go-github PullRequestReview to a domain model Review.
// The state is kept verbatim so that only an exact "APPROVED" counts as approval.
func mapReview(r *gh.PullRequestReview) model.Review {
	return model.Review{
		ReviewerLogin: r.GetUser().GetLogin(),
		State:         model.ReviewState(r.GetState()),
		CommitID:      r.GetCommitID(),
		SubmittedAt:   r.GetSubmittedAt().Time,
	}
}
