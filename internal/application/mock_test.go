package application_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/ericfisherdev/mergegate/internal/domain/model"
)

// --- Mock implementations ---

type mockGitHubClient struct {
	checkRuns          []model.CheckRun
	requestedReviewers []string
	reviews            []model.Review

	checkRunsErr error
	requestedErr error
	reviewsErr   error

	calls []string
}

func (m *mockGitHubClient) FetchCheckRuns(_ context.Context, _ model.Repository, ref string) ([]model.CheckRun, error) {
	m.calls = append(m.calls, "check-runs:"+ref)
	return m.checkRuns, m.checkRunsErr
}

func (m *mockGitHubClient) FetchRequestedReviewers(_ context.Context, _ model.Repository, _ int) ([]string, error) {
	m.calls = append(m.calls, "requested_reviewers")
	return m.requestedReviewers, m.requestedErr
}

func (m *mockGitHubClient) FetchReviews(_ context.Context, _ model.Repository, _ int) ([]model.Review, error) {
	m.calls = append(m.calls, "reviews")
	return m.reviews, m.reviewsErr
}

var testRepo = model.Repository{Owner: "owner", Name: "repo"}

func completed(name, conclusion string) model.CheckRun {
	return model.CheckRun{Name: name, Status: "completed", Conclusion: conclusion}
}

func review(login string, state model.ReviewState) model.Review {
	return model.Review{ReviewerLogin: login, State: state}
}

// captureLogs routes the default slog logger into a buffer for the duration
// of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}
