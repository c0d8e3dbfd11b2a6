package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ericfisherdev/mergegate/internal/domain/model"
	"github.com/ericfisherdev/mergegate/internal/domain/port/driven"
)

// ChecksReport is the verdict over a set of requested check names.
type ChecksReport struct {
	Outcomes   []model.CheckOutcome // One per requested name, in request order.
	AllPassing bool
}

// Failed returns the outcomes that did not pass.
func (r *ChecksReport) Failed() []model.CheckOutcome {
	var failed []model.CheckOutcome
	for _, o := range r.Outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// CheckService verifies that named check runs on a commit concluded with an
// accepted conclusion.
type CheckService struct {
	client driven.GitHubClient
	out    io.Writer
}

// NewCheckService creates a CheckService. Diagnostic lines for failing checks
// are written to out.
func NewCheckService(client driven.GitHubClient, out io.Writer) *CheckService {
	return &CheckService{
		client: client,
		out:    out,
	}
}

// AllChecksPassing fetches the check runs for headSHA and reports whether every
// name in checkNames concluded with one of passingStatuses. A requested name
// that was never reported counts as not passed. An empty checkNames passes.
// API failures are returned as errors, never as a failing report.
func (s *CheckService) AllChecksPassing(ctx context.Context, checkNames []string, repo model.Repository, headSHA string, passingStatuses []string) (*ChecksReport, error) {
	runs, err := s.client.FetchCheckRuns(ctx, repo, headSHA)
	if err != nil {
		return nil, fmt.Errorf("fetching check runs for %s@%s: %w", repo.FullName(), headSHA, err)
	}

	names := dedupe(checkNames)
	outcomes := make(map[string]*model.CheckOutcome, len(names))
	for _, name := range names {
		outcomes[name] = &model.CheckOutcome{Name: name}
	}

	// Later runs with the same name overwrite earlier ones.
	for _, run := range runs {
		outcome, requested := outcomes[run.Name]
		if !requested {
			continue
		}

		outcome.Found = true
		outcome.Conclusion = run.Conclusion
		outcome.Passed = slices.Contains(passingStatuses, run.Conclusion)

		if !outcome.Passed {
			fmt.Fprintf(s.out, "Check %s failed with status %s\n", run.Name, describeConclusion(run))
			slog.Info("check run not passing",
				"name", run.Name,
				"status", run.Status,
				"conclusion", run.Conclusion,
				"details_url", run.DetailsURL,
				"completed_at", run.CompletedAt,
			)
		}
	}

	report := &ChecksReport{
		Outcomes:   make([]model.CheckOutcome, 0, len(names)),
		AllPassing: true,
	}
	for _, name := range names {
		outcome := outcomes[name]
		if !outcome.Found {
			fmt.Fprintf(s.out, "Check %s was not reported for commit %s\n", name, headSHA)
		}
		if !outcome.Passed {
			report.AllPassing = false
		}
		report.Outcomes = append(report.Outcomes, *outcome)
	}

	slog.Debug("checks evaluated",
		"repository", repo.FullName(),
		"head_sha", headSHA,
		"requested", len(names),
		"reported", len(runs),
		"all_passing", report.AllPassing,
	)

	return report, nil
}

// describeConclusion names what a non-passing run ended with. Runs that have
// not completed carry no conclusion, so their status is shown instead.
func describeConclusion(run model.CheckRun) string {
	if run.Conclusion == "" && run.Status != "" && run.Status != model.CheckStatusCompleted {
		return run.Status
	}
	if run.Conclusion == "" {
		return "none"
	}
	return run.Conclusion
}

// dedupe drops repeated names while keeping first-seen order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
