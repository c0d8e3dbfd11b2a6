// Command check-review-approval fails when a requested reviewer has not yet
// reviewed a pull request.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/mergegate/internal/application"
	"github.com/ericfisherdev/mergegate/internal/cli"
	"github.com/ericfisherdev/mergegate/internal/domain/model"
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	var (
		opts            cli.Options
		repository      string
		prNumber        int
		requireApproval bool
	)

	cmd := &cobra.Command{
		Use:   "check-review-approval --repository OWNER/NAME --pull-request-number N",
		Short: "Fail when a requested reviewer has not reviewed a pull request",
		Long: `Exits 1 when any requested reviewer has no submitted review. Without
--require-approval the gate passes once every requested reviewer has
reviewed, whatever their decision. With --require-approval it also exits 1
when a requested reviewer's latest review is not an approval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.Setup(cmd)
			if err != nil {
				return err
			}

			repo, err := model.ParseRepository(repository)
			if err != nil {
				return err
			}

			client, err := env.GitHubClient()
			if err != nil {
				return err
			}

			report, err := application.NewReviewService(client, env.Out).Verify(cmd.Context(), repo, prNumber)
			if err != nil {
				return err
			}

			if !report.AllRequestedReviewed {
				return cli.GateFailed()
			}

			if requireApproval && !report.RequestedApproved() {
				slog.Info("requested reviewers have not all approved", "non_approving", report.NonApproving)
				return cli.GateFailed()
			}

			if !report.AllApproved {
				slog.Info("not every reviewer approves, passing because approval is not required",
					"repository", repo.FullName(),
					"pull_request", prNumber,
				)
			}
			return nil
		},
	}

	opts.Bind(cmd)
	cmd.Flags().StringVar(&repository, "repository", "", "repository to find reviewer approvals for (owner/name)")
	cmd.Flags().IntVar(&prNumber, "pull-request-number", 0, "number of pull request to get reviewers for")
	cmd.Flags().BoolVar(&requireApproval, "require-approval", false, "also fail when a requested reviewer's latest review is not an approval")
	_ = cmd.MarkFlagRequired("repository")
	_ = cmd.MarkFlagRequired("pull-request-number")

	return cmd
}
