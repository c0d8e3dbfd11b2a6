// Command check-dependent-checks fails unless the named check runs on a commit
// all concluded with an accepted conclusion.
package main

import (
	"errors"

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
		checks          string
		repository      string
		headSHA         string
		passingStatuses string
	)

	cmd := &cobra.Command{
		Use:   "check-dependent-checks --checks NAMES --repository OWNER/NAME --head-sha SHA --passing-check-statuses STATUSES",
		Short: "Fail unless the named check runs on a commit passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.Setup(cmd)
			if err != nil {
				return err
			}

			repo, err := model.ParseRepository(repository)
			if err != nil {
				return err
			}

			checkNames := env.Config.Checks.Required
			switch {
			case cmd.Flags().Changed("checks"):
				checkNames = cli.SplitList(checks)
			case len(checkNames) == 0:
				return errors.New("no checks given: set --checks or [checks] required")
			}
			statuses := env.Config.Checks.PassingStatuses
			switch {
			case cmd.Flags().Changed("passing-check-statuses"):
				statuses = cli.SplitList(passingStatuses)
			case len(statuses) == 0:
				return errors.New("no passing check statuses given: set --passing-check-statuses or [checks] passing_statuses")
			}
			if len(checkNames) > 0 && len(statuses) == 0 {
				return errors.New("no passing check statuses given: set --passing-check-statuses or [checks] passing_statuses")
			}

			client, err := env.GitHubClient()
			if err != nil {
				return err
			}

			report, err := application.NewCheckService(client, env.Out).
				AllChecksPassing(cmd.Context(), checkNames, repo, headSHA, statuses)
			if err != nil {
				return err
			}

			if !report.AllPassing {
				return cli.GateFailed()
			}
			return nil
		},
	}

	opts.Bind(cmd)
	cmd.Flags().StringVar(&checks, "checks", "", "list of checks to check, as comma separated list")
	cmd.Flags().StringVar(&repository, "repository", "", "repository to find check statuses for (owner/name)")
	cmd.Flags().StringVar(&headSHA, "head-sha", "", "head SHA to get check statuses for")
	cmd.Flags().StringVar(&passingStatuses, "passing-check-statuses", "", "list of passing check statuses, as comma separated list")
	_ = cmd.MarkFlagRequired("repository")
	_ = cmd.MarkFlagRequired("head-sha")

	return cmd
}
