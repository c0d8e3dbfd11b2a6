// Command check-blocking-label fails when a pull request carries a blocking label.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/mergegate/internal/application"
	"github.com/ericfisherdev/mergegate/internal/cli"
)

// noLabels is what a bare --labels flag parses to; labels then come from
// positional arguments.
const noLabels = "\x00"

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	var (
		opts          cli.Options
		blockingLabel string
		labelFlags    []string
	)

	cmd := &cobra.Command{
		Use:   "check-blocking-label --blocking-label LABEL --labels [LABEL...]",
		Short: "Fail when a pull request carries a blocking label",
		Long: `Exits 1 and prints a notice when the blocking label is among the pull
request labels. Labels may follow --labels as separate arguments or be given
as repeated --labels=LABEL flags. Matching is exact and case-sensitive.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.Setup(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("blocking-label") {
				blockingLabel = env.Config.Labels.Blocking
			}
			if blockingLabel == "" {
				slog.Warn("no blocking label configured: this gate is a no-op and always passes; set --blocking-label or [labels] blocking")
				return nil
			}

			labels := collectLabels(labelFlags, args)
			slog.Debug("checking labels", "blocking_label", blockingLabel, "labels", labels)

			if application.CheckBlockingLabel(env.Out, blockingLabel, labels) {
				return cli.GateFailed()
			}
			return nil
		},
	}

	opts.Bind(cmd)
	cmd.Flags().StringVar(&blockingLabel, "blocking-label", "", "name of label that is blocking")
	cmd.Flags().StringArrayVar(&labelFlags, "labels", nil, "list of labels for PR")
	cmd.Flags().Lookup("labels").NoOptDefVal = noLabels

	return cmd
}

// collectLabels merges --labels=VALUE flags with positional labels, dropping
// the placeholder left by a bare --labels.
func collectLabels(flagValues, args []string) []string {
	labels := make([]string, 0, len(flagValues)+len(args))
	for _, v := range flagValues {
		if v != noLabels {
			labels = append(labels, v)
		}
	}
	return append(labels, args...)
}
