package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/mergegate/internal/cli"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "build,test", want: []string{"build", "test"}},
		{in: "build, test ,lint", want: []string{"build", "test", "lint"}},
		{in: "build,,test,", want: []string{"build", "test"}},
		{in: "", want: nil},
		{in: " , ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.SplitList(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := cli.NewLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown key=value")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := cli.NewLogger(&bytes.Buffer{}, "loud")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}

func newCmd(run func() error) *cobra.Command {
	cmd := &cobra.Command{
		Use: "gate",
		RunE: func(*cobra.Command, []string) error {
			return run()
		},
	}
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func TestRun_ExitCodes(t *testing.T) {
	var errBuf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&errBuf, nil)))
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))) })

	assert.Equal(t, cli.ExitPass, cli.Run(context.Background(), newCmd(func() error { return nil })))
	assert.Equal(t, cli.ExitFail, cli.Run(context.Background(), newCmd(cli.GateFailed)))
	assert.Empty(t, errBuf.String(), "gate failures are not logged as errors")

	code := cli.Run(context.Background(), newCmd(func() error { return errors.New("boom") }))
	assert.Equal(t, cli.ExitFatal, code)
	assert.Contains(t, errBuf.String(), "fatal error")
	assert.Contains(t, errBuf.String(), "boom")
}

func TestRun_UnknownFlagIsFatal(t *testing.T) {
	cmd := newCmd(func() error { return nil })
	cmd.SetArgs([]string{"--nope"})

	assert.Equal(t, cli.ExitFatal, cli.Run(context.Background(), cmd))
}

func TestOptions_Setup(t *testing.T) {
	t.Setenv("MERGEGATE_CONFIG", "")
	t.Setenv("MERGEGATE_LOG_LEVEL", "")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	var opts cli.Options
	var env *cli.Env
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{
		Use: "gate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			env, err = opts.Setup(cmd)
			return err
		},
	}
	opts.Bind(cmd)
	cmd.SetArgs([]string{"--log-level", "debug"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.Equal(t, cli.ExitPass, cli.Run(context.Background(), cmd))
	require.NotNil(t, env)
	assert.Equal(t, "ghp_test", env.Config.GitHubToken)
	assert.Same(t, &out, env.Out)
	assert.Contains(t, errOut.String(), "config loaded", "debug level comes from the flag")

	client, err := env.GitHubClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}
