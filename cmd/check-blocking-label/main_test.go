package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/mergegate/internal/cli"
)

func runGate(t *testing.T, args ...string) (int, string) {
	t.Helper()
	code, out, _ := runGateWithLogs(t, args...)
	return code, out
}

func runGateWithLogs(t *testing.T, args ...string) (code int, out, logs string) {
	t.Helper()
	t.Setenv("MERGEGATE_CONFIG", "")
	t.Setenv("MERGEGATE_LOG_LEVEL", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	code = cli.Run(context.Background(), cmd)
	return code, stdout.String(), stderr.String()
}

func TestBlockingLabel_Blocked(t *testing.T) {
	code, out := runGate(t, "--blocking-label", "do-not-merge", "--labels", "wip", "do-not-merge")

	assert.Equal(t, cli.ExitFail, code)
	assert.Equal(t, "Stopping merge, blocking label detected.\n", out)
}

func TestBlockingLabel_NotBlocked(t *testing.T) {
	code, out := runGate(t, "--blocking-label", "do-not-merge", "--labels", "wip", "ready")

	assert.Equal(t, cli.ExitPass, code)
	assert.Empty(t, out)
}

func TestBlockingLabel_BareLabelsFlag(t *testing.T) {
	code, out := runGate(t, "--blocking-label", "do-not-merge", "--labels")

	assert.Equal(t, cli.ExitPass, code)
	assert.Empty(t, out)
}

func TestBlockingLabel_NoLabelsFlag(t *testing.T) {
	code, _ := runGate(t, "--blocking-label", "do-not-merge")

	assert.Equal(t, cli.ExitPass, code)
}

func TestBlockingLabel_RepeatedFlags(t *testing.T) {
	code, _ := runGate(t, "--labels=wip", "--labels=do-not-merge", "--blocking-label", "do-not-merge")

	assert.Equal(t, cli.ExitFail, code)
}

func TestBlockingLabel_LabelWithSpaces(t *testing.T) {
	code, _ := runGate(t, "--blocking-label", "do not merge", "--labels", "do not merge")

	assert.Equal(t, cli.ExitFail, code)
}

func TestBlockingLabel_CaseSensitive(t *testing.T) {
	code, _ := runGate(t, "--blocking-label", "do-not-merge", "--labels", "DO-NOT-MERGE")

	assert.Equal(t, cli.ExitPass, code)
}

func TestBlockingLabel_NoneConfiguredWarnsNoOp(t *testing.T) {
	code, out, logs := runGateWithLogs(t, "--labels", "do-not-merge")

	assert.Equal(t, cli.ExitPass, code)
	assert.Empty(t, out)
	assert.Contains(t, logs, "level=WARN")
	assert.Contains(t, logs, "no-op")
}

func TestCollectLabels(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, collectLabels([]string{noLabels, "a"}, []string{"b", "c"}))
	assert.Empty(t, collectLabels([]string{noLabels}, nil))
}
