// Package cli holds the plumbing shared by the gate binaries: common flags,
// configuration and logger setup, and the mapping from errors to exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/mergegate/internal/adapter/driven/github"
	"github.com/ericfisherdev/mergegate/internal/config"
)

// Process exit codes.
const (
	ExitPass  = 0 // The gate passed.
	ExitFail  = 1 // The gate failed; diagnostics were printed to stdout.
	ExitFatal = 2 // The gate could not be evaluated (API, input or config error).
)

// ExitError carries a specific exit code out of a command's RunE.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// GateFailed is returned by a command whose gate evaluated to false.
func GateFailed() error {
	return &ExitError{Code: ExitFail}
}

// Options are the flags every gate binary accepts.
type Options struct {
	ConfigPath string
	LogLevel   string
}

// Bind registers the shared flags on cmd.
func (o *Options) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "", "path to a TOML config file (default $MERGEGATE_CONFIG)")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "", "log level: debug, info, warn or error (default $MERGEGATE_LOG_LEVEL or info)")
}

// Env is what a gate command needs once its flags are parsed.
type Env struct {
	Config *config.Config
	Out    io.Writer
}

// Setup loads configuration and installs the default logger on cmd's error
// stream. It is called first thing in RunE, after cobra has accepted the
// flags, so usage output is only printed for flag errors.
func (o *Options) Setup(cmd *cobra.Command) (*Env, error) {
	cmd.SilenceUsage = true

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if o.LogLevel != "" {
		level = o.LogLevel
	}
	logger, err := NewLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	slog.Debug("config loaded",
		"api_base_url", cfg.APIBaseURL,
		"http_timeout", cfg.HTTPTimeout,
		"cache_dir", cfg.CacheDir,
		"has_token", cfg.GitHubToken != "",
	)

	return &Env{
		Config: cfg,
		Out:    cmd.OutOrStdout(),
	}, nil
}

// GitHubClient builds the GitHub adapter from the loaded configuration.
func (e *Env) GitHubClient() (*githubadapter.Client, error) {
	if e.Config.GitHubToken == "" {
		slog.Warn("GITHUB_TOKEN is not set, sending unauthenticated requests")
	}
	return githubadapter.NewClient(e.Config.GitHubToken, e.Config.APIBaseURL, e.Config.HTTPTimeout, e.Config.CacheDir)
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Run executes cmd and maps the outcome to an exit code. Errors other than
// *ExitError are logged once and reported as ExitFatal.
func Run(ctx context.Context, cmd *cobra.Command) int {
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitPass
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	slog.Error("fatal error", "error", err)
	return ExitFatal
}

// Main runs cmd with a context cancelled on SIGINT or SIGTERM and exits the
// process with the resulting code.
func Main(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, cmd)
	stop()
	os.Exit(code)
}

// SplitList splits a comma separated flag value. Surrounding spaces are
// trimmed and empty items dropped, so "" yields an empty list.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
