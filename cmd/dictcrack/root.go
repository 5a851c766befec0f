// ABOUTME: Root command for the dictcrack CLI
// ABOUTME: Sets up global flags, configuration, logging, tracing and subcommands

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/config"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/observability"
)

// app holds state shared by subcommands for one CLI invocation.
type app struct {
	stdin io.Reader

	// Global flags.
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
	tracer *observability.TracerProvider
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictcrack",
		Short: "dictcrack - dictionary attack against a single hash",
		Long: `dictcrack runs a wordlist attack against one MD5, SHA1, SHA256 or SHA512
digest. Candidates are read line by line, stripped of surrounding whitespace,
hashed and compared with the target until a match, the end of the wordlist,
or an interrupt.

Recovered plaintexts are kept in a local potfile so repeated attacks against
the same hash return immediately.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	// Global flags.
	cmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default: "+config.DefaultConfigPath()+")")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (json, text)")

	// Add subcommands.
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCrackCmd(a))
	cmd.AddCommand(newHashCmd())
	cmd.AddCommand(newSamplesCmd())
	cmd.AddCommand(newPotfileCmd(a))

	return cmd
}

// init loads configuration and builds the logger and tracer. Flags that were
// set explicitly win over the config file.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return &exitError{code: exitInvalidInput, err: err}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg

	a.logger = observability.NewLogger(observability.LoggingConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "dictcrack",
		Version:     version,
	}, cmd.ErrOrStderr())

	tp, err := observability.NewTracerProvider(cmd.Context(), observability.TracingConfig{
		Enabled:       cfg.Tracing.Enabled,
		ServiceName:   "dictcrack",
		Version:       version,
		Endpoint:      cfg.Tracing.Endpoint,
		Insecure:      cfg.Tracing.Insecure,
		SamplingRatio: cfg.Tracing.SamplingRatio,
	})
	if err != nil {
		a.logger.Warn("tracing disabled", slog.String("error", err.Error()))
	} else {
		a.tracer = tp
	}

	return nil
}

// close flushes pending spans.
func (a *app) close() {
	if a.tracer == nil || !a.tracer.IsEnabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil && a.logger != nil {
		a.logger.Warn("tracer shutdown error", slog.String("error", err.Error()))
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dictcrack version %s\n", version)
			fmt.Fprintf(w, "  Git SHA:    %s\n", gitSHA)
			fmt.Fprintf(w, "  Build Time: %s\n", buildTime)
		},
	}
}
