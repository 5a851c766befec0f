// ABOUTME: Crack command running a dictionary attack against one hash
// ABOUTME: Wires potfile, progress reporting, signals and timeouts around the engine

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/engine"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/observability"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/potfile"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/progress"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

type crackOptions struct {
	hash             string
	wordlist         string
	algorithm        string
	noProgress       bool
	progressFormat   string
	progressInterval time.Duration
	hostStats        bool
	timeout          time.Duration
	outputJSON       bool
	noPotfile        bool
	potfileDir       string
	reveal           bool
}

func newCrackCmd(a *app) *cobra.Command {
	var opts crackOptions

	cmd := &cobra.Command{
		Use:   "crack [hash]",
		Short: "Recover the plaintext of a hash from a wordlist",
		Long: `Run a dictionary attack against a single hash.

The first candidate in wordlist order whose digest matches wins. Blank lines
are skipped and do not count as attempts. Press Ctrl-C to stop; an interrupted
attack is reported as cancelled, never as not found.

Exit codes: 0 found, 1 not found, 2 invalid input, 3 wordlist error,
130 cancelled.

Examples:
  dictcrack crack 5f4dcc3b5aa765d61d8327deb882cf99 -a md5 -w rockyou.txt
  dictcrack crack --hash 2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824 -w words.txt
  cat words.txt | dictcrack crack <hash> -w - --no-progress --json
  dictcrack crack <hash> -w words.txt --timeout 30s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if opts.hash != "" && opts.hash != args[0] {
					return &exitError{code: exitInvalidInput, err: errors.New("hash given both as argument and --hash")}
				}
				opts.hash = args[0]
			}
			if opts.hash == "" {
				return &exitError{code: exitInvalidInput, err: errors.New("no hash provided; use a positional argument or --hash")}
			}
			if opts.wordlist == "" {
				return &exitError{code: exitInvalidInput, err: errors.New("no wordlist provided; use --wordlist (or - for stdin)")}
			}

			flags := cmd.Flags()
			if !flags.Changed("algorithm") {
				opts.algorithm = a.cfg.Attack.Algorithm
			}
			if !flags.Changed("progress-format") {
				opts.progressFormat = a.cfg.Attack.ProgressFormat
			}
			if !flags.Changed("progress-interval") {
				opts.progressInterval = a.cfg.Attack.ProgressInterval
			}
			if !flags.Changed("host-stats") {
				opts.hostStats = a.cfg.Attack.HostStats
			}
			if !flags.Changed("reveal") {
				opts.reveal = a.cfg.Attack.RevealCandidates
			}
			if !flags.Changed("potfile-dir") {
				opts.potfileDir = a.cfg.Potfile.Dir
			}
			if !a.cfg.Potfile.Enabled && !flags.Changed("potfile-dir") {
				opts.noPotfile = true
			}
			opts.hash = strings.TrimSpace(opts.hash)

			return runCrack(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.hash, "hash", "H", "", "target hash (hex)")
	cmd.Flags().StringVarP(&opts.wordlist, "wordlist", "w", "", "wordlist path, or - for stdin")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", types.DefaultAlgorithm.String(), "hash algorithm (md5, sha1, sha256, sha512)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable live progress output")
	cmd.Flags().StringVar(&opts.progressFormat, "progress-format", "text", "progress format (text, json)")
	cmd.Flags().DurationVar(&opts.progressInterval, "progress-interval", progress.DefaultInterval, "progress refresh interval")
	cmd.Flags().BoolVar(&opts.hostStats, "host-stats", false, "include host CPU and memory usage in progress")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop the attack after this long (0 for no limit)")
	cmd.Flags().BoolVarP(&opts.outputJSON, "json", "j", false, "print the outcome as JSON")
	cmd.Flags().BoolVar(&opts.noPotfile, "no-potfile", false, "do not read or write the potfile")
	cmd.Flags().StringVar(&opts.potfileDir, "potfile-dir", "", "potfile directory")
	cmd.Flags().BoolVar(&opts.reveal, "reveal", false, "log recovered plaintexts instead of redacting them")

	return cmd
}

func runCrack(cmd *cobra.Command, a *app, opts crackOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	ctx, runID := observability.EnsureRunID(ctx)
	logger := a.logger
	audit := observability.NewAuditLogger(a.logger)

	// Target validity only matters for the potfile; the engine reports
	// invalid input itself.
	var pot *potfile.Potfile
	target, targetErr := parseTarget(opts.algorithm, opts.hash)
	if !opts.noPotfile && targetErr == nil {
		p, err := potfile.Open(ctx, potfile.Config{
			Dir: opts.potfileDir,
			Bloom: potfile.BloomConfig{
				ExpectedItems:     a.cfg.Potfile.ExpectedItems,
				FalsePositiveRate: a.cfg.Potfile.FalsePositiveRate,
			},
			Logger: logger,
			Audit:  audit,
		})
		if err != nil {
			logger.Warn("potfile unavailable", slog.String("error", err.Error()))
		} else {
			pot = p
			defer pot.Close()
		}
	}

	if pot != nil {
		rec, err := pot.Lookup(ctx, target)
		if err != nil {
			logger.Warn("potfile lookup failed", slog.String("error", err.Error()))
		}
		if rec != nil {
			outcome := types.NewFoundOutcome(rec.Plaintext, 0, 0).
				WithRun(runID.String(), target.Algorithm, target.Value, "potfile")
			return reportOutcome(cmd.OutOrStdout(), outcome, opts.outputJSON)
		}
	}

	var reporter *progress.Reporter
	if !opts.noProgress {
		var sink progress.Sink = progress.NewTextSink(cmd.ErrOrStderr())
		if strings.EqualFold(opts.progressFormat, "json") {
			sink = progress.NewJSONSink(cmd.ErrOrStderr())
		}
		reporterOpts := []progress.Option{progress.WithInterval(opts.progressInterval)}
		if opts.hostStats {
			reporterOpts = append(reporterOpts, progress.WithSampler(progress.NewHostSampler()))
		}
		reporter = progress.NewReporter(sink, reporterOpts...)
	}

	eng := engine.NewEngine(engine.Config{
		Logger:           logger,
		Audit:            audit,
		RevealCandidates: opts.reveal,
	})

	outcome := eng.Attack(ctx, engine.Request{
		TargetHash: opts.hash,
		Algorithm:  opts.algorithm,
		Source:     engine.NewSource(opts.wordlist, a.stdin),
		Reporter:   reporter,
	})

	logger.Debug("engine stats", slog.String("stats", eng.Stats().String()))

	if pot != nil {
		if err := pot.RecordOutcome(ctx, target, outcome); err != nil {
			logger.Warn("failed to record outcome in potfile", slog.String("error", err.Error()))
		}
	}

	return reportOutcome(cmd.OutOrStdout(), outcome, opts.outputJSON)
}

func parseTarget(algorithm, hash string) (types.TargetHash, error) {
	alg, err := types.ParseAlgorithm(algorithm)
	if err != nil {
		return types.TargetHash{}, err
	}
	return types.ParseTargetHash(alg, hash)
}

// reportOutcome prints the outcome and converts it to an exit code.
func reportOutcome(w io.Writer, outcome types.Outcome, outputJSON bool) error {
	if outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return fmt.Errorf("encoding outcome: %w", err)
		}
	} else {
		printOutcome(w, outcome)
	}

	switch outcome.Kind {
	case types.OutcomeFound:
		return nil
	case types.OutcomeNotFound:
		return &exitError{code: exitNotFound, silent: true}
	case types.OutcomeCancelled:
		return &exitError{code: exitCancelled, silent: true}
	case types.OutcomeInvalidInput:
		return &exitError{code: exitInvalidInput, err: outcome.Err(), silent: true}
	default:
		return &exitError{code: exitSourceError, err: outcome.Err(), silent: true}
	}
}

func printOutcome(w io.Writer, o types.Outcome) {
	switch o.Kind {
	case types.OutcomeFound:
		fmt.Fprintf(w, "Found:    %s\n", o.Candidate)
		if o.Source == "potfile" {
			fmt.Fprintln(w, "Source:   potfile")
			return
		}
	case types.OutcomeNotFound:
		fmt.Fprintln(w, "Not found: wordlist exhausted without a match")
	case types.OutcomeCancelled:
		fmt.Fprintln(w, "Cancelled: scan stopped before the wordlist was exhausted")
	case types.OutcomeInvalidInput:
		fmt.Fprintf(w, "Invalid input: %s\n", o.Reason)
		return
	case types.OutcomeSourceError:
		fmt.Fprintf(w, "Wordlist error: %s\n", o.Reason)
	}

	fmt.Fprintf(w, "Attempts: %s\n", progress.FormatCount(o.Attempts))
	fmt.Fprintf(w, "Elapsed:  %.3fs\n", o.Elapsed.Seconds())
	fmt.Fprintf(w, "Rate:     %s/s\n", progress.FormatCount(int64(o.Rate())))
}
