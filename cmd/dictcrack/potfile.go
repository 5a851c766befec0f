// ABOUTME: Potfile inspection commands
// ABOUTME: Provides list, show, stats, and clear operations over cracked hashes

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/observability"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/potfile"
)

func newPotfileCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "potfile",
		Short: "Inspect and maintain the potfile of cracked hashes",
		Long:  `Commands for inspecting and maintaining the BadgerDB potfile of recovered plaintexts.`,
	}

	cmd.PersistentFlags().StringVar(&dir, "potfile-dir", "", "potfile directory (default from config)")

	open := func(cmd *cobra.Command) (*potfile.Potfile, error) {
		if dir == "" {
			dir = a.cfg.Potfile.Dir
		}
		p, err := potfile.Open(cmd.Context(), potfile.Config{
			Dir: dir,
			Bloom: potfile.BloomConfig{
				ExpectedItems:     a.cfg.Potfile.ExpectedItems,
				FalsePositiveRate: a.cfg.Potfile.FalsePositiveRate,
			},
			Logger: a.logger,
			Audit:  observability.NewAuditLogger(a.logger),
		})
		if err != nil {
			return nil, &exitError{code: exitSourceError, err: err}
		}
		return p, nil
	}

	cmd.AddCommand(newPotfileListCmd(open))
	cmd.AddCommand(newPotfileShowCmd(open))
	cmd.AddCommand(newPotfileStatsCmd(open))
	cmd.AddCommand(newPotfileClearCmd(open))

	return cmd
}

type potfileOpener func(*cobra.Command) (*potfile.Potfile, error)

func newPotfileListCmd(open potfileOpener) *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cracked hashes as algorithm:hash:plaintext",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			records, err := p.List(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outputJSON {
				if records == nil {
					records = []*potfile.Record{}
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for _, rec := range records {
				fmt.Fprintf(w, "%s:%s\n", rec.Key(), rec.Plaintext)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&outputJSON, "json", "j", false, "output as JSON")

	return cmd
}

func newPotfileShowCmd(open potfileOpener) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "show <hash>",
		Short: "Show the plaintext recovered for a hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseTarget(algorithm, args[0])
			if err != nil {
				return &exitError{code: exitInvalidInput, err: fmt.Errorf("invalid hash: %w", err)}
			}

			p, err := open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			rec, err := p.Lookup(cmd.Context(), target)
			if err != nil {
				return err
			}
			if rec == nil {
				return &exitError{code: exitNotFound, err: errors.New("hash not in potfile")}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Plaintext:  %s\n", rec.Plaintext)
			fmt.Fprintf(w, "Algorithm:  %s\n", rec.Algorithm)
			fmt.Fprintf(w, "Cracked:    %s (%s)\n", rec.CrackedAt.Format("2006-01-02 15:04:05 MST"), humanize.Time(rec.CrackedAt))
			fmt.Fprintf(w, "Attempts:   %s\n", humanize.Comma(rec.Attempts))
			if rec.Source != "" {
				fmt.Fprintf(w, "Wordlist:   %s\n", rec.Source)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "sha256", "hash algorithm (md5, sha1, sha256, sha512)")

	return cmd
}

func newPotfileStatsCmd(open potfileOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show potfile statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			stats, err := p.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Potfile Statistics:\n")
			fmt.Fprintf(w, "  Records:    %s\n", humanize.Comma(stats.RecordCount))
			fmt.Fprintf(w, "  Size:       %s\n", humanize.Bytes(uint64(stats.StoreSizeBytes)))
			fmt.Fprintf(w, "  Bloom:      %s capacity, %s\n", humanize.Comma(int64(stats.BloomCapacity)), humanize.Bytes(stats.BloomBitSetSize))
			return nil
		},
	}
}

func newPotfileClearCmd(open potfileOpener) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record from the potfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return &exitError{code: exitInvalidInput, err: errors.New("refusing to clear the potfile without --force")}
			}

			p, err := open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Potfile cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm deletion")

	return cmd
}
