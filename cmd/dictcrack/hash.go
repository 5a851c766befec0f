// ABOUTME: Hash and samples commands for producing test digests
// ABOUTME: Prints digests of arbitrary text and of a fixed set of sample passwords

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

// samplePasswords are common passwords for trying the tool end to end.
var samplePasswords = []string{"password", "123456", "admin", "hello", "test"}

func newHashCmd() *cobra.Command {
	var (
		algorithm string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "hash <text>",
		Short: "Print the digest of text",
		Long: `Print the hex digest of text, for building test targets.

Examples:
  dictcrack hash hello
  dictcrack hash -a md5 password
  dictcrack hash --all hello`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			text := []byte(args[0])

			if all {
				for _, alg := range types.SupportedAlgorithms() {
					fmt.Fprintf(w, "%-7s %s\n", alg, types.DigestHex(alg, text))
				}
				return nil
			}

			alg, err := types.ParseAlgorithm(algorithm)
			if err != nil {
				return &exitError{code: exitInvalidInput, err: err}
			}
			fmt.Fprintln(w, types.DigestHex(alg, text))
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", types.DefaultAlgorithm.String(), "hash algorithm (md5, sha1, sha256, sha512)")
	cmd.Flags().BoolVar(&all, "all", false, "print digests for every supported algorithm")

	return cmd
}

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Print sample passwords with their SHA256 and MD5 digests",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-10s %-64s %s\n", "PASSWORD", "SHA256", "MD5")
			for _, pw := range samplePasswords {
				fmt.Fprintf(w, "%-10s %s %s\n", pw,
					types.DigestHex(types.AlgorithmSHA256, []byte(pw)),
					types.DigestHex(types.AlgorithmMD5, []byte(pw)),
				)
			}
		},
	}
}
