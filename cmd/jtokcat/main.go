// Command jtokcat drives a jtok.Parser over a file or stdin and prints the
// resulting event stream, one line per event. It exists to exercise the
// Parser from real, chunked I/O — the Push-in-a-loop/Finalize-at-EOF driver
// loop spec.md's Non-goals explicitly leave outside the core tokenizer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jtokcat:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var chunkSize int
	var showBytes bool

	cmd := &cobra.Command{
		Use:           "jtokcat [file]",
		Short:         "Tokenize a JSON document and print its event stream",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runTokenize(cmd.OutOrStdout(), path, chunkSize, showBytes)
		},
	}

	cmd.PersistentFlags().IntVarP(&chunkSize, "chunk-size", "c", 4096,
		"number of bytes read per Push call")
	cmd.PersistentFlags().BoolVarP(&showBytes, "bytes", "b", true,
		"print the payload bytes for StringFragment/Integer/Float events")

	return cmd
}
