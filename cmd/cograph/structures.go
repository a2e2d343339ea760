package main

import (
	"fmt"
	"io"

	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/catalog"
	"github.com/fine-structures/cograph/libcograph/cotree"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func newStructuresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structures",
		Short: "Print the canonical cotree structure of every cograph on n vertices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindFlags(cmd, leavesFlag, connectedOnlyFlag, numberedFlag)

			it := cotree.Structures(viper.GetInt(leavesFlag), viper.GetBool(connectedOnlyFlag))
			stream := cograph.StreamStructures(it).Print(
				nopCloser{cmd.OutOrStdout()},
				cograph.PrintOpts{
					Numbered: viper.GetBool(numberedFlag),
				},
			)
			stream.PullAll()
			return stream.Err()
		},
	}

	flags := cmd.Flags()
	flags.IntP(leavesFlag, "n", 0, "number of leaves")
	flags.Bool(connectedOnlyFlag, false, "only print structures of connected cographs")
	flags.Bool(numberedFlag, false, "prefix each row with its row number")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <graph6-file>",
		Short: "Check a graph6 file for decode errors, duplicates and (optionally) disconnected graphs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(cmd, leavesFlag, connectedOnlyFlag, dbFlag)

			report, err := catalog.Verify(args[0], catalog.VerifyOpts{
				LeafCount:     viper.GetInt(leavesFlag),
				ConnectedOnly: viper.GetBool(connectedOnlyFlag),
				DbPathName:    viper.GetString(dbFlag),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "n=%d graphs=%d connected=%d disconnected=%d\n",
				report.LeafCount, report.Lines, report.Connected, report.Disconnected)
			for _, bin := range report.EdgeHistogram {
				fmt.Fprintf(out, "  edges=%-4d graphs=%d\n", bin.Edges, bin.Graphs)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntP(leavesFlag, "n", 0, "expected vertex count (0 accepts the first line's)")
	flags.Bool(connectedOnlyFlag, false, "fail on disconnected graphs")
	flags.String(dbFlag, "", "track duplicates in an on-disk db at this path instead of in memory")
	return cmd
}
