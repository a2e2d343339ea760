package main

import (
	"bufio"
	"fmt"

	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the graph6 line of every cograph on n vertices",
		Long: `Write the graph6 line of every cograph on n vertices.

By default structures are streamed to a scratch file and encoded in batches, and the output file
lists graphs in enumeration order.  With --in-memory, graphs are encoded as they are enumerated and
printed to stdout in completion order.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	flags := cmd.Flags()
	flags.IntP(leavesFlag, "n", 0, "number of vertices (1..62)")
	flags.StringP(outputFlag, "o", cograph.DefaultOutputPath, "graph6 output file")
	flags.Int(batchSizeFlag, cograph.DefaultBatchSize, "structures encoded per batch")
	flags.Int(workersFlag, 0, "encoder goroutines (0 for one per CPU)")
	flags.Bool(connectedOnlyFlag, false, "only generate connected cographs")
	flags.Bool(inMemoryFlag, false, "encode in memory and print graph6 lines to stdout in completion order")
	flags.String(scratchDirFlag, "", "directory for the scratch file (default os.TempDir())")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	bindFlags(cmd, leavesFlag, outputFlag, batchSizeFlag, workersFlag, connectedOnlyFlag, inMemoryFlag, scratchDirFlag)

	if viper.GetBool(inMemoryFlag) {
		lines, err := pipeline.GenerateInMemory(pipeline.MemoryOpts{
			LeafCount:     viper.GetInt(leavesFlag),
			Workers:       viper.GetInt(workersFlag),
			ConnectedOnly: viper.GetBool(connectedOnlyFlag),
		})
		if err != nil {
			return err
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		for _, line := range lines {
			out.WriteString(line)
			out.WriteByte('\n')
		}
		return out.Flush()
	}

	written, err := pipeline.GenerateToFile(pipeline.FileOpts{
		LeafCount:     viper.GetInt(leavesFlag),
		OutputPath:    viper.GetString(outputFlag),
		BatchSize:     viper.GetInt(batchSizeFlag),
		Workers:       viper.GetInt(workersFlag),
		ConnectedOnly: viper.GetBool(connectedOnlyFlag),
		ScratchDir:    viper.GetString(scratchDirFlag),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), written)
	return nil
}

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove scratch files left behind by aborted runs",
		Long:  "Remove scratch files left behind by aborted runs.  Do not run while a generation run uses the same directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindFlags(cmd, scratchDirFlag)

			removed, err := pipeline.SweepScratch(viper.GetString(scratchDirFlag))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d scratch files\n", removed)
			return nil
		},
	}
	cmd.Flags().String(scratchDirFlag, "", "directory to sweep (default os.TempDir())")
	return cmd
}
