package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	leavesFlag        = "leaves"
	outputFlag        = "output"
	batchSizeFlag     = "batch-size"
	workersFlag       = "workers"
	connectedOnlyFlag = "connected-only"
	inMemoryFlag      = "in-memory"
	scratchDirFlag    = "scratch-dir"
	numberedFlag      = "numbered"
	dbFlag            = "db"
)

// NewRootCommand enables all children commands to read flags from CLI flags or environment variables prefixed with COGRAPH (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetEnvPrefix("COGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root := &cobra.Command{
		Use:   "cograph",
		Short: "Enumerate every cograph on n vertices and export it as graph6",
		Long: `Enumerate every cograph on n vertices, exactly once per isomorphism class, by composing
canonical reduced cotrees, and export each as a graph6 line.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newGenerateCommand(),
		newStructuresCommand(),
		newVerifyCommand(),
		newSweepCommand(),
		newScriptCommand(),
	)
	return root
}

// bindFlags binds the named flags of cmd to viper keys of the same name.
// Binding happens when a command runs since several commands share key names.
func bindFlags(cmd *cobra.Command, names ...string) {
	flags := cmd.Flags()
	for _, name := range names {
		mustBindPFlag(name, flags.Lookup(name))
	}
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}
