// Package cmd implements the dynacfgctl command tree.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dynacfg/dynacfg"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dynacfgctl",
	Short: "Load, inspect and validate dynacfg configuration sources",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(checkCmd)
}

// buildConfig pushes every source argument and returns a ready-to-load
// Config, wired to the standard logger at the level PersistentPreRun set.
func buildConfig(sources []string) *dynacfg.Config {
	c := dynacfg.New()
	for _, s := range sources {
		c.PushSource(s)
	}
	return c
}
