package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [sources...]",
	Short: "Load the first openable source and report its reload id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := buildConfig(args)
		if err := c.Load(); err != nil {
			return err
		}
		fmt.Printf("loaded, reload_id=%s\n", c.LastReloadID())
		return nil
	},
}
