package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dynacfg/dynacfg"
)

var checkRestrict bool

var checkCmd = &cobra.Command{
	Use:   "check [sources...]",
	Short: "Load sources without printing anything, reporting only the outcome",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := buildConfig(args)
		if checkRestrict {
			c.Restrict()
		}
		if err := c.Load(); err != nil {
			return err
		}
		state, pos := c.Error()
		if state != dynacfg.ErrNone {
			return fmt.Errorf("%s at %s:%d", state, pos.File, pos.Line)
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkRestrict, "restrict", false, "load in restricted mode")
}
