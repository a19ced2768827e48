package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var paramsSources []string

var paramsCmd = &cobra.Command{
	Use:   "params <params.yaml>",
	Short: "Push host parameters from a YAML file, then load and dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		c := buildConfig(paramsSources)
		if err := c.PushParamsFromYAML(f); err != nil {
			return err
		}
		if err := c.Load(); err != nil {
			return err
		}
		for _, r := range c.Dump().Resources {
			fmt.Printf("%s.%s = %v\n", r.Namespace, r.Property, r.Values)
		}
		return nil
	},
}

func init() {
	paramsCmd.Flags().StringSliceVar(&paramsSources, "source", nil, "configuration source to load (repeatable)")
}
