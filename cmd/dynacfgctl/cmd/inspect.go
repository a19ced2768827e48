package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <namespace> <property> [sources...]",
	Short: "Fetch one resource and repr-print every value",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		namespace, property := args[0], args[1]
		sources := args[2:]

		c := buildConfig(sources)
		if err := c.Load(); err != nil {
			return err
		}

		c.Fetch(namespace, property)
		var values []string
		for c.Iterate() {
			values = append(values, c.Resource())
		}
		fmt.Println(repr.String(values, repr.Indent("  ")))
		return nil
	},
}
