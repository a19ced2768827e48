package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump [sources...]",
	Short: "Load sources and print every bound resource and variable",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := buildConfig(args)
		if err := c.Load(); err != nil {
			return err
		}
		snap := c.Dump()

		if dumpFormat == "yaml" {
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(snap)
		}

		fmt.Printf("reload_id: %s\n", snap.ReloadID)
		for _, r := range snap.Resources {
			fmt.Printf("%s.%s = %v\n", r.Namespace, r.Property, r.Values)
		}
		for _, v := range snap.Variables {
			fmt.Printf("$%s = %v\n", v.Name, v.Values)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "text", "output format: text|yaml")
}
