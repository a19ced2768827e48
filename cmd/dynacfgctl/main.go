package main

import (
	"os"

	"github.com/dynacfg/dynacfg/cmd/dynacfgctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
