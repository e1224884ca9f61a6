package main

import (
	"os"

	"github.com/jhutchins/kirkgate-events/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
