package main

import (
	"os"

	"github.com/tainn/sub-sync/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
