package main

import (
	"os"

	"audioctl/internal/adapter/primary/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
