package main

import (
	"os"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
