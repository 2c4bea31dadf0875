package main

import (
	"os"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
