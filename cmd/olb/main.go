package main

import (
	"os"

	"github.com/openlist-contrib/openlist-bridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
