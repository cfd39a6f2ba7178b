package main

import (
	"os"

	"github.com/billdoc-dev/billdoc/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
