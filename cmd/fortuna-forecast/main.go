package main

import (
	"os"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
