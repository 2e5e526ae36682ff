package main

import (
	"os"

	"github.com/tressa-sh/tressa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
