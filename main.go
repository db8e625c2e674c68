package main

import (
	"os"

	"github.com/abhisek/interviz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
