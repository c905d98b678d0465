package main

import (
	"os"

	"github.com/abhisek/psyquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
