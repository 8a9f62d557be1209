package main

import (
	"os"

	"github.com/ygoas29/fieldway/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
