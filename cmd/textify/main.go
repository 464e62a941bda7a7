package main

import (
	"os"

	"github.com/grahms/textify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
