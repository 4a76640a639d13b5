package main

import (
	"os"

	"catalog-app/internal/app/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
