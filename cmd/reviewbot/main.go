package main

import (
	"os"

	"github.com/dshills/reviewbot/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
