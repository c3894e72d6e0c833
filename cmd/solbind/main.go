package main

import (
	"os"

	"github.com/solbind/solbind/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
